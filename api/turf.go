package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/config"
)

type turfResponse struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Size     string `json:"size"`
	Surface  string `json:"surface"`
}

// TurfHandler serves the static facility description.
type TurfHandler struct {
	turf turfResponse
}

func NewTurfHandler(cfg config.TurfConfig) *TurfHandler {
	return &TurfHandler{turf: turfResponse{
		Name:     cfg.Name,
		Location: cfg.Location,
		Size:     cfg.Size,
		Surface:  cfg.Surface,
	}}
}

func (h *TurfHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.get)
}

func (h *TurfHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.turf)
}
