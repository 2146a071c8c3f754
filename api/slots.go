package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/slots"
)

type SlotHandler struct {
	service slots.SlotUseCase
	now     func() time.Time
}

func NewSlotHandler(service slots.SlotUseCase) *SlotHandler {
	return &SlotHandler{service: service, now: time.Now}
}

func (h *SlotHandler) Register(router *gin.RouterGroup) {
	router.GET("", RequireCapability(domain.CapViewSlots), h.list)
}

func (h *SlotHandler) list(c *gin.Context) {
	date, err := queryDate(c, h.now)
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.service.ListSlots(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format(domain.DateLayout),
		"slots": toSlotResponses(list),
	})
}

// queryDate reads ?date=YYYY-MM-DD, defaulting to today.
func queryDate(c *gin.Context, now func() time.Time) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return domain.NormalizeDate(now()), nil
	}
	return domain.ParseDate(raw)
}
