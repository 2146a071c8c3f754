package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	SlotIDs []int64 `json:"slot_ids" binding:"required,min=1,dive,gt=0"`
}

type createBookingResponse struct {
	Requested int            `json:"requested"`
	Booked    []slotResponse `json:"booked"`
	Skipped   []int64        `json:"skipped"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", RequireCapability(domain.CapBookSlots), h.create)
	router.GET("", RequireCapability(domain.CapListOwnBookings), h.list)
	router.DELETE("/:id", RequireCapability(domain.CapCancelOwn), h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	claims, _ := claimsFrom(c)

	var req createBookingRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	res, err := h.service.Book(c.Request.Context(), claims.UserID, req.SlotIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	body := createBookingResponse{
		Requested: len(req.SlotIDs),
		Booked:    toSlotResponses(res.Booked),
		Skipped:   res.Skipped,
	}
	if body.Skipped == nil {
		body.Skipped = []int64{}
	}
	if len(res.Booked) == 0 {
		c.JSON(http.StatusConflict, body)
		return
	}
	c.JSON(http.StatusCreated, body)
}

func (h *BookingHandler) list(c *gin.Context) {
	claims, _ := claimsFrom(c)

	page, err := queryPage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.service.ListForUser(c.Request.Context(), claims.UserID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingPage(result))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	claims, _ := claimsFrom(c)

	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ok, err := h.service.CancelOwn(c.Request.Context(), id, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, domain.ErrBookingNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "cancelled": true})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}
	return id, nil
}

func queryPage(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: page must be a positive integer", domain.ErrValidation)
	}
	return page, nil
}
