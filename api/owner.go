package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
	"github.com/Domenick1991/turfbooking/internal/service/slots"
)

// OwnerHandler serves the facility owner's slot and booking management.
type OwnerHandler struct {
	slots    slots.SlotUseCase
	bookings booking.BookingUseCase
	now      func() time.Time
}

type createSlotRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartHour *int   `json:"start_hour" binding:"required,min=0,max=23"`
}

func NewOwnerHandler(slotService slots.SlotUseCase, bookingService booking.BookingUseCase) *OwnerHandler {
	return &OwnerHandler{slots: slotService, bookings: bookingService, now: time.Now}
}

func (h *OwnerHandler) Register(router *gin.RouterGroup) {
	router.POST("/slots", RequireCapability(domain.CapCreateSlot), h.createSlot)
	router.POST("/slots/:id/block", RequireCapability(domain.CapBlockSlot), h.blockSlot)
	router.GET("/bookings", RequireCapability(domain.CapListDayBookings), h.listBookings)
	router.DELETE("/bookings/:id", RequireCapability(domain.CapCancelAny), h.cancelBooking)
}

func (h *OwnerHandler) createSlot(c *gin.Context) {
	var req createSlotRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	slot, err := h.slots.CreateSlot(c.Request.Context(), date, *req.StartHour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSlotResponse(*slot))
}

func (h *OwnerHandler) blockSlot(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	slot, err := h.slots.BlockSlot(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSlotResponse(*slot))
}

func (h *OwnerHandler) listBookings(c *gin.Context) {
	date, err := queryDate(c, h.now)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := queryPage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.bookings.ListForDate(c.Request.Context(), date, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingPage(result))
}

func (h *OwnerHandler) cancelBooking(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ok, err := h.bookings.Cancel(c.Request.Context(), id)
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
