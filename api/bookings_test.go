package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
)

func newBookingRouter(svc *MockBookingUseCase, role domain.Role) http.Handler {
	r, g := newTestRouter(asCaller(7, role))
	NewBookingHandler(svc).Register(g.Group("/bookings"))
	return r
}

func TestBookingHandler_create(t *testing.T) {
	svc := new(MockBookingUseCase)
	booked := slotAt(11, 10)
	booked.Available = false
	booked.State = domain.SlotBooked
	svc.On("Book", mock.Anything, int64(7), []int64{11, 12}).
		Return(&booking.BookResult{Booked: []domain.Slot{booked}, Skipped: []int64{12}}, nil)

	w := doJSON(newBookingRouter(svc, domain.RoleUser), http.MethodPost, "/bookings", map[string]any{"slot_ids": []int64{11, 12}})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[createBookingResponse](w)
	assert.Equal(t, 2, resp.Requested)
	require.Len(t, resp.Booked, 1)
	assert.Equal(t, "10:00", resp.Booked[0].StartTime)
	assert.Equal(t, "booked", resp.Booked[0].State)
	assert.Equal(t, []int64{12}, resp.Skipped)
	svc.AssertExpectations(t)
}

func TestBookingHandler_create_NothingBooked(t *testing.T) {
	svc := new(MockBookingUseCase)
	svc.On("Book", mock.Anything, int64(7), []int64{11}).
		Return(&booking.BookResult{Skipped: []int64{11}}, nil)

	w := doJSON(newBookingRouter(svc, domain.RoleUser), http.MethodPost, "/bookings", map[string]any{"slot_ids": []int64{11}})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, []int64{11}, decode[createBookingResponse](w).Skipped)
}

func TestBookingHandler_create_Validation(t *testing.T) {
	svc := new(MockBookingUseCase)
	router := newBookingRouter(svc, domain.RoleUser)

	w := doJSON(router, http.MethodPost, "/bookings", map[string]any{"slot_ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorResponse](w).Error, "slot_ids")

	w = doJSON(router, http.MethodPost, "/bookings", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_create_OwnerForbidden(t *testing.T) {
	svc := new(MockBookingUseCase)
	w := doJSON(newBookingRouter(svc, domain.RoleOwner), http.MethodPost, "/bookings", map[string]any{"slot_ids": []int64{1}})

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_list(t *testing.T) {
	svc := new(MockBookingUseCase)
	detail := domain.BookingDetail{
		Booking: domain.Booking{ID: 3, UserID: 7, SlotID: 11, Confirmed: true},
		Slot:    slotAt(11, 10),
		User:    domain.User{ID: 7, Name: "Alice", Email: "alice@example.com"},
	}
	svc.On("ListForUser", mock.Anything, int64(7), 2).
		Return(domain.Page[domain.BookingDetail]{Items: []domain.BookingDetail{detail}, Total: 4, Page: 2, Size: 3, TotalPages: 2}, nil)

	w := doJSON(newBookingRouter(svc, domain.RoleUser), http.MethodGet, "/bookings?page=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[pageResponse[bookingResponse]](w)
	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(3), resp.Items[0].ID)
	assert.Equal(t, "2024-06-01", resp.Items[0].Slot.Date)
	assert.Equal(t, "Alice", resp.Items[0].User.Name)
}

func TestBookingHandler_list_BadPage(t *testing.T) {
	svc := new(MockBookingUseCase)
	w := doJSON(newBookingRouter(svc, domain.RoleUser), http.MethodGet, "/bookings?page=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	svc := new(MockBookingUseCase)
	svc.On("CancelOwn", mock.Anything, int64(3), int64(7)).Return(true, nil)
	svc.On("CancelOwn", mock.Anything, int64(4), int64(7)).Return(false, nil)
	svc.On("CancelOwn", mock.Anything, int64(5), int64(7)).Return(false, errors.New("db down"))
	router := newBookingRouter(svc, domain.RoleUser)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodDelete, "/bookings/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodDelete, "/bookings/4", nil).Code)

	w := doJSON(router, http.MethodDelete, "/bookings/5", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode[errorResponse](w).Error)

	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodDelete, "/bookings/abc", nil).Code)
}
