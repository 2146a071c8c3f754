package api

import (
	"time"

	"github.com/Domenick1991/turfbooking/internal/domain"
)

type userResponse struct {
	ID    int64  `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type slotResponse struct {
	ID        int64  `json:"slot_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"availability"`
	State     string `json:"state"`
}

type bookingResponse struct {
	ID        int64        `json:"booking_id"`
	Confirmed bool         `json:"confirmation_status"`
	CreatedAt string       `json:"created_at"`
	Slot      slotResponse `json:"slot"`
	User      userResponse `json:"user"`
}

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: string(u.Role)}
}

func toSlotResponse(s domain.Slot) slotResponse {
	return slotResponse{
		ID:        s.ID,
		Date:      s.DateString(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		Available: s.Available,
		State:     string(s.State),
	}
}

func toSlotResponses(slots []domain.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(s))
	}
	return out
}

func toBookingPage(p domain.Page[domain.BookingDetail]) pageResponse[bookingResponse] {
	items := make([]bookingResponse, 0, len(p.Items))
	for _, d := range p.Items {
		items = append(items, bookingResponse{
			ID:        d.Booking.ID,
			Confirmed: d.Booking.Confirmed,
			CreatedAt: d.Booking.CreatedAt.UTC().Format(time.RFC3339),
			Slot:      toSlotResponse(d.Slot),
			User:      toUserResponse(&d.User),
		})
	}
	return pageResponse[bookingResponse]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: p.TotalPages,
	}
}
