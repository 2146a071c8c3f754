package domain

import "time"

// Booking links one user to one slot. It exists only while confirmed; a
// cancelled booking is deleted.
type Booking struct {
	ID        int64
	UserID    int64
	SlotID    int64
	Confirmed bool
	CreatedAt time.Time
}

// BookingDetail is the display row for booking lists.
type BookingDetail struct {
	Booking Booking
	Slot    Slot
	User    User
}

type PageRequest struct {
	Page int // 1-based
	Size int
}

// Normalize clamps the request to page >= 1 and size in [1, 100], using
// defaultSize when the size is unset.
func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > 100 {
		p.Size = 100
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{Items: items, Total: total, Page: req.Page, Size: req.Size, TotalPages: pages}
}
