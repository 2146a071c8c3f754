package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	HoursPerDay  = 24
	MinStartHour = 0
	MaxStartHour = HoursPerDay - 1
)

type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotBlocked   SlotState = "blocked"
)

// Slot is a one-hour window on a calendar date. The last slot of a day ends
// at 00:00 but keeps the same Date.
type Slot struct {
	ID        int64
	Date      time.Time
	StartHour int
	EndHour   int
	Available bool
	State     SlotState
}

// EndHourFor returns the hour a slot starting at start ends, wrapping at midnight.
func EndHourFor(start int) int {
	return (start + 1) % HoursPerDay
}

func ValidStartHour(h int) bool {
	return h >= MinStartHour && h <= MaxStartHour
}

// NormalizeDate strips the clock from t and returns midnight UTC of its calendar date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return t, nil
}

// DeriveState reports the slot state given whether a booking references it.
func DeriveState(available, referenced bool) SlotState {
	switch {
	case available:
		return SlotAvailable
	case referenced:
		return SlotBooked
	default:
		return SlotBlocked
	}
}

func (s Slot) DateString() string {
	return s.Date.Format(DateLayout)
}

func (s Slot) StartTime() string {
	return fmt.Sprintf("%02d:00", s.StartHour)
}

func (s Slot) EndTime() string {
	return fmt.Sprintf("%02d:00", s.EndHour)
}
