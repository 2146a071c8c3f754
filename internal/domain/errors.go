package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSlotExists         = errors.New("slot already exists")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrSlotUnavailable    = errors.New("slot is not available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrForbidden          = errors.New("access forbidden")
)
