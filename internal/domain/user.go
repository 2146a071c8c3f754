package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is one of two fixed account variants. Each variant carries its own
// capability set; code checks capabilities, never role names.
type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

type Capability string

const (
	CapViewSlots       Capability = "slots:view"
	CapBookSlots       Capability = "bookings:create"
	CapListOwnBookings Capability = "bookings:list_own"
	CapCancelOwn       Capability = "bookings:cancel_own"
	CapCreateSlot      Capability = "slots:create"
	CapBlockSlot       Capability = "slots:block"
	CapListDayBookings Capability = "bookings:list_day"
	CapCancelAny       Capability = "bookings:cancel_any"
)

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleUser: {
		CapViewSlots:       {},
		CapBookSlots:       {},
		CapListOwnBookings: {},
		CapCancelOwn:       {},
	},
	RoleOwner: {
		CapViewSlots:       {},
		CapCreateSlot:      {},
		CapBlockSlot:       {},
		CapListDayBookings: {},
		CapCancelAny:       {},
	},
}

// ParseRole accepts "user" or "owner" in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleCapabilities[r]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants c.
func (r Role) Can(c Capability) bool {
	_, ok := roleCapabilities[r][c]
	return ok
}

type User struct {
	ID           int64     `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
