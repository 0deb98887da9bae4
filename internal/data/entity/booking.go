package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// IsActive reports whether a booking in this status still holds its seats.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo enforces the booking state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
// Cancelled and completed are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}

type Booking struct {
	Base
	UserID           uuid.UUID       `db:"user_id"`
	ShowtimeID       uuid.UUID       `db:"showtime_id"`
	Reference        string          `db:"booking_reference"`
	Status           BookingStatus   `db:"status"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	CreatedBySupport bool            `db:"created_by_support"`
	SupportAgentID   *uuid.UUID      `db:"support_agent_id"`
}

// BookingPatch lists the booking fields that may be updated after creation.
type BookingPatch struct {
	Status *BookingStatus
}
