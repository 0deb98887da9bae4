package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeatBooking ties one physical seat to one booking with the price charged
// for that seat. Created atomically with its booking.
type SeatBooking struct {
	BaseSimple
	BookingID uuid.UUID       `db:"booking_id"`
	SeatID    uuid.UUID       `db:"seat_id"`
	Price     decimal.Decimal `db:"price"`
}
