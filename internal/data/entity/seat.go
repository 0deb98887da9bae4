package entity

import "github.com/google/uuid"

type SeatType string

const (
	SeatTypeRegular    SeatType = "regular"
	SeatTypePremium    SeatType = "premium"
	SeatTypeVIP        SeatType = "vip"
	SeatTypeAccessible SeatType = "accessible"
)

// Seat is reference data: created with its theater, never mutated afterwards.
type Seat struct {
	BaseSimple
	TheaterID  uuid.UUID `db:"theater_id"`
	SeatRow    string    `db:"seat_row"`    // A, B, C, ...
	SeatNumber int       `db:"seat_number"` // 1, 2, 3, ...
	SeatType   SeatType  `db:"seat_type"`
}
