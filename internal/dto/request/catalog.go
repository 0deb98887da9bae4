package request

import "github.com/shopspring/decimal"

type SeatSpec struct {
	SeatRow    string `json:"seat_row" validate:"required,min=1,max=5"`
	SeatNumber int    `json:"seat_number" validate:"required,gt=0"`
	SeatType   string `json:"seat_type" validate:"required,oneof=regular premium vip accessible"`
}

type CreateTheaterRequest struct {
	Name  string     `json:"name" validate:"required,min=1,max=255"`
	Seats []SeatSpec `json:"seats" validate:"required,min=1,dive"`
}

type CreateShowtimeRequest struct {
	MovieID   string          `json:"movie_id" validate:"required,uuid4"`
	TheaterID string          `json:"theater_id" validate:"required,uuid4"`
	StartTime string          `json:"start_time" validate:"required"` // RFC 3339
	EndTime   string          `json:"end_time" validate:"required"`   // RFC 3339
	BasePrice decimal.Decimal `json:"base_price" validate:"required"`
}
