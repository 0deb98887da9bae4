package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Showtime struct {
	BaseSimple
	MovieID   uuid.UUID       `db:"movie_id"`
	TheaterID uuid.UUID       `db:"theater_id"`
	StartTime time.Time       `db:"start_time"`
	EndTime   time.Time       `db:"end_time"`
	BasePrice decimal.Decimal `db:"base_price"`
	IsActive  bool            `db:"is_active"`
}
