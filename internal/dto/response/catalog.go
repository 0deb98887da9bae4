package response

import (
	"time"

	"cinema-tickets/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TheaterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

type SeatResponse struct {
	ID         string          `json:"id"`
	SeatRow    string          `json:"seat_row"`
	SeatNumber int             `json:"seat_number"`
	SeatType   entity.SeatType `json:"seat_type"`
}

type ShowtimeResponse struct {
	ID        string          `json:"id"`
	MovieID   string          `json:"movie_id"`
	TheaterID string          `json:"theater_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	BasePrice decimal.Decimal `json:"base_price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// AvailableSeatResponse is a free seat plus the price it would cost for the
// showtime it was computed against.
type AvailableSeatResponse struct {
	SeatResponse
	Price decimal.Decimal `json:"price"`
}

type AvailabilityResponse struct {
	ShowtimeID     string                  `json:"showtime_id"`
	AvailableSeats []AvailableSeatResponse `json:"available_seats"`
}

func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:        theater.ID.String(),
		Name:      theater.Name,
		Capacity:  theater.Capacity,
		CreatedAt: theater.CreatedAt,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID.String(),
		SeatRow:    seat.SeatRow,
		SeatNumber: seat.SeatNumber,
		SeatType:   seat.SeatType,
	}
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID.String(),
		MovieID:   showtime.MovieID.String(),
		TheaterID: showtime.TheaterID.String(),
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		BasePrice: showtime.BasePrice,
		IsActive:  showtime.IsActive,
		CreatedAt: showtime.CreatedAt,
	}
}
