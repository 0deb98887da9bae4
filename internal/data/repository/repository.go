package repository

import (
	"cinema-tickets/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Movie       MovieRepository
	Genre       GenreRepository
	MovieGenre  MovieGenreRepository
	Theater     TheaterRepository
	Seat        SeatRepository
	Showtime    ShowtimeRepository
	Booking     BookingRepository
	SeatBooking SeatBookingRepository
	Payment     PaymentRepository
	Support     SupportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Genre:       NewGenreRepository(db, log),
		MovieGenre:  NewMovieGenreRepository(db, log),
		Theater:     NewTheaterRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		SeatBooking: NewSeatBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Support:     NewSupportRepository(db, log),
	}
}
