package repository

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatBookingRepository interface {
	CreateBatch(ctx context.Context, seatBookings []*entity.SeatBooking) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.SeatBooking, error)

	// FindReservedSeatIDs returns the seats held for a showtime by bookings
	// that still hold their seats (pending or confirmed).
	FindReservedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)

	// WithTx rebinds the repository onto an open transaction.
	WithTx(tx database.Tx) SeatBookingRepository
}

type seatBookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatBookingRepository(db database.Querier, log *zap.Logger) SeatBookingRepository {
	return &seatBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_booking")),
	}
}

func (r *seatBookingRepository) WithTx(tx database.Tx) SeatBookingRepository {
	return &seatBookingRepository{db: tx, log: r.log}
}

func (r *seatBookingRepository) CreateBatch(ctx context.Context, seatBookings []*entity.SeatBooking) error {
	if len(seatBookings) == 0 {
		return nil
	}

	query := `
		INSERT INTO seat_bookings (id, booking_id, seat_id, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, sb := range seatBookings {
		_, err := r.db.Exec(ctx, query,
			sb.ID,
			sb.BookingID,
			sb.SeatID,
			sb.Price,
			sb.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create seat booking",
				zap.Error(err),
				zap.String("booking_id", sb.BookingID.String()),
				zap.String("seat_id", sb.SeatID.String()),
			)
			return fmt.Errorf("create seat booking for booking %s seat %s: %w",
				sb.BookingID.String(), sb.SeatID.String(), err)
		}
	}

	return nil
}

func (r *seatBookingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.SeatBooking, error) {
	query := `
		SELECT id, booking_id, seat_id, price, created_at
		FROM seat_bookings
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seat bookings by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seat bookings by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seatBookings []*entity.SeatBooking
	for rows.Next() {
		var sb entity.SeatBooking
		err := rows.Scan(
			&sb.ID,
			&sb.BookingID,
			&sb.SeatID,
			&sb.Price,
			&sb.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat booking row", zap.Error(err))
			return nil, fmt.Errorf("scan seat booking row: %w", err)
		}
		seatBookings = append(seatBookings, &sb)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat booking rows: %w", err)
	}

	return seatBookings, nil
}

func (r *seatBookingRepository) FindReservedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT sb.seat_id
		FROM seat_bookings sb
		INNER JOIN bookings b ON sb.booking_id = b.id
		WHERE b.showtime_id = $1 AND b.status IN ('pending', 'confirmed')
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find reserved seats by showtime",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find reserved seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan seat ID row", zap.Error(err))
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	// A fault mid-resultset must not pass off a truncated reserved set as
	// complete; the booking conflict check depends on seeing every held seat.
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reserved seat rows: %w", err)
	}

	return seatIDs, nil
}
