package repository

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error)

	// WithTx rebinds the repository onto an open transaction.
	WithTx(tx database.Tx) SeatRepository
}

type seatRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatRepository(db database.Querier, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) WithTx(tx database.Tx) SeatRepository {
	return &seatRepository{db: tx, log: r.log}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `
		INSERT INTO seats (id, theater_id, seat_row, seat_number, seat_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, seat := range seats {
		_, err := r.db.Exec(ctx, query,
			seat.ID,
			seat.TheaterID,
			seat.SeatRow,
			seat.SeatNumber,
			seat.SeatType,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create seat",
				zap.Error(err),
				zap.String("theater_id", seat.TheaterID.String()),
				zap.String("row", seat.SeatRow),
				zap.Int("number", seat.SeatNumber),
			)
			return fmt.Errorf("create seat %s%d: %w", seat.SeatRow, seat.SeatNumber, err)
		}
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, theater_id, seat_row, seat_number, seat_type, created_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.TheaterID,
		&seat.SeatRow,
		&seat.SeatNumber,
		&seat.SeatType,
		&seat.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

// FindByTheaterID returns the theater catalog in (row, number) order so
// availability listings are stable.
func (r *seatRepository) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, theater_id, seat_row, seat_number, seat_type, created_at
		FROM seats
		WHERE theater_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find seats by theater ID",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find seats by theater ID %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.SeatRow,
			&seat.SeatNumber,
			&seat.SeatType,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}
