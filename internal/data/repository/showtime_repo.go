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

// ShowtimeFilter narrows FindAll. Nil fields are ignored.
type ShowtimeFilter struct {
	MovieID   *uuid.UUID
	TheaterID *uuid.UUID
	IsActive  *bool
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error)

	// LockByID reads the showtime under FOR UPDATE so that concurrent
	// booking attempts for the same showtime serialize on its row. Must be
	// called inside a transaction.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)

	// WithTx rebinds the repository onto an open transaction.
	WithTx(tx database.Tx) ShowtimeRepository
}

type showtimeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowtimeRepository(db database.Querier, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) WithTx(tx database.Tx) ShowtimeRepository {
	return &showtimeRepository{db: tx, log: r.log}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, theater_id, start_time, end_time, base_price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.BasePrice,
		showtime.IsActive,
		showtime.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("theater_id", showtime.TheaterID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, base_price, is_active, created_at
		FROM showtimes
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *showtimeRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, base_price, is_active, created_at
		FROM showtimes
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanOne(ctx, query, id)
}

func (r *showtimeRepository) scanOne(ctx context.Context, query string, id uuid.UUID) (*entity.Showtime, error) {
	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.BasePrice,
		&showtime.IsActive,
		&showtime.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, base_price, is_active, created_at
		FROM showtimes
	`

	args := []any{}
	where := ""

	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		where += fmt.Sprintf(" AND movie_id = $%d", len(args))
	}

	if filter.TheaterID != nil {
		args = append(args, *filter.TheaterID)
		where += fmt.Sprintf(" AND theater_id = $%d", len(args))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	if where != "" {
		query += " WHERE " + where[len(" AND "):]
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY start_time LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find showtimes", zap.Error(err))
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheaterID,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.BasePrice,
			&showtime.IsActive,
			&showtime.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}
