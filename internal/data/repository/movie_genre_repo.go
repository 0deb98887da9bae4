package repository

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieGenreRepository interface {
	CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error
	DeleteByMovieID(ctx context.Context, movieID uuid.UUID) error
	FindGenreIDsByMovieID(ctx context.Context, movieID uuid.UUID) ([]uuid.UUID, error)
}

type movieGenreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieGenreRepository(db database.Querier, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error {
	if len(movieGenres) == 0 {
		return nil
	}

	query := `INSERT INTO movie_genres (id, movie_id, genre_id, created_at) VALUES ($1, $2, $3, $4)`

	for _, mg := range movieGenres {
		_, err := r.db.Exec(ctx, query, mg.ID, mg.MovieID, mg.GenreID, mg.CreatedAt)
		if err != nil {
			r.log.Error("Failed to create movie genre",
				zap.Error(err),
				zap.String("movie_id", mg.MovieID.String()),
				zap.String("genre_id", mg.GenreID.String()),
			)
			return fmt.Errorf("create movie genre for movie %s: %w", mg.MovieID.String(), err)
		}
	}

	return nil
}

func (r *movieGenreRepository) DeleteByMovieID(ctx context.Context, movieID uuid.UUID) error {
	query := `DELETE FROM movie_genres WHERE movie_id = $1`

	_, err := r.db.Exec(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to delete movie genres",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("delete movie genres for movie %s: %w", movieID.String(), err)
	}

	return nil
}

func (r *movieGenreRepository) FindGenreIDsByMovieID(ctx context.Context, movieID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT genre_id FROM movie_genres WHERE movie_id = $1`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie genres",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find genres for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var genreIDs []uuid.UUID
	for rows.Next() {
		var genreID uuid.UUID
		if err := rows.Scan(&genreID); err != nil {
			r.log.Error("Failed to scan genre ID row", zap.Error(err))
			return nil, fmt.Errorf("scan genre ID row: %w", err)
		}
		genreIDs = append(genreIDs, genreID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate genre ID rows: %w", err)
	}

	return genreIDs, nil
}
