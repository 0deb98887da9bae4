package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovieListFilter carries the query-string filters for listing movies.
type MovieListFilter struct {
	TitleSearch *string
	GenreID     *string
	IsActive    *bool
}

type MovieService interface {
	// Public endpoints
	GetMovies(ctx context.Context, filter MovieListFilter, req *request.PaginatedRequest) ([]*response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetGenres(ctx context.Context) ([]*response.GenreResponse, error)

	// Admin endpoints
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, filter MovieListFilter, req *request.PaginatedRequest) ([]*response.MovieResponse, error) {
	repoFilter := repository.MovieFilter{
		TitleSearch: filter.TitleSearch,
		IsActive:    filter.IsActive,
	}

	if filter.GenreID != nil {
		genreID, err := uuid.Parse(*filter.GenreID)
		if err != nil {
			return nil, fmt.Errorf("invalid genre ID format %s: %w", *filter.GenreID, ErrInvalidArgument)
		}
		repoFilter.GenreID = &genreID
	}

	movies, err := s.repo.Movie.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	movieResponses := make([]*response.MovieResponse, len(movies))
	for i, movie := range movies {
		genres, err := s.genresOfMovie(ctx, movie.ID)
		if err != nil {
			return nil, err
		}
		resp := response.MovieToResponse(movie, genres)
		movieResponses[i] = &resp
	}

	s.log.Info("Movies retrieved", zap.Int("count", len(movies)))
	return movieResponses, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, ErrInvalidArgument)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	genres, err := s.genresOfMovie(ctx, movie.ID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) GetGenres(ctx context.Context) ([]*response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}

	genreResponses := make([]*response.GenreResponse, len(genres))
	for i, genre := range genres {
		resp := response.GenreToResponse(genre)
		genreResponses[i] = &resp
	}

	return genreResponses, nil
}

// ==================== ADMIN METHODS ====================

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid release date %s: %w", req.ReleaseDate, ErrInvalidArgument)
	}

	// Every referenced genre must exist before anything is written
	genreIDs, genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		ReleaseDate:     releaseDate,
		PosterURL:       req.PosterURL,
		TrailerURL:      req.TrailerURL,
		Rating:          req.Rating,
		IsActive:        true,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := s.linkGenres(ctx, movie.ID, genreIDs, now); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("genre_count", len(genreIDs)),
	)

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, ErrInvalidArgument)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid release date %s: %w", *req.ReleaseDate, ErrInvalidArgument)
		}
		movie.ReleaseDate = releaseDate
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.IsActive != nil {
		movie.IsActive = *req.IsActive
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	// Replace genre links only when the request names genres
	if req.GenreIDs != nil {
		genreIDs, _, err := s.resolveGenres(ctx, req.GenreIDs)
		if err != nil {
			return nil, err
		}

		if err := s.repo.MovieGenre.DeleteByMovieID(ctx, movie.ID); err != nil {
			return nil, fmt.Errorf("clear movie genres: %w", err)
		}
		if err := s.linkGenres(ctx, movie.ID, genreIDs, movie.UpdatedAt); err != nil {
			return nil, err
		}
	}

	genres, err := s.genresOfMovie(ctx, movie.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie ID format %s: %w", movieID, ErrInvalidArgument)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deactivated", zap.String("movie_id", movieID))
	return nil
}

func (s *movieService) CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("genre_id", genre.ID.String()), zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *movieService) resolveGenres(ctx context.Context, genreIDStrs []string) ([]uuid.UUID, []*entity.Genre, error) {
	genreIDs := make([]uuid.UUID, len(genreIDStrs))
	genres := make([]*entity.Genre, len(genreIDStrs))

	for i, genreIDStr := range genreIDStrs {
		genreID, err := uuid.Parse(genreIDStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid genre ID format %s: %w", genreIDStr, ErrInvalidArgument)
		}

		genre, err := s.repo.Genre.FindByID(ctx, genreID)
		if err != nil {
			return nil, nil, fmt.Errorf("find genre: %w", err)
		}
		if genre == nil {
			return nil, nil, fmt.Errorf("genre %s: %w", genreIDStr, ErrNotFound)
		}

		genreIDs[i] = genreID
		genres[i] = genre
	}

	return genreIDs, genres, nil
}

func (s *movieService) linkGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID, now time.Time) error {
	if len(genreIDs) == 0 {
		return nil
	}

	movieGenres := make([]*entity.MovieGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		movieGenres[i] = &entity.MovieGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			MovieID: movieID,
			GenreID: genreID,
		}
	}

	if err := s.repo.MovieGenre.CreateBatch(ctx, movieGenres); err != nil {
		return fmt.Errorf("link movie genres: %w", err)
	}

	return nil
}

func (s *movieService) genresOfMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	genreIDs, err := s.repo.MovieGenre.FindGenreIDsByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie genres: %w", err)
	}

	genres := make([]*entity.Genre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		genre, err := s.repo.Genre.FindByID(ctx, genreID)
		if err != nil {
			return nil, fmt.Errorf("find genre: %w", err)
		}
		if genre != nil {
			genres = append(genres, genre)
		}
	}

	return genres, nil
}
