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

// ShowtimeListFilter carries the query-string filters for listing showtimes.
type ShowtimeListFilter struct {
	MovieID   *string
	TheaterID *string
	IsActive  *bool
}

type CatalogService interface {
	// Public endpoints
	GetTheaters(ctx context.Context) ([]*response.TheaterResponse, error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error)
	GetTheaterSeats(ctx context.Context, theaterID string) ([]*response.SeatResponse, error)
	GetShowtimes(ctx context.Context, filter ShowtimeListFilter, req *request.PaginatedRequest) ([]*response.ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)

	// Admin endpoints
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetTheaters(ctx context.Context) ([]*response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get theaters", zap.Error(err))
		return nil, fmt.Errorf("get theaters: %w", err)
	}

	theaterResponses := make([]*response.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		resp := response.TheaterToResponse(theater)
		theaterResponses[i] = &resp
	}

	return theaterResponses, nil
}

func (s *catalogService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, ErrInvalidArgument)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, ErrNotFound)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *catalogService) GetTheaterSeats(ctx context.Context, theaterID string) ([]*response.SeatResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, ErrInvalidArgument)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByTheaterID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theater seats: %w", err)
	}

	seatResponses := make([]*response.SeatResponse, len(seats))
	for i, seat := range seats {
		resp := response.SeatToResponse(seat)
		seatResponses[i] = &resp
	}

	return seatResponses, nil
}

func (s *catalogService) GetShowtimes(ctx context.Context, filter ShowtimeListFilter, req *request.PaginatedRequest) ([]*response.ShowtimeResponse, error) {
	repoFilter := repository.ShowtimeFilter{
		IsActive: filter.IsActive,
	}

	if filter.MovieID != nil {
		movieID, err := uuid.Parse(*filter.MovieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", *filter.MovieID, ErrInvalidArgument)
		}
		repoFilter.MovieID = &movieID
	}

	if filter.TheaterID != nil {
		theaterID, err := uuid.Parse(*filter.TheaterID)
		if err != nil {
			return nil, fmt.Errorf("invalid theater ID format %s: %w", *filter.TheaterID, ErrInvalidArgument)
		}
		repoFilter.TheaterID = &theaterID
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get showtimes", zap.Error(err))
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	showtimeResponses := make([]*response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		resp := response.ShowtimeToResponse(showtime)
		showtimeResponses[i] = &resp
	}

	s.log.Info("Showtimes retrieved", zap.Int("count", len(showtimes)))
	return showtimeResponses, nil
}

func (s *catalogService) GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, ErrInvalidArgument)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, ErrNotFound)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *catalogService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	// Reject duplicate seat positions within the request
	seen := make(map[string]bool, len(req.Seats))
	for _, spec := range req.Seats {
		key := fmt.Sprintf("%s-%d", spec.SeatRow, spec.SeatNumber)
		if seen[key] {
			return nil, fmt.Errorf("duplicate seat %s%d: %w", spec.SeatRow, spec.SeatNumber, ErrInvalidArgument)
		}
		seen[key] = true
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Capacity: len(req.Seats),
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		return nil, fmt.Errorf("create theater: %w", err)
	}

	seats := make([]*entity.Seat, len(req.Seats))
	for i, spec := range req.Seats {
		seats[i] = &entity.Seat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TheaterID:  theater.ID,
			SeatRow:    spec.SeatRow,
			SeatNumber: spec.SeatNumber,
			SeatType:   entity.SeatType(spec.SeatType),
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, fmt.Errorf("create theater seats: %w", err)
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
		zap.Int("capacity", theater.Capacity),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *catalogService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, ErrInvalidArgument)
	}

	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, ErrInvalidArgument)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %s: %w", req.StartTime, ErrInvalidArgument)
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %s: %w", req.EndTime, ErrInvalidArgument)
	}

	if !endTime.After(startTime) {
		return nil, fmt.Errorf("end time must be after start time: %w", ErrInvalidArgument)
	}

	if req.BasePrice.IsNegative() || req.BasePrice.IsZero() {
		return nil, fmt.Errorf("base price must be positive: %w", ErrInvalidArgument)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, ErrNotFound)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", req.TheaterID, ErrNotFound)
	}

	showtime := &entity.Showtime{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:   movieID,
		TheaterID: theaterID,
		StartTime: startTime,
		EndTime:   endTime,
		BasePrice: req.BasePrice,
		IsActive:  true,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("theater_id", req.TheaterID),
		zap.Time("start_time", startTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}
