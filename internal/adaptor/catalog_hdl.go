package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetTheaters handles GET /api/theaters (public)
func (h *CatalogHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.GetTheaters(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheaterByID handles GET /api/theaters/{id} (public)
func (h *CatalogHandler) GetTheaterByID(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	theater, err := h.service.GetTheaterByID(r.Context(), theaterID)
	if err != nil {
		handleServiceError(w, h.log, err, "get theater by ID")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// GetTheaterSeats handles GET /api/theaters/{id}/seats (public)
func (h *CatalogHandler) GetTheaterSeats(w http.ResponseWriter, r *http.Request) {
	theaterID := chi.URLParam(r, "id")
	if theaterID == "" {
		utils.ResponseBadRequest(w, "Theater ID is required", nil)
		return
	}

	seats, err := h.service.GetTheaterSeats(r.Context(), theaterID)
	if err != nil {
		handleServiceError(w, h.log, err, "get theater seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetShowtimes handles GET /api/showtimes (public)
func (h *CatalogHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := usecase.ShowtimeListFilter{
		IsActive: utils.ParseBool(query.Get("is_active")),
	}
	if movieID := query.Get("movie_id"); movieID != "" {
		filter.MovieID = &movieID
	}
	if theaterID := query.Get("theater_id"); theaterID != "" {
		filter.TheaterID = &theaterID
	}

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), filter, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id} (public)
func (h *CatalogHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime by ID")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// ==================== ADMIN METHODS ====================

// CreateTheater handles POST /api/admin/theaters (admin only)
func (h *CatalogHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "success", theater)
}

// CreateShowtime handles POST /api/admin/showtimes (admin only)
func (h *CatalogHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}
