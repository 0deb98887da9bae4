package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/theaters", catalogHandler.GetTheaters)
	r.Get("/api/theaters/{id}", catalogHandler.GetTheaterByID)
	r.Get("/api/theaters/{id}/seats", catalogHandler.GetTheaterSeats)
	r.Get("/api/showtimes", catalogHandler.GetShowtimes)
	r.Get("/api/showtimes/{id}", catalogHandler.GetShowtimeByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/admin/theaters", catalogHandler.CreateTheater)
		r.Post("/api/admin/showtimes", catalogHandler.CreateShowtime)
	})
}
