package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSupport(
	r chi.Router,
	supportHandler *adaptor.SupportHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES (session attached when present) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthSession(repo.Session, log))

		// POST /api/support/tickets - Open a ticket, logged in or anonymous
		r.Post("/api/support/tickets", supportHandler.CreateTicket)

		// GET /api/support/tickets/reference/{reference} - Track a ticket
		r.Get("/api/support/tickets/reference/{reference}", supportHandler.GetTicketByReference)

		// Interactions on a ticket
		r.Post("/api/support/tickets/{id}/interactions", supportHandler.AddInteraction)
		r.Get("/api/support/tickets/{id}/interactions", supportHandler.GetInteractions)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/support/my-tickets - Own tickets
		r.Get("/api/support/my-tickets", supportHandler.GetUserTickets)
	})

	// ==================== AGENT ROUTES ====================
	r.Route("/api/agent/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.SupportAgent(repo.User, log))

		r.Get("/", supportHandler.GetTickets)
		r.Patch("/{id}", supportHandler.UpdateTicket)
	})
}
