package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/middleware"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/showtimes/{id}/seats - Free seats with their prices
	r.Get("/api/showtimes/{id}/seats", ticketHandler.GetAvailableSeats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Book seats for a showtime
		r.Post("/api/bookings", ticketHandler.CreateBooking)

		// GET /api/bookings - Own booking history
		r.Get("/api/bookings", ticketHandler.GetUserBookings)

		// GET /api/bookings/reference/{reference} - Look up by booking reference
		r.Get("/api/bookings/reference/{reference}", ticketHandler.GetBookingByReference)

		// PUT /api/bookings/{id}/cancel - Cancel own booking
		r.Put("/api/bookings/{id}/cancel", ticketHandler.CancelBooking)

		// POST /api/payments - Pay for a pending booking
		r.Post("/api/payments", ticketHandler.CreatePayment)

		// PATCH /api/payments/{id} - Gateway result callback
		r.Patch("/api/payments/{id}", ticketHandler.UpdatePayment)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", ticketHandler.GetBookings)
		r.Get("/{id}", ticketHandler.GetBookingByID)
		r.Patch("/{id}", ticketHandler.UpdateBooking)
	})

	// ==================== SUPPORT ROUTES ====================
	// Agents book on behalf of customers
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.SupportAgent(repo.User, log))

		r.Post("/api/support/bookings", ticketHandler.CreateSupportBooking)
	})
}
