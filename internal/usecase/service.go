package usecase

import (
	"time"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/database"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Catalog CatalogService
	Ticket  TicketService
	Support SupportService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	sessionExpiry := time.Duration(config.Session.ExpiryHours) * time.Hour

	return &Service{
		Auth:    NewAuthService(repo, sessionExpiry, log),
		Movie:   NewMovieService(repo, log),
		Catalog: NewCatalogService(repo, log),
		Ticket:  NewTicketService(db, repo, log),
		Support: NewSupportService(repo, log),
	}
}
