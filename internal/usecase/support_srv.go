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

// TicketListFilter carries the query-string filters for listing support
// tickets.
type TicketListFilter struct {
	UserID         *string
	SupportAgentID *string
	Status         *string
}

type SupportService interface {
	// Customer endpoints
	CreateTicket(ctx context.Context, userID *string, req *request.CreateTicketRequest) (*response.TicketResponse, error)
	GetTicketByReference(ctx context.Context, reference string) (*response.TicketResponse, error)
	GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) ([]*response.TicketResponse, error)
	AddInteraction(ctx context.Context, ticketID string, userID *string, req *request.CreateInteractionRequest) (*response.InteractionResponse, error)
	GetInteractions(ctx context.Context, ticketID string) ([]*response.InteractionResponse, error)

	// Agent endpoints
	GetTickets(ctx context.Context, filter TicketListFilter, req *request.PaginatedRequest) ([]*response.TicketResponse, error)
	UpdateTicket(ctx context.Context, ticketID string, req *request.UpdateTicketRequest) (*response.TicketResponse, error)
}

type supportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSupportService(repo *repository.Repository, log *zap.Logger) SupportService {
	return &supportService{
		repo: repo,
		log:  log.With(zap.String("service", "support")),
	}
}

// CreateTicket accepts an optional user ID: tickets can come from logged-in
// customers or from anonymous contact forms carrying only contact details.
func (s *supportService) CreateTicket(ctx context.Context, userID *string, req *request.CreateTicketRequest) (*response.TicketResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	var userUUID *uuid.UUID
	if userID != nil {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *userID, ErrInvalidArgument)
		}
		userUUID = &parsed
	}

	if userUUID == nil && req.ContactEmail == nil && req.ContactPhone == nil {
		return nil, fmt.Errorf("anonymous ticket requires contact email or phone: %w", ErrInvalidArgument)
	}

	priority := entity.TicketPriorityMedium
	if req.Priority != nil {
		priority = entity.TicketPriority(*req.Priority)
	}

	now := time.Now()
	ticket := &entity.SupportTicket{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userUUID,
		Reference:    utils.GenerateTicketReference(),
		Subject:      req.Subject,
		Description:  req.Description,
		Status:       entity.TicketStatusOpen,
		Priority:     priority,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}

	if err := s.repo.Support.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create support ticket: %w", err)
	}

	s.log.Info("Support ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("reference", ticket.Reference),
		zap.String("priority", string(ticket.Priority)),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *supportService) GetTicketByReference(ctx context.Context, reference string) (*response.TicketResponse, error) {
	ticket, err := s.repo.Support.FindTicketByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("support ticket %s: %w", reference, ErrNotFound)
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *supportService) GetUserTickets(ctx context.Context, userID string, req *request.PaginatedRequest) ([]*response.TicketResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidArgument)
	}

	tickets, err := s.repo.Support.FindTickets(ctx, repository.SupportTicketFilter{UserID: &userUUID}, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user tickets", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user tickets: %w", err)
	}

	return ticketsToResponses(tickets), nil
}

func (s *supportService) AddInteraction(ctx context.Context, ticketID string, userID *string, req *request.CreateInteractionRequest) (*response.InteractionResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, ErrInvalidArgument)
	}

	ticket, err := s.repo.Support.FindTicketByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("support ticket %s: %w", ticketID, ErrNotFound)
	}

	if ticket.Status == entity.TicketStatusClosed {
		return nil, fmt.Errorf("ticket %s is closed: %w", ticket.Reference, ErrInvalidArgument)
	}

	var userUUID *uuid.UUID
	if userID != nil {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *userID, ErrInvalidArgument)
		}
		userUUID = &parsed
	}

	interaction := &entity.SupportInteraction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		SupportTicketID: ticket.ID,
		UserID:          userUUID,
		Message:         req.Message,
	}

	if err := s.repo.Support.CreateInteraction(ctx, interaction); err != nil {
		return nil, fmt.Errorf("create interaction: %w", err)
	}

	s.log.Info("Interaction added",
		zap.String("ticket_id", ticketID),
		zap.String("reference", ticket.Reference),
	)

	resp := response.InteractionToResponse(interaction)
	return &resp, nil
}

func (s *supportService) GetInteractions(ctx context.Context, ticketID string) ([]*response.InteractionResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, ErrInvalidArgument)
	}

	ticket, err := s.repo.Support.FindTicketByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("support ticket %s: %w", ticketID, ErrNotFound)
	}

	interactions, err := s.repo.Support.FindInteractionsByTicketID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find interactions: %w", err)
	}

	interactionResponses := make([]*response.InteractionResponse, len(interactions))
	for i, interaction := range interactions {
		resp := response.InteractionToResponse(interaction)
		interactionResponses[i] = &resp
	}

	return interactionResponses, nil
}

// ==================== AGENT METHODS ====================

func (s *supportService) GetTickets(ctx context.Context, filter TicketListFilter, req *request.PaginatedRequest) ([]*response.TicketResponse, error) {
	repoFilter := repository.SupportTicketFilter{}

	if filter.UserID != nil {
		userID, err := uuid.Parse(*filter.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *filter.UserID, ErrInvalidArgument)
		}
		repoFilter.UserID = &userID
	}

	if filter.SupportAgentID != nil {
		agentID, err := uuid.Parse(*filter.SupportAgentID)
		if err != nil {
			return nil, fmt.Errorf("invalid agent ID format %s: %w", *filter.SupportAgentID, ErrInvalidArgument)
		}
		repoFilter.SupportAgentID = &agentID
	}

	if filter.Status != nil {
		status := entity.TicketStatus(*filter.Status)
		repoFilter.Status = &status
	}

	tickets, err := s.repo.Support.FindTickets(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get tickets", zap.Error(err))
		return nil, fmt.Errorf("get tickets: %w", err)
	}

	return ticketsToResponses(tickets), nil
}

func (s *supportService) UpdateTicket(ctx context.Context, ticketID string, req *request.UpdateTicketRequest) (*response.TicketResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", ticketID, ErrInvalidArgument)
	}

	ticket, err := s.repo.Support.FindTicketByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("support ticket %s: %w", ticketID, ErrNotFound)
	}

	patch := entity.SupportTicketPatch{}
	if req.Status != nil {
		status := entity.TicketStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := entity.TicketPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.SupportAgentID != nil {
		agentID, err := uuid.Parse(*req.SupportAgentID)
		if err != nil {
			return nil, fmt.Errorf("invalid agent ID format %s: %w", *req.SupportAgentID, ErrInvalidArgument)
		}

		// Only support staff can be assigned
		agent, err := s.repo.User.FindByID(ctx, agentID)
		if err != nil {
			return nil, fmt.Errorf("find agent: %w", err)
		}
		if agent == nil {
			return nil, fmt.Errorf("user %s: %w", *req.SupportAgentID, ErrNotFound)
		}
		if agent.Role != entity.RoleSupportAgent && agent.Role != entity.RoleAdmin {
			return nil, fmt.Errorf("user %s is not a support agent: %w", *req.SupportAgentID, ErrInvalidArgument)
		}

		patch.SupportAgentID = &agentID
	}

	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.SupportAgentID != nil {
		ticket.SupportAgentID = patch.SupportAgentID

		// Assignment moves a fresh ticket into progress
		if patch.Status == nil && ticket.Status == entity.TicketStatusOpen {
			ticket.Status = entity.TicketStatusInProgress
		}
	}
	ticket.UpdatedAt = time.Now()

	if err := s.repo.Support.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	s.log.Info("Support ticket updated",
		zap.String("ticket_id", ticketID),
		zap.String("reference", ticket.Reference),
		zap.String("status", string(ticket.Status)),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func ticketsToResponses(tickets []*entity.SupportTicket) []*response.TicketResponse {
	responses := make([]*response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp := response.TicketToResponse(ticket)
		responses[i] = &resp
	}
	return responses
}
