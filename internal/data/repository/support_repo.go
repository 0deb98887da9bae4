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

// SupportTicketFilter narrows FindTickets. Nil fields are ignored.
type SupportTicketFilter struct {
	UserID         *uuid.UUID
	SupportAgentID *uuid.UUID
	Status         *entity.TicketStatus
}

type SupportRepository interface {
	CreateTicket(ctx context.Context, ticket *entity.SupportTicket) error
	FindTicketByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error)
	FindTicketByReference(ctx context.Context, reference string) (*entity.SupportTicket, error)
	FindTickets(ctx context.Context, filter SupportTicketFilter, limit, offset int) ([]*entity.SupportTicket, error)
	UpdateTicket(ctx context.Context, ticket *entity.SupportTicket) error

	CreateInteraction(ctx context.Context, interaction *entity.SupportInteraction) error
	FindInteractionsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*entity.SupportInteraction, error)
}

type supportRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSupportRepository(db database.Querier, log *zap.Logger) SupportRepository {
	return &supportRepository{
		db:  db,
		log: log.With(zap.String("repository", "support")),
	}
}

const ticketColumns = `id, user_id, support_agent_id, ticket_reference, subject, description, status, priority, contact_phone, contact_email, created_at, updated_at`

func (r *supportRepository) CreateTicket(ctx context.Context, ticket *entity.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (id, user_id, support_agent_id, ticket_reference, subject, description, status, priority, contact_phone, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.SupportAgentID,
		ticket.Reference,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.ContactPhone,
		ticket.ContactEmail,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create support ticket",
			zap.Error(err),
			zap.String("reference", ticket.Reference),
		)
		return fmt.Errorf("create support ticket %s: %w", ticket.Reference, err)
	}

	return nil
}

func (r *supportRepository) scanTicket(row pgx.Row) (*entity.SupportTicket, error) {
	var ticket entity.SupportTicket
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.SupportAgentID,
		&ticket.Reference,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.ContactPhone,
		&ticket.ContactEmail,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportRepository) FindTicketByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find support ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find support ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *supportRepository) FindTicketByReference(ctx context.Context, reference string) (*entity.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE ticket_reference = $1`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find support ticket by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find support ticket by reference %s: %w", reference, err)
	}

	return ticket, nil
}

func (r *supportRepository) FindTickets(ctx context.Context, filter SupportTicketFilter, limit, offset int) ([]*entity.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets`

	args := []any{}
	where := ""

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	if filter.SupportAgentID != nil {
		args = append(args, *filter.SupportAgentID)
		where += fmt.Sprintf(" AND support_agent_id = $%d", len(args))
	}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if where != "" {
		query += " WHERE " + where[len(" AND "):]
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find support tickets", zap.Error(err))
		return nil, fmt.Errorf("find support tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.SupportTicket
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			r.log.Error("Failed to scan support ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan support ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate support ticket rows: %w", err)
	}

	return tickets, nil
}

func (r *supportRepository) UpdateTicket(ctx context.Context, ticket *entity.SupportTicket) error {
	query := `
		UPDATE support_tickets
		SET support_agent_id = $2, status = $3, priority = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.SupportAgentID,
		ticket.Status,
		ticket.Priority,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update support ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("update support ticket %s: %w", ticket.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("support ticket %s not found", ticket.ID.String())
	}

	return nil
}

func (r *supportRepository) CreateInteraction(ctx context.Context, interaction *entity.SupportInteraction) error {
	query := `
		INSERT INTO support_interactions (id, support_ticket_id, user_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		interaction.ID,
		interaction.SupportTicketID,
		interaction.UserID,
		interaction.Message,
		interaction.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create support interaction",
			zap.Error(err),
			zap.String("ticket_id", interaction.SupportTicketID.String()),
		)
		return fmt.Errorf("create interaction for ticket %s: %w", interaction.SupportTicketID.String(), err)
	}

	return nil
}

func (r *supportRepository) FindInteractionsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*entity.SupportInteraction, error) {
	query := `
		SELECT id, support_ticket_id, user_id, message, created_at
		FROM support_interactions
		WHERE support_ticket_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to find support interactions",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return nil, fmt.Errorf("find interactions for ticket %s: %w", ticketID.String(), err)
	}
	defer rows.Close()

	var interactions []*entity.SupportInteraction
	for rows.Next() {
		var interaction entity.SupportInteraction
		err := rows.Scan(
			&interaction.ID,
			&interaction.SupportTicketID,
			&interaction.UserID,
			&interaction.Message,
			&interaction.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan support interaction row", zap.Error(err))
			return nil, fmt.Errorf("scan support interaction row: %w", err)
		}
		interactions = append(interactions, &interaction)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate support interaction rows: %w", err)
	}

	return interactions, nil
}
