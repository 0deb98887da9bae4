package entity

import (
	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

type SupportTicket struct {
	Base
	UserID         *uuid.UUID     `db:"user_id"`
	SupportAgentID *uuid.UUID     `db:"support_agent_id"`
	Reference      string         `db:"ticket_reference"`
	Subject        string         `db:"subject"`
	Description    string         `db:"description"`
	Status         TicketStatus   `db:"status"`
	Priority       TicketPriority `db:"priority"`
	ContactPhone   *string        `db:"contact_phone"`
	ContactEmail   *string        `db:"contact_email"`
}

// SupportTicketPatch lists the ticket fields an agent may update.
type SupportTicketPatch struct {
	Status         *TicketStatus
	Priority       *TicketPriority
	SupportAgentID *uuid.UUID
}

type SupportInteraction struct {
	BaseSimple
	SupportTicketID uuid.UUID  `db:"support_ticket_id"`
	UserID          *uuid.UUID `db:"user_id"`
	Message         string     `db:"message"`
}
