package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type TicketResponse struct {
	ID             string                `json:"id"`
	Reference      string                `json:"ticket_reference"`
	UserID         *string               `json:"user_id,omitempty"`
	SupportAgentID *string               `json:"support_agent_id,omitempty"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	Status         entity.TicketStatus   `json:"status"`
	Priority       entity.TicketPriority `json:"priority"`
	ContactPhone   *string               `json:"contact_phone,omitempty"`
	ContactEmail   *string               `json:"contact_email,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type InteractionResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    *string   `json:"user_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func TicketToResponse(ticket *entity.SupportTicket) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID.String(),
		Reference:    ticket.Reference,
		Subject:      ticket.Subject,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		ContactPhone: ticket.ContactPhone,
		ContactEmail: ticket.ContactEmail,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}

	if ticket.UserID != nil {
		userID := ticket.UserID.String()
		resp.UserID = &userID
	}
	if ticket.SupportAgentID != nil {
		agentID := ticket.SupportAgentID.String()
		resp.SupportAgentID = &agentID
	}

	return resp
}

func InteractionToResponse(interaction *entity.SupportInteraction) InteractionResponse {
	resp := InteractionResponse{
		ID:        interaction.ID.String(),
		TicketID:  interaction.SupportTicketID.String(),
		Message:   interaction.Message,
		CreatedAt: interaction.CreatedAt,
	}

	if interaction.UserID != nil {
		userID := interaction.UserID.String()
		resp.UserID = &userID
	}

	return resp
}
