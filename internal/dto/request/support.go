package request

type CreateTicketRequest struct {
	Subject      string  `json:"subject" validate:"required,min=1,max=255"`
	Description  string  `json:"description" validate:"required,min=1"`
	Priority     *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	ContactPhone *string `json:"contact_phone,omitempty" validate:"omitempty,min=8,max=20"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

type UpdateTicketRequest struct {
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority       *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	SupportAgentID *string `json:"support_agent_id,omitempty" validate:"omitempty,uuid4"`
}

type CreateInteractionRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// CreateSupportBookingRequest lets an agent book on behalf of a customer.
type CreateSupportBookingRequest struct {
	UserID     string   `json:"user_id" validate:"required,uuid4"`
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
}
