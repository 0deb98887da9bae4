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

type SupportHandler struct {
	service usecase.SupportService
	log     *zap.Logger
}

func NewSupportHandler(service usecase.SupportService, log *zap.Logger) *SupportHandler {
	return &SupportHandler{
		service: service,
		log:     log.With(zap.String("handler", "support")),
	}
}

// CreateTicket handles POST /api/support/tickets (public; user attached when
// the request carries a valid session)
func (h *SupportHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var userID *string
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		idStr := id.String()
		userID = &idStr
	}

	ticket, err := h.service.CreateTicket(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "success", ticket)
}

// GetTicketByReference handles GET /api/support/tickets/reference/{reference} (public)
func (h *SupportHandler) GetTicketByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Ticket reference is required", nil)
		return
	}

	ticket, err := h.service.GetTicketByReference(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket by reference")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetUserTickets handles GET /api/support/my-tickets (protected)
func (h *SupportHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.GetUserTickets(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// AddInteraction handles POST /api/support/tickets/{id}/interactions
func (h *SupportHandler) AddInteraction(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	var req request.CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var userID *string
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		idStr := id.String()
		userID = &idStr
	}

	interaction, err := h.service.AddInteraction(r.Context(), ticketID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add interaction")
		return
	}

	utils.ResponseCreated(w, "success", interaction)
}

// GetInteractions handles GET /api/support/tickets/{id}/interactions
func (h *SupportHandler) GetInteractions(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	interactions, err := h.service.GetInteractions(r.Context(), ticketID)
	if err != nil {
		handleServiceError(w, h.log, err, "get interactions")
		return
	}

	utils.ResponseSuccess(w, "success", interactions)
}

// ==================== AGENT METHODS ====================

// GetTickets handles GET /api/agent/tickets (support agent)
func (h *SupportHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := usecase.TicketListFilter{}
	if userID := query.Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if agentID := query.Get("agent_id"); agentID != "" {
		filter.SupportAgentID = &agentID
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.GetTickets(r.Context(), filter, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// UpdateTicket handles PATCH /api/agent/tickets/{id} (support agent)
func (h *SupportHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	var req request.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, err := h.service.UpdateTicket(r.Context(), ticketID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}
