package usecase

import (
	"context"
	"testing"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSupportRepo struct {
	tickets      map[uuid.UUID]*entity.SupportTicket
	interactions []*entity.SupportInteraction
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{tickets: make(map[uuid.UUID]*entity.SupportTicket)}
}

func (r *fakeSupportRepo) CreateTicket(ctx context.Context, ticket *entity.SupportTicket) error {
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeSupportRepo) FindTicketByID(ctx context.Context, id uuid.UUID) (*entity.SupportTicket, error) {
	return r.tickets[id], nil
}

func (r *fakeSupportRepo) FindTicketByReference(ctx context.Context, reference string) (*entity.SupportTicket, error) {
	for _, ticket := range r.tickets {
		if ticket.Reference == reference {
			return ticket, nil
		}
	}
	return nil, nil
}

func (r *fakeSupportRepo) FindTickets(ctx context.Context, filter repository.SupportTicketFilter, limit, offset int) ([]*entity.SupportTicket, error) {
	var out []*entity.SupportTicket
	for _, ticket := range r.tickets {
		if filter.UserID != nil && (ticket.UserID == nil || *ticket.UserID != *filter.UserID) {
			continue
		}
		if filter.SupportAgentID != nil && (ticket.SupportAgentID == nil || *ticket.SupportAgentID != *filter.SupportAgentID) {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (r *fakeSupportRepo) UpdateTicket(ctx context.Context, ticket *entity.SupportTicket) error {
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeSupportRepo) CreateInteraction(ctx context.Context, interaction *entity.SupportInteraction) error {
	r.interactions = append(r.interactions, interaction)
	return nil
}

func (r *fakeSupportRepo) FindInteractionsByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*entity.SupportInteraction, error) {
	var out []*entity.SupportInteraction
	for _, interaction := range r.interactions {
		if interaction.SupportTicketID == ticketID {
			out = append(out, interaction)
		}
	}
	return out, nil
}

func newSupportService(t *testing.T) (SupportService, *memStore, *fakeSupportRepo) {
	t.Helper()
	store := newMemStore()
	support := newFakeSupportRepo()
	repo := &repository.Repository{
		User:    &fakeUserRepo{store: store},
		Support: support,
	}
	return NewSupportService(repo, zap.NewNop()), store, support
}

func strPtr(s string) *string { return &s }

func TestCreateTicket_LoggedInUser(t *testing.T) {
	service, store, _ := newSupportService(t)

	userID := uuid.New()
	store.users[userID] = &entity.User{Base: entity.Base{ID: userID}, Role: entity.RoleCustomer, IsActive: true}

	id := userID.String()
	ticket, err := service.CreateTicket(context.Background(), &id, &request.CreateTicketRequest{
		Subject:     "Refund request",
		Description: "Double charged for booking",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^SUP-[0-9A-F]{6}$`, ticket.Reference)
	assert.Equal(t, entity.TicketStatusOpen, ticket.Status)
	assert.Equal(t, entity.TicketPriorityMedium, ticket.Priority)
	require.NotNil(t, ticket.UserID)
	assert.Equal(t, id, *ticket.UserID)
}

func TestCreateTicket_AnonymousNeedsContact(t *testing.T) {
	service, _, _ := newSupportService(t)

	_, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:     "Cannot log in",
		Description: "Password reset email never arrives",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	ticket, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Cannot log in",
		Description:  "Password reset email never arrives",
		ContactEmail: strPtr("visitor@example.com"),
	})
	require.NoError(t, err)
	assert.Nil(t, ticket.UserID)
	require.NotNil(t, ticket.ContactEmail)
}

func TestCreateTicket_ExplicitPriority(t *testing.T) {
	service, _, _ := newSupportService(t)

	ticket, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Site down",
		Description:  "Checkout page returns an error",
		Priority:     strPtr("urgent"),
		ContactPhone: strPtr("+15550001111"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketPriorityUrgent, ticket.Priority)
}

func TestGetTicketByReference(t *testing.T) {
	service, _, _ := newSupportService(t)

	created, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Seat question",
		Description:  "Are accessible seats near the exit?",
		ContactEmail: strPtr("visitor@example.com"),
	})
	require.NoError(t, err)

	found, err := service.GetTicketByReference(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetTicketByReference(context.Background(), "SUP-000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddInteraction(t *testing.T) {
	service, _, support := newSupportService(t)

	ticket, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Refund status",
		Description:  "Where is my refund?",
		ContactEmail: strPtr("visitor@example.com"),
	})
	require.NoError(t, err)

	interaction, err := service.AddInteraction(context.Background(), ticket.ID, nil,
		&request.CreateInteractionRequest{Message: "Any update?"})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, interaction.TicketID)

	interactions, err := service.GetInteractions(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Len(t, interactions, 1)

	// Closed tickets take no further messages
	ticketID := uuid.MustParse(ticket.ID)
	support.tickets[ticketID].Status = entity.TicketStatusClosed

	_, err = service.AddInteraction(context.Background(), ticket.ID, nil,
		&request.CreateInteractionRequest{Message: "Hello?"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateTicket_AssignmentMovesOpenTicketInProgress(t *testing.T) {
	service, store, _ := newSupportService(t)

	agentID := uuid.New()
	store.users[agentID] = &entity.User{Base: entity.Base{ID: agentID}, Role: entity.RoleSupportAgent, IsActive: true}

	ticket, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Billing",
		Description:  "Charged twice",
		ContactEmail: strPtr("visitor@example.com"),
	})
	require.NoError(t, err)

	id := agentID.String()
	updated, err := service.UpdateTicket(context.Background(), ticket.ID,
		&request.UpdateTicketRequest{SupportAgentID: &id})
	require.NoError(t, err)

	assert.Equal(t, entity.TicketStatusInProgress, updated.Status)
	require.NotNil(t, updated.SupportAgentID)
	assert.Equal(t, id, *updated.SupportAgentID)
}

func TestUpdateTicket_RejectsNonAgentAssignee(t *testing.T) {
	service, store, _ := newSupportService(t)

	customerID := uuid.New()
	store.users[customerID] = &entity.User{Base: entity.Base{ID: customerID}, Role: entity.RoleCustomer, IsActive: true}

	ticket, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
		Subject:      "Billing",
		Description:  "Charged twice",
		ContactEmail: strPtr("visitor@example.com"),
	})
	require.NoError(t, err)

	id := customerID.String()
	_, err = service.UpdateTicket(context.Background(), ticket.ID,
		&request.UpdateTicketRequest{SupportAgentID: &id})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetTickets_FilterByStatus(t *testing.T) {
	service, _, support := newSupportService(t)

	for i := 0; i < 3; i++ {
		_, err := service.CreateTicket(context.Background(), nil, &request.CreateTicketRequest{
			Subject:      "Question",
			Description:  "A question",
			ContactEmail: strPtr("visitor@example.com"),
		})
		require.NoError(t, err)
	}

	// Resolve one of them
	for _, ticket := range support.tickets {
		ticket.Status = entity.TicketStatusResolved
		break
	}

	resolved := "resolved"
	tickets, err := service.GetTickets(context.Background(),
		TicketListFilter{Status: &resolved}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}
