package repository

import (
	"context"
	"testing"

	"crmdesk-service/internal/domain/ticket"
	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketCreateDefaults(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewTicketRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &ticket.CreateTicketRequest{
		CustomerID: "cust1",
		Title:      "Cannot log in",
		Category:   "Access",
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.PriorityMedium, created.Priority)
	assert.Equal(t, ticket.StatusOpen, created.Status)
	assert.Equal(t, "Ann Lee", created.CustomerName)
	assert.Empty(t, created.Responses)
}

func TestTicketResponsesAttachedInOrder(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewTicketRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &ticket.CreateTicketRequest{
		CustomerID: "cust1",
		Title:      "Billing question",
		Category:   "Billing",
	})
	require.NoError(t, err)

	for _, msg := range []string{"first reply", "second reply"} {
		_, err := repo.AddResponse(context.Background(), created.ID, &ticket.CreateResponseRequest{
			Author:  "support",
			Message: msg,
		})
		require.NoError(t, err)
	}

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Responses, 2)
	assert.Equal(t, "first reply", got.Responses[0].Message)
	assert.Equal(t, "second reply", got.Responses[1].Message)
}

func TestTicketAddResponseMissingTicket(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewTicketRepository(store, testCfg)

	_, err := repo.AddResponse(context.Background(), "missing", &ticket.CreateResponseRequest{
		Author:  "support",
		Message: "hello?",
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Empty(t, store.All("ticket_responses"))
}

func TestTicketUpdateWorkflowState(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewTicketRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &ticket.CreateTicketRequest{
		CustomerID: "cust1",
		Title:      "Crash on export",
		Category:   "Bug",
		Priority:   ticket.PriorityHigh,
	})
	require.NoError(t, err)

	status := ticket.StatusResolved
	updated, err := repo.Update(context.Background(), created.ID, &ticket.UpdateTicketRequest{
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusResolved, updated.Status)
	assert.Equal(t, ticket.PriorityHigh, updated.Priority)
}

func TestTicketCountByStatus(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewTicketRepository(store, testCfg)

	for _, status := range []ticket.Status{ticket.StatusOpen, ticket.StatusOpen, ticket.StatusClosed} {
		_, err := repo.Create(context.Background(), &ticket.CreateTicketRequest{
			CustomerID: "cust1",
			Title:      "t",
			Category:   "General",
			Status:     status,
		})
		require.NoError(t, err)
	}

	open, err := repo.CountByStatus(context.Background(), "Open")
	require.NoError(t, err)
	assert.Equal(t, int64(2), open)

	all, err := repo.CountByStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)
}
