package repository

import (
	"context"
	"testing"
	"time"

	"crmdesk-service/internal/domain/interaction"
	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage"
	"crmdesk-service/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedParentCustomer(store *storagetest.FakeStore) {
	store.Seed("customers", storage.Row{
		"id":         "cust1",
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "ann@example.com",
		"company":    "BigTech Inc",
		"status":     "Active",
		"created_at": time.Now().UTC(),
		"updated_at": time.Now().UTC(),
	})
}

func TestInteractionCreateJoinsCustomerName(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewInteractionRepository(store, testCfg)

	in, err := repo.Create(context.Background(), &interaction.CreateInteractionRequest{
		CustomerID: "cust1",
		Type:       interaction.TypeMeeting,
		Subject:    "Quarterly review",
		Duration:   interaction.Minutes{Valid: true, Value: 60},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, in.ID)
	assert.Equal(t, "Ann Lee", in.CustomerName)
	assert.Equal(t, "BigTech Inc", in.CustomerCompany)
	require.NotNil(t, in.Duration)
	assert.Equal(t, 60, *in.Duration)
	assert.False(t, in.Date.IsZero())
}

func TestInteractionListOrphanShowsUnknown(t *testing.T) {
	store := storagetest.NewFakeStore()
	store.Seed("interactions", storage.Row{
		"id":          "i1",
		"customer_id": "gone",
		"type":        "Email",
		"subject":     "Old thread",
		"date":        time.Now().UTC(),
		"created_at":  time.Now().UTC(),
		"updated_at":  time.Now().UTC(),
	})
	repo := NewInteractionRepository(store, testCfg)

	resp, err := repo.List(context.Background(), &interaction.ListFilters{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Unknown", resp.Data[0].CustomerName)
}

func TestInteractionListOrderedByDateDesc(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		store.Seed("interactions", storage.Row{
			"id":          id,
			"customer_id": "cust1",
			"type":        "Email",
			"subject":     "msg " + id,
			"date":        base.Add(time.Duration(i) * time.Hour),
			"created_at":  base,
			"updated_at":  base,
		})
	}
	repo := NewInteractionRepository(store, testCfg)

	resp, err := repo.List(context.Background(), &interaction.ListFilters{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "c", resp.Data[0].ID)
	assert.Equal(t, "a", resp.Data[2].ID)
}

func TestInteractionUpdateClearsDuration(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedParentCustomer(store)
	repo := NewInteractionRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &interaction.CreateInteractionRequest{
		CustomerID: "cust1",
		Type:       interaction.TypePhone,
		Subject:    "Intro call",
		Duration:   interaction.Minutes{Valid: true, Value: 15},
	})
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), created.ID, &interaction.UpdateInteractionRequest{
		Duration: &interaction.Minutes{Valid: false},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Duration)
}

func TestInteractionGetMissing(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewInteractionRepository(store, testCfg)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
