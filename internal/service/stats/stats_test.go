package stats

import (
	"context"
	"testing"
	"time"

	"crmdesk-service/internal/repository"
	"crmdesk-service/internal/storage"
	"crmdesk-service/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(store *storagetest.FakeStore) *StatsService {
	cfg := repository.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return NewStatsService(
		repository.NewCustomerRepository(store, cfg),
		repository.NewInteractionRepository(store, cfg),
		repository.NewTicketRepository(store, cfg),
		zap.NewNop(),
	)
}

func TestSnapshotEmptyDataset(t *testing.T) {
	svc := newTestService(storagetest.NewFakeStore())

	got, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.TotalCustomers)
	assert.Equal(t, 0.0, got.TotalRevenue)
	// No customers means no average, not a division by zero.
	assert.Equal(t, 0.0, got.AvgCustomerValue)
}

func TestSnapshotAggregates(t *testing.T) {
	store := storagetest.NewFakeStore()
	now := time.Now().UTC()

	for _, r := range []storage.Row{
		{"id": "c1", "status": "Active", "value": 10000.0},
		{"id": "c2", "status": "Active", "value": 20000.0},
		{"id": "c3", "status": "Prospect", "value": 0.0},
	} {
		r["first_name"] = "F"
		r["last_name"] = "L"
		r["email"] = "x@example.com"
		r["created_at"] = now
		r["updated_at"] = now
		store.Seed("customers", r)
	}

	store.Seed("interactions",
		storage.Row{"id": "i1", "customer_id": "c1", "type": "Email", "subject": "a", "date": now, "created_at": now, "updated_at": now},
		storage.Row{"id": "i2", "customer_id": "c2", "type": "Phone", "subject": "b", "date": now, "created_at": now, "updated_at": now},
	)

	store.Seed("support_tickets",
		storage.Row{"id": "t1", "customer_id": "c1", "title": "x", "category": "General", "status": "Open", "priority": "Medium", "created_at": now, "updated_at": now},
		storage.Row{"id": "t2", "customer_id": "c1", "title": "y", "category": "General", "status": "Closed", "priority": "Low", "created_at": now, "updated_at": now},
	)

	got, err := newTestService(store).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.TotalCustomers)
	assert.Equal(t, int64(2), got.ActiveCustomers)
	assert.Equal(t, int64(2), got.TotalInteractions)
	assert.Equal(t, int64(1), got.OpenTickets)
	assert.Equal(t, 30000.0, got.TotalRevenue)
	assert.Equal(t, 10000.0, got.AvgCustomerValue)
}
