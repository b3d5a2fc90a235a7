package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crmdesk-service/internal/domain/customer"
	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage"
	"crmdesk-service/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = Config{DefaultPageSize: 20, MaxPageSize: 100}

func seedCustomers(store *storagetest.FakeStore, n int) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		status := "Prospect"
		if i%2 == 0 {
			status = "Active"
		}
		store.Seed("customers", storage.Row{
			"id":         fmt.Sprintf("c%03d", i),
			"first_name": fmt.Sprintf("First%d", i),
			"last_name":  fmt.Sprintf("Last%d", i),
			"email":      fmt.Sprintf("user%d@example.com", i),
			"status":     status,
			"value":      float64(i * 1000),
			"created_at": base.Add(time.Duration(i) * time.Hour),
			"updated_at": base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestCustomerListPagination(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedCustomers(store, 25)
	repo := NewCustomerRepository(store, testCfg)

	resp, err := repo.List(context.Background(), &customer.ListFilters{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Data, 10)

	// Newest first: page 2 of 25 starts at the 11th most recent.
	assert.Equal(t, "c014", resp.Data[0].ID)
}

func TestCustomerListDefaultsWhenUnset(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedCustomers(store, 5)
	repo := NewCustomerRepository(store, testCfg)

	resp, err := repo.List(context.Background(), &customer.ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Len(t, resp.Data, 5)
}

func TestCustomerListRejectsNegativePage(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	_, err := repo.List(context.Background(), &customer.ListFilters{Page: -1, PageSize: 10})
	require.Error(t, err)
	assert.True(t, xerrors.IsPagination(err))
}

func TestCustomerListStatusFilterAndSearch(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedCustomers(store, 10)
	store.Seed("customers", storage.Row{
		"id": "tech1", "first_name": "Tara", "last_name": "Okoye",
		"email": "tara@bigtech.io", "company": "BigTech Inc",
		"status": "Active", "value": 50000.0,
		"created_at": time.Now().UTC(), "updated_at": time.Now().UTC(),
	})
	repo := NewCustomerRepository(store, testCfg)

	byStatus, err := repo.List(context.Background(), &customer.ListFilters{Status: "Active"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), byStatus.Total)

	bySearch, err := repo.List(context.Background(), &customer.ListFilters{Search: "bigtech"})
	require.NoError(t, err)
	require.Equal(t, int64(1), bySearch.Total)
	assert.Equal(t, "tech1", bySearch.Data[0].ID)
}

func TestCustomerCreateDefaults(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	c, err := repo.Create(context.Background(), &customer.CreateCustomerRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, customer.StatusProspect, c.Status)
	assert.Equal(t, 0.0, c.Value)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestCustomerCreateRejectsInvalid(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	_, err := repo.Create(context.Background(), &customer.CreateCustomerRequest{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
		Status: "Archived",
	})
	assert.True(t, xerrors.IsValidation(err))

	_, err = repo.Create(context.Background(), &customer.CreateCustomerRequest{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
		Value: -1,
	})
	assert.True(t, xerrors.IsValidation(err))

	assert.Empty(t, store.All("customers"))
}

func TestCustomerUpdatePartialPreservesFields(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &customer.CreateCustomerRequest{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
		Company: "Acme", Value: 500,
	})
	require.NoError(t, err)

	company := "BigTech Inc"
	updated, err := repo.Update(context.Background(), created.ID, &customer.UpdateCustomerRequest{
		Company: &company,
	})
	require.NoError(t, err)

	assert.Equal(t, "BigTech Inc", updated.Company)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.Equal(t, 500.0, updated.Value)
}

func TestCustomerUpdateMissing(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	name := "Nobody"
	_, err := repo.Update(context.Background(), "missing", &customer.UpdateCustomerRequest{FirstName: &name})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCustomerDeleteIdempotencyBoundary(t *testing.T) {
	store := storagetest.NewFakeStore()
	repo := NewCustomerRepository(store, testCfg)

	created, err := repo.Create(context.Background(), &customer.CreateCustomerRequest{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), created.ID), xerrors.ErrNotFound)
}

func TestCustomerCountAndSum(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedCustomers(store, 4) // values 0, 1000, 2000, 3000
	repo := NewCustomerRepository(store, testCfg)

	total, err := repo.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	active, err := repo.Count(context.Background(), "Active")
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	sum, err := repo.SumValue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6000.0, sum)
}

func TestCustomerScanVisitsEveryRecordOnce(t *testing.T) {
	store := storagetest.NewFakeStore()
	seedCustomers(store, 7)
	repo := NewCustomerRepository(store, testCfg)

	seen := map[string]int{}
	err := repo.Scan(context.Background(), 3, func(batch []customer.Customer) error {
		for _, c := range batch {
			seen[c.ID]++
		}
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, seen, 7)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}
