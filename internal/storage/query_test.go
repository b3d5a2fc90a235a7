package storage

import (
	"testing"

	xerrors "crmdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelectFiltersAndSearch(t *testing.T) {
	q := NewQuery("customers").
		Where("status", "Active").
		Where("industry", "Technology").
		SearchIn("acme", "first_name", "last_name", "email", "company")
	require.NoError(t, q.Paginate(2, 10))

	sql, args := buildSelect(q)

	assert.Equal(t,
		"SELECT t.* FROM customers t"+
			" WHERE t.status = $1 AND t.industry = $2"+
			" AND (t.first_name ILIKE $3 OR t.last_name ILIKE $3 OR t.email ILIKE $3 OR t.company ILIKE $3)"+
			" ORDER BY t.created_at DESC LIMIT 10 OFFSET 10",
		sql,
	)
	assert.Equal(t, []any{"Active", "Technology", "%acme%"}, args)
}

func TestBuildSelectSearchSharesOneArg(t *testing.T) {
	q := NewQuery("customers").SearchIn("tech", "first_name", "company")
	sql, args := buildSelect(q)

	assert.Contains(t, sql, "(t.first_name ILIKE $1 OR t.company ILIKE $1)")
	assert.Equal(t, []any{"%tech%"}, args)
	assert.NotContains(t, sql, "LIMIT")
}

func TestBuildSelectRelationJoin(t *testing.T) {
	q := NewQuery("interactions").
		WithRelation("customers", "customer_id", "first_name", "last_name", "company")
	sql, _ := buildSelect(q)

	assert.Contains(t, sql, `r.first_name AS "customers.first_name"`)
	assert.Contains(t, sql, "LEFT JOIN customers r ON t.customer_id = r.id")
}

func TestWhereDropsEmptyValues(t *testing.T) {
	q := NewQuery("customers").
		Where("status", "").
		Where("industry", nil).
		Where("company", "Acme")

	require.Len(t, q.Filters, 1)
	assert.Equal(t, "company", q.Filters[0].Field)
}

func TestPaginateRejectsOutOfRange(t *testing.T) {
	cases := []struct{ page, pageSize int }{
		{0, 10},
		{-1, 10},
		{1, 0},
		{1, -5},
	}
	for _, tc := range cases {
		err := NewQuery("customers").Paginate(tc.page, tc.pageSize)
		require.Error(t, err)
		assert.True(t, xerrors.IsPagination(err))
	}
}

func TestPaginateOffset(t *testing.T) {
	q := NewQuery("customers")
	require.NoError(t, q.Paginate(3, 25))
	assert.Equal(t, 50, q.Offset)
	assert.Equal(t, 25, q.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 5, TotalPages(100, 20))
	assert.Equal(t, 0, TotalPages(100, 0))
}
