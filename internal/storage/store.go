package storage

import "context"

// Store is the boundary to the remote relational backend. Implementations
// provide exact row counts without fetching all rows, range pagination,
// inline relation joins, and per-row atomic writes. The core never inspects
// backend-specific failures; they surface as TransportError.
type Store interface {
	// Select returns the rows matched by q plus the exact total count the
	// pagination range was cut from.
	Select(ctx context.Context, q *Query) ([]Row, int64, error)

	// SelectOne returns exactly one row or xerrors.ErrNotFound.
	SelectOne(ctx context.Context, q *Query) (Row, error)

	// Count returns the exact number of rows matched by q's conditions.
	Count(ctx context.Context, q *Query) (int64, error)

	// Sum totals a numeric column over the rows matched by q, with NULL
	// values counting as zero.
	Sum(ctx context.Context, q *Query, column string) (float64, error)

	// Insert writes one row and returns it as stored, including generated
	// columns.
	Insert(ctx context.Context, collection string, row Row) (Row, error)

	// Update applies a partial row to the record with the given id and
	// returns the updated row, or xerrors.ErrNotFound.
	Update(ctx context.Context, collection, id string, row Row) (Row, error)

	// Delete removes the record with the given id, or xerrors.ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
}
