package storage

import (
	xerrors "crmdesk-service/internal/pkg/errors"
)

// Query is a transport-agnostic description of a read against one
// collection: equality filters ANDed together, an optional OR-combined
// substring search over an allow-list of text fields, ordering, and an
// inclusive pagination range with an exact total count.
type Query struct {
	Collection string
	Relation   *Relation
	Filters    []Filter
	Search     *Search
	OrderField string
	OrderDesc  bool
	Offset     int
	Limit      int
}

// Filter is one exact-match condition on a column.
type Filter struct {
	Field string
	Value any
}

// Search is a case-insensitive substring match ORed across Fields.
type Search struct {
	Term   string
	Fields []string
}

// Relation selects columns of a parent record joined inline with the
// primary collection, so list reads never degrade into per-row lookups.
type Relation struct {
	Name       string   // related collection
	ForeignKey string   // column on the primary collection referencing it
	Fields     []string // related columns to select
}

// NewQuery starts a query ordered by creation time, newest first.
func NewQuery(collection string) *Query {
	return &Query{
		Collection: collection,
		OrderField: "created_at",
		OrderDesc:  true,
		Limit:      -1,
	}
}

// WithRelation joins a parent collection and selects the given columns.
func (q *Query) WithRelation(name, foreignKey string, fields ...string) *Query {
	q.Relation = &Relation{Name: name, ForeignKey: foreignKey, Fields: fields}
	return q
}

// Where adds an exact-match filter. Empty or nil values are dropped: an
// absent filter never means "match empty".
func (q *Query) Where(field string, value any) *Query {
	if value == nil {
		return q
	}
	if s, ok := value.(string); ok && s == "" {
		return q
	}
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// SearchIn attaches a substring search over the given text fields. A blank
// term is a no-op.
func (q *Query) SearchIn(term string, fields ...string) *Query {
	if term == "" || len(fields) == 0 {
		return q
	}
	q.Search = &Search{Term: term, Fields: fields}
	return q
}

// OrderBy overrides the default created_at-descending ordering.
func (q *Query) OrderBy(field string, desc bool) *Query {
	q.OrderField = field
	q.OrderDesc = desc
	return q
}

// Paginate sets the inclusive range [offset, offset+pageSize-1] for a
// 1-indexed page request.
func (q *Query) Paginate(page, pageSize int) error {
	if page < 1 || pageSize < 1 {
		return &xerrors.PaginationError{Page: page, PageSize: pageSize}
	}
	q.Offset = (page - 1) * pageSize
	q.Limit = pageSize
	return nil
}

// TotalPages computes ceil(total / pageSize) for a list envelope.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
