// Package storagetest provides an in-memory Store with the same observable
// semantics as the Postgres implementation, for exercising repositories and
// services without a backend.
package storagetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage"
)

type FakeStore struct {
	mu     sync.Mutex
	tables map[string][]storage.Row

	// ForcedErr, when set, fails every call, simulating a backend fault.
	ForcedErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{tables: map[string][]storage.Row{}}
}

// Seed inserts rows directly, bypassing the Store contract.
func (f *FakeStore) Seed(collection string, rows ...storage.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.tables[collection] = append(f.tables[collection], clone(r))
	}
}

// All returns a snapshot of a collection, for assertions.
func (f *FakeStore) All(collection string) []storage.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Row, 0, len(f.tables[collection]))
	for _, r := range f.tables[collection] {
		out = append(out, clone(r))
	}
	return out
}

func (f *FakeStore) Select(ctx context.Context, q *storage.Query) ([]storage.Row, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return nil, 0, &xerrors.TransportError{Op: "select", Err: f.ForcedErr}
	}

	matched := f.match(q)
	total := int64(len(matched))

	sortRows(matched, q.OrderField, q.OrderDesc)

	if q.Limit >= 0 {
		if q.Offset >= len(matched) {
			matched = nil
		} else {
			end := q.Offset + q.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[q.Offset:end]
		}
	}

	out := make([]storage.Row, 0, len(matched))
	for _, r := range matched {
		out = append(out, f.withRelation(q, r))
	}
	return out, total, nil
}

func (f *FakeStore) SelectOne(ctx context.Context, q *storage.Query) (storage.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return nil, &xerrors.TransportError{Op: "select", Err: f.ForcedErr}
	}
	matched := f.match(q)
	if len(matched) == 0 {
		return nil, xerrors.ErrNotFound
	}
	sortRows(matched, q.OrderField, q.OrderDesc)
	return f.withRelation(q, matched[0]), nil
}

func (f *FakeStore) Count(ctx context.Context, q *storage.Query) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return 0, &xerrors.TransportError{Op: "count", Err: f.ForcedErr}
	}
	return int64(len(f.match(q))), nil
}

func (f *FakeStore) Sum(ctx context.Context, q *storage.Query, column string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return 0, &xerrors.TransportError{Op: "sum", Err: f.ForcedErr}
	}
	var total float64
	for _, r := range f.match(q) {
		v, err := r.Float(column)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func (f *FakeStore) Insert(ctx context.Context, collection string, row storage.Row) (storage.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return nil, &xerrors.TransportError{Op: "insert", Err: f.ForcedErr}
	}
	stored := clone(row)
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = time.Now().UTC()
	}
	f.tables[collection] = append(f.tables[collection], stored)
	return clone(stored), nil
}

func (f *FakeStore) Update(ctx context.Context, collection, id string, row storage.Row) (storage.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return nil, &xerrors.TransportError{Op: "update", Err: f.ForcedErr}
	}
	for i, existing := range f.tables[collection] {
		if existing.String("id") == id {
			for k, v := range row {
				existing[k] = v
			}
			f.tables[collection][i] = existing
			return clone(existing), nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *FakeStore) Delete(ctx context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForcedErr != nil {
		return &xerrors.TransportError{Op: "delete", Err: f.ForcedErr}
	}
	rows := f.tables[collection]
	for i, existing := range rows {
		if existing.String("id") == id {
			f.tables[collection] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

// ---- matching helpers ----

func (f *FakeStore) match(q *storage.Query) []storage.Row {
	var out []storage.Row
	for _, r := range f.tables[q.Collection] {
		if !matchesFilters(r, q.Filters) {
			continue
		}
		if q.Search != nil && !matchesSearch(r, q.Search) {
			continue
		}
		out = append(out, clone(r))
	}
	return out
}

func matchesFilters(r storage.Row, filters []storage.Filter) bool {
	for _, f := range filters {
		if fmt.Sprintf("%v", r[f.Field]) != fmt.Sprintf("%v", f.Value) {
			return false
		}
	}
	return true
}

func matchesSearch(r storage.Row, s *storage.Search) bool {
	term := strings.ToLower(s.Term)
	for _, field := range s.Fields {
		if strings.Contains(strings.ToLower(r.String(field)), term) {
			return true
		}
	}
	return false
}

func (f *FakeStore) withRelation(q *storage.Query, r storage.Row) storage.Row {
	rel := q.Relation
	if rel == nil {
		return r
	}
	fk := r.String(rel.ForeignKey)
	for _, parent := range f.tables[rel.Name] {
		if parent.String("id") == fk {
			for _, field := range rel.Fields {
				r[rel.Name+"."+field] = parent[field]
			}
			return r
		}
	}
	// Left-join semantics: absent parent leaves the prefixed keys NULL.
	for _, field := range rel.Fields {
		r[rel.Name+"."+field] = nil
	}
	return r
}

func sortRows(rows []storage.Row, field string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		less := lessValue(rows[i][field], rows[j][field])
		if desc {
			return lessValue(rows[j][field], rows[i][field])
		}
		return less
	})
}

func lessValue(a, b any) bool {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Before(bt)
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func clone(r storage.Row) storage.Row {
	c := make(storage.Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
