// Package repository provides the per-entity façades over the storage
// boundary: list/get/create/update/delete plus the count and sum queries
// the aggregation service composes. Repositories validate entity
// invariants before issuing any write and translate rows through the
// schema mapper in both directions.
package repository

import (
	"github.com/oklog/ulid/v2"
)

// Collections known to the storage backend.
const (
	customersCollection    = "customers"
	interactionsCollection = "interactions"
	ticketsCollection      = "support_tickets"
	responsesCollection    = "ticket_responses"
	segmentsCollection     = "customer_segments"
	membershipsCollection  = "segment_memberships"
)

// Config carries the pagination policy handed to every repository at
// construction. There is no process-wide mutable default.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Normalize fills defaults for unset (zero) page parameters and applies
// the page-size cap. Out-of-range values below zero are left for the
// query builder to reject.
func (c Config) Normalize(page, pageSize int) (int, int) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = c.DefaultPageSize
	}
	if c.MaxPageSize > 0 && pageSize > c.MaxPageSize {
		pageSize = c.MaxPageSize
	}
	return page, pageSize
}

// newID generates a lexicographically sortable record id.
func newID() string {
	return ulid.Make().String()
}
