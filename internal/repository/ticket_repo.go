package repository

import (
	"context"
	"time"

	"crmdesk-service/internal/domain/ticket"
	"crmdesk-service/internal/mapper"
	"crmdesk-service/internal/storage"
)

var ticketSearchFields = []string{"title", "category"}

type TicketRepository struct {
	store storage.Store
	cfg   Config
}

func NewTicketRepository(store storage.Store, cfg Config) *TicketRepository {
	return &TicketRepository{store: store, cfg: cfg}
}

func (r *TicketRepository) baseQuery() *storage.Query {
	return storage.NewQuery(ticketsCollection).
		WithRelation(customersCollection, "customer_id", mapper.CustomerJoinFields...)
}

// List returns a page of tickets with joined customer display fields,
// newest first.
func (r *TicketRepository) List(ctx context.Context, f *ticket.ListFilters) (*ticket.ListResponse, error) {
	page, pageSize := r.cfg.Normalize(f.Page, f.PageSize)

	q := r.baseQuery().
		Where("status", f.Status).
		Where("priority", f.Priority).
		Where("customer_id", f.CustomerID).
		SearchIn(f.Search, ticketSearchFields...)
	if err := q.Paginate(page, pageSize); err != nil {
		return nil, err
	}

	rows, total, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	tickets := make([]ticket.SupportTicket, 0, len(rows))
	for _, row := range rows {
		t, err := mapper.TicketFromRow(row)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}

	return &ticket.ListResponse{
		Data:       tickets,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: storage.TotalPages(total, pageSize),
	}, nil
}

// Get returns one ticket with its customer display fields and its
// responses ordered oldest first.
func (r *TicketRepository) Get(ctx context.Context, id string) (*ticket.SupportTicket, error) {
	row, err := r.store.SelectOne(ctx, r.baseQuery().Where("id", id))
	if err != nil {
		return nil, err
	}
	t, err := mapper.TicketFromRow(row)
	if err != nil {
		return nil, err
	}

	respQuery := storage.NewQuery(responsesCollection).
		Where("ticket_id", id).
		OrderBy("created_at", false)
	respRows, _, err := r.store.Select(ctx, respQuery)
	if err != nil {
		return nil, err
	}

	t.Responses = make([]ticket.Response, 0, len(respRows))
	for _, rr := range respRows {
		resp, err := mapper.ResponseFromRow(rr)
		if err != nil {
			return nil, err
		}
		t.Responses = append(t.Responses, *resp)
	}
	return t, nil
}

func (r *TicketRepository) Create(ctx context.Context, req *ticket.CreateTicketRequest) (*ticket.SupportTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := mapper.TicketCreateRow(req)
	row["id"] = newID()
	row["created_at"] = now
	row["updated_at"] = now

	stored, err := r.store.Insert(ctx, ticketsCollection, row)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, stored.String("id"))
}

// Update applies a partial payload; fields absent from the request are
// left untouched in storage.
func (r *TicketRepository) Update(ctx context.Context, id string, req *ticket.UpdateTicketRequest) (*ticket.SupportTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row := mapper.TicketUpdateRow(req)
	row["updated_at"] = time.Now().UTC()

	if _, err := r.store.Update(ctx, ticketsCollection, id, row); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, ticketsCollection, id)
}

// AddResponse appends a reply to a ticket. The ticket must exist.
func (r *TicketRepository) AddResponse(ctx context.Context, ticketID string, req *ticket.CreateResponseRequest) (*ticket.Response, error) {
	if _, err := r.store.SelectOne(ctx, storage.NewQuery(ticketsCollection).Where("id", ticketID)); err != nil {
		return nil, err
	}

	row := mapper.ResponseCreateRow(ticketID, req)
	row["id"] = newID()
	row["created_at"] = time.Now().UTC()

	stored, err := r.store.Insert(ctx, responsesCollection, row)
	if err != nil {
		return nil, err
	}
	return mapper.ResponseFromRow(stored)
}

// CountByStatus returns the number of tickets in one workflow state; an
// empty status counts every ticket.
func (r *TicketRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.store.Count(ctx, storage.NewQuery(ticketsCollection).Where("status", status))
}
