package repository

import (
	"context"
	"time"

	"crmdesk-service/internal/domain/interaction"
	"crmdesk-service/internal/mapper"
	"crmdesk-service/internal/storage"
)

var interactionSearchFields = []string{"subject", "channel"}

type InteractionRepository struct {
	store storage.Store
	cfg   Config
}

func NewInteractionRepository(store storage.Store, cfg Config) *InteractionRepository {
	return &InteractionRepository{store: store, cfg: cfg}
}

// baseQuery joins the parent customer's display columns so list and get
// reads never fall back to per-row lookups.
func (r *InteractionRepository) baseQuery() *storage.Query {
	return storage.NewQuery(interactionsCollection).
		WithRelation(customersCollection, "customer_id", mapper.CustomerJoinFields...)
}

// List returns a page of interactions with joined customer display fields,
// most recent activity first.
func (r *InteractionRepository) List(ctx context.Context, f *interaction.ListFilters) (*interaction.ListResponse, error) {
	page, pageSize := r.cfg.Normalize(f.Page, f.PageSize)

	q := r.baseQuery().
		Where("customer_id", f.CustomerID).
		Where("type", f.Type).
		Where("outcome", f.Outcome).
		SearchIn(f.Search, interactionSearchFields...).
		OrderBy("date", true)
	if err := q.Paginate(page, pageSize); err != nil {
		return nil, err
	}

	rows, total, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	interactions := make([]interaction.Interaction, 0, len(rows))
	for _, row := range rows {
		in, err := mapper.InteractionFromRow(row)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *in)
	}

	return &interaction.ListResponse{
		Data:       interactions,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: storage.TotalPages(total, pageSize),
	}, nil
}

func (r *InteractionRepository) Get(ctx context.Context, id string) (*interaction.Interaction, error) {
	row, err := r.store.SelectOne(ctx, r.baseQuery().Where("id", id))
	if err != nil {
		return nil, err
	}
	return mapper.InteractionFromRow(row)
}

func (r *InteractionRepository) Create(ctx context.Context, req *interaction.CreateInteractionRequest) (*interaction.Interaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := mapper.InteractionCreateRow(req, now)
	row["id"] = newID()
	row["created_at"] = now
	row["updated_at"] = now

	stored, err := r.store.Insert(ctx, interactionsCollection, row)
	if err != nil {
		return nil, err
	}
	// Re-read through the relation join so the caller gets the customer
	// display fields on the freshly created record.
	return r.Get(ctx, stored.String("id"))
}

// Update applies a partial payload. The customer foreign key is immutable
// and cannot appear in the request.
func (r *InteractionRepository) Update(ctx context.Context, id string, req *interaction.UpdateInteractionRequest) (*interaction.Interaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row := mapper.InteractionUpdateRow(req)
	row["updated_at"] = time.Now().UTC()

	if _, err := r.store.Update(ctx, interactionsCollection, id, row); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, interactionsCollection, id)
}

// Count returns the total number of interactions.
func (r *InteractionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, storage.NewQuery(interactionsCollection))
}
