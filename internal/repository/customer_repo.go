package repository

import (
	"context"
	"time"

	"crmdesk-service/internal/domain/customer"
	"crmdesk-service/internal/mapper"
	"crmdesk-service/internal/storage"
)

// customerSearchFields is the fixed allow-list of text columns the
// free-text search may touch.
var customerSearchFields = []string{"first_name", "last_name", "email", "company"}

type CustomerRepository struct {
	store storage.Store
	cfg   Config
}

func NewCustomerRepository(store storage.Store, cfg Config) *CustomerRepository {
	return &CustomerRepository{store: store, cfg: cfg}
}

// List returns a page of customers matching the filters, newest first.
func (r *CustomerRepository) List(ctx context.Context, f *customer.ListFilters) (*customer.ListResponse, error) {
	page, pageSize := r.cfg.Normalize(f.Page, f.PageSize)

	q := storage.NewQuery(customersCollection).
		Where("status", f.Status).
		Where("industry", f.Industry).
		SearchIn(f.Search, customerSearchFields...)
	if err := q.Paginate(page, pageSize); err != nil {
		return nil, err
	}

	rows, total, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	customers := make([]customer.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := mapper.CustomerFromRow(row)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}

	return &customer.ListResponse{
		Data:       customers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: storage.TotalPages(total, pageSize),
	}, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	row, err := r.store.SelectOne(ctx, storage.NewQuery(customersCollection).Where("id", id))
	if err != nil {
		return nil, err
	}
	return mapper.CustomerFromRow(row)
}

func (r *CustomerRepository) Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &customer.Customer{
		ID:        newID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Industry:  req.Industry,
		Status:    req.Status,
		Value:     req.Value,
		Tags:      req.Tags,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	row, err := mapper.CustomerToRow(c)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.Insert(ctx, customersCollection, row)
	if err != nil {
		return nil, err
	}
	return mapper.CustomerFromRow(stored)
}

// Update applies a partial payload; fields absent from the request are
// left untouched in storage.
func (r *CustomerRepository) Update(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row, err := mapper.CustomerUpdateRow(req)
	if err != nil {
		return nil, err
	}
	row["updated_at"] = time.Now().UTC()

	stored, err := r.store.Update(ctx, customersCollection, id, row)
	if err != nil {
		return nil, err
	}
	return mapper.CustomerFromRow(stored)
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, customersCollection, id)
}

// Count returns the number of customers, optionally restricted to one
// status.
func (r *CustomerRepository) Count(ctx context.Context, status string) (int64, error) {
	return r.store.Count(ctx, storage.NewQuery(customersCollection).Where("status", status))
}

// SumValue totals customer value across the whole collection, with missing
// values counting as zero.
func (r *CustomerRepository) SumValue(ctx context.Context) (float64, error) {
	return r.store.Sum(ctx, storage.NewQuery(customersCollection), "value")
}

// Scan walks every customer in stable pages and hands each batch to fn.
// The segmentation engine uses it to evaluate rules without loading the
// whole collection at once.
func (r *CustomerRepository) Scan(ctx context.Context, pageSize int, fn func([]customer.Customer) error) error {
	for page := 1; ; page++ {
		q := storage.NewQuery(customersCollection).OrderBy("created_at", false)
		if err := q.Paginate(page, pageSize); err != nil {
			return err
		}
		rows, total, err := r.store.Select(ctx, q)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		batch := make([]customer.Customer, 0, len(rows))
		for _, row := range rows {
			c, err := mapper.CustomerFromRow(row)
			if err != nil {
				return err
			}
			batch = append(batch, *c)
		}
		if err := fn(batch); err != nil {
			return err
		}
		if int64(page*pageSize) >= total {
			return nil
		}
	}
}
