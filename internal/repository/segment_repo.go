package repository

import (
	"context"
	"time"

	"crmdesk-service/internal/domain/segment"
	"crmdesk-service/internal/mapper"
	"crmdesk-service/internal/storage"
)

var segmentSearchFields = []string{"name", "description"}

type SegmentRepository struct {
	store storage.Store
	cfg   Config
}

func NewSegmentRepository(store storage.Store, cfg Config) *SegmentRepository {
	return &SegmentRepository{store: store, cfg: cfg}
}

func (r *SegmentRepository) List(ctx context.Context, f *segment.ListFilters) (*segment.ListResponse, error) {
	page, pageSize := r.cfg.Normalize(f.Page, f.PageSize)

	q := storage.NewQuery(segmentsCollection).
		SearchIn(f.Search, segmentSearchFields...)
	if err := q.Paginate(page, pageSize); err != nil {
		return nil, err
	}

	rows, total, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	segments := make([]segment.Segment, 0, len(rows))
	for _, row := range rows {
		s, err := mapper.SegmentFromRow(row)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *s)
	}

	return &segment.ListResponse{
		Data:       segments,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: storage.TotalPages(total, pageSize),
	}, nil
}

func (r *SegmentRepository) Get(ctx context.Context, id string) (*segment.Segment, error) {
	row, err := r.store.SelectOne(ctx, storage.NewQuery(segmentsCollection).Where("id", id))
	if err != nil {
		return nil, err
	}
	return mapper.SegmentFromRow(row)
}

func (r *SegmentRepository) Create(ctx context.Context, req *segment.CreateSegmentRequest) (*segment.Segment, error) {
	s := &segment.Segment{Name: req.Name, Rules: req.Rules}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row, err := mapper.SegmentCreateRow(req)
	if err != nil {
		return nil, err
	}
	row["id"] = newID()
	row["created_at"] = now
	row["updated_at"] = now

	stored, err := r.store.Insert(ctx, segmentsCollection, row)
	if err != nil {
		return nil, err
	}
	return mapper.SegmentFromRow(stored)
}

// Update applies a partial payload; a request without rules leaves the
// stored rule set untouched.
func (r *SegmentRepository) Update(ctx context.Context, id string, req *segment.UpdateSegmentRequest) (*segment.Segment, error) {
	if req.Name != nil || req.Rules != nil {
		check := &segment.Segment{Name: "unchanged", Rules: req.Rules}
		if req.Name != nil {
			check.Name = *req.Name
		}
		if err := check.Validate(); err != nil {
			return nil, err
		}
	}

	row, err := mapper.SegmentUpdateRow(req)
	if err != nil {
		return nil, err
	}
	row["updated_at"] = time.Now().UTC()

	stored, err := r.store.Update(ctx, segmentsCollection, id, row)
	if err != nil {
		return nil, err
	}
	return mapper.SegmentFromRow(stored)
}

func (r *SegmentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, segmentsCollection, id)
}

// ListMembers returns the persisted membership rows for a segment.
func (r *SegmentRepository) ListMembers(ctx context.Context, segmentID string) ([]segment.Membership, error) {
	q := storage.NewQuery(membershipsCollection).
		Where("segment_id", segmentID).
		OrderBy("created_at", false)
	rows, _, err := r.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	members := make([]segment.Membership, 0, len(rows))
	for _, row := range rows {
		m, err := mapper.MembershipFromRow(row)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, nil
}

// ReplaceMembers swaps a segment's persisted membership for the given
// customer set. Membership is a snapshot, so the old rows are dropped
// wholesale rather than diffed.
func (r *SegmentRepository) ReplaceMembers(ctx context.Context, segmentID string, customerIDs []string) error {
	existing, err := r.ListMembers(ctx, segmentID)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if err := r.store.Delete(ctx, membershipsCollection, m.ID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, customerID := range customerIDs {
		row := storage.Row{
			"id":          newID(),
			"segment_id":  segmentID,
			"customer_id": customerID,
			"created_at":  now,
		}
		if _, err := r.store.Insert(ctx, membershipsCollection, row); err != nil {
			return err
		}
	}
	return nil
}
