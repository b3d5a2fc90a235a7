package segment

import (
	"context"
	"fmt"

	"crmdesk-service/internal/domain/customer"
	segdom "crmdesk-service/internal/domain/segment"
	"crmdesk-service/internal/repository"

	"go.uber.org/zap"
)

type SegmentService struct {
	segmentRepo  *repository.SegmentRepository
	customerRepo *repository.CustomerRepository
	cache        *CountCache
	scanPageSize int
	logger       *zap.Logger
}

func NewSegmentService(
	segmentRepo *repository.SegmentRepository,
	customerRepo *repository.CustomerRepository,
	cache *CountCache,
	scanPageSize int,
	logger *zap.Logger,
) *SegmentService {
	if scanPageSize < 1 {
		scanPageSize = 200
	}
	return &SegmentService{
		segmentRepo:  segmentRepo,
		customerRepo: customerRepo,
		cache:        cache,
		scanPageSize: scanPageSize,
		logger:       logger,
	}
}

// ListSegments returns a page of segments with their current member
// counts attached.
func (s *SegmentService) ListSegments(ctx context.Context, f *segdom.ListFilters) (*segdom.ListResponse, error) {
	resp, err := s.segmentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range resp.Data {
		count, err := s.CountForRules(ctx, resp.Data[i].Rules)
		if err != nil {
			return nil, fmt.Errorf("failed to count segment %s: %w", resp.Data[i].ID, err)
		}
		resp.Data[i].Count = count
	}
	return resp, nil
}

func (s *SegmentService) GetSegment(ctx context.Context, id string) (*segdom.Segment, error) {
	seg, err := s.segmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.CountForRules(ctx, seg.Rules)
	if err != nil {
		return nil, err
	}
	seg.Count = count
	return seg, nil
}

func (s *SegmentService) CreateSegment(ctx context.Context, req *segdom.CreateSegmentRequest) (*segdom.Segment, error) {
	seg, err := s.segmentRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	count, err := s.CountForRules(ctx, seg.Rules)
	if err != nil {
		return nil, err
	}
	seg.Count = count

	s.logger.Info("segment created",
		zap.String("segment_id", seg.ID),
		zap.String("name", seg.Name),
		zap.Int("rules", len(seg.Rules)),
	)
	return seg, nil
}

func (s *SegmentService) UpdateSegment(ctx context.Context, id string, req *segdom.UpdateSegmentRequest) (*segdom.Segment, error) {
	seg, err := s.segmentRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	count, err := s.CountForRules(ctx, seg.Rules)
	if err != nil {
		return nil, err
	}
	seg.Count = count

	s.logger.Info("segment updated", zap.String("segment_id", id))
	return seg, nil
}

// DeleteSegment removes a segment together with its persisted membership
// rows.
func (s *SegmentService) DeleteSegment(ctx context.Context, id string) error {
	if err := s.segmentRepo.ReplaceMembers(ctx, id, nil); err != nil {
		return err
	}
	if err := s.segmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("segment deleted", zap.String("segment_id", id))
	return nil
}

// Preview evaluates a segment's rules against the current customer set.
func (s *SegmentService) Preview(ctx context.Context, id string) (*segdom.Preview, error) {
	seg, err := s.segmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.computeMembership(ctx, seg.Rules)
	if err != nil {
		return nil, err
	}
	return &segdom.Preview{SegmentID: id, Count: int64(len(ids)), CustomerIDs: ids}, nil
}

// PreviewRules evaluates an ad hoc rule set without persisting anything.
func (s *SegmentService) PreviewRules(ctx context.Context, rules []segdom.Rule) (*segdom.Preview, error) {
	ids, err := s.computeMembership(ctx, rules)
	if err != nil {
		return nil, err
	}
	return &segdom.Preview{Count: int64(len(ids)), CustomerIDs: ids}, nil
}

// Sync recomputes a segment's membership and replaces the persisted
// bridge rows with the result.
func (s *SegmentService) Sync(ctx context.Context, id string) (*segdom.Preview, error) {
	preview, err := s.Preview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.segmentRepo.ReplaceMembers(ctx, id, preview.CustomerIDs); err != nil {
		return nil, err
	}
	s.logger.Info("segment membership synced",
		zap.String("segment_id", id),
		zap.Int64("members", preview.Count),
	)
	return preview, nil
}

// Members returns the persisted membership rows for a segment.
func (s *SegmentService) Members(ctx context.Context, id string) ([]segdom.Membership, error) {
	if _, err := s.segmentRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.segmentRepo.ListMembers(ctx, id)
}

// CountForRules returns the current member count for a rule set, serving
// from the cache when an entry exists for the current customer-set
// version.
func (s *SegmentService) CountForRules(ctx context.Context, rules []segdom.Rule) (int64, error) {
	hash := segdom.RulesHash(rules)
	if count, ok := s.cache.Get(ctx, hash); ok {
		return count, nil
	}

	// Capture the version before scanning; a customer write during the
	// scan bumps it, and the result must not be cached under the new
	// version.
	version, versionOK := s.cache.Version(ctx)

	ids, err := s.computeMembership(ctx, rules)
	if err != nil {
		return 0, err
	}
	count := int64(len(ids))
	if versionOK {
		s.cache.SetAt(ctx, version, hash, count)
	}
	return count, nil
}

// computeMembership scans customers page by page and evaluates the rules
// against each. This is O(customers x rules); at larger scale it should
// move to a server-side filtered count.
func (s *SegmentService) computeMembership(ctx context.Context, rules []segdom.Rule) ([]string, error) {
	ids := []string{}
	err := s.customerRepo.Scan(ctx, s.scanPageSize, func(batch []customer.Customer) error {
		matched, err := ComputeMembership(batch, rules)
		if err != nil {
			return err
		}
		ids = append(ids, matched...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
