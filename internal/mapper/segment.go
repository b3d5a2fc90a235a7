package mapper

import (
	"encoding/json"

	"crmdesk-service/internal/domain/segment"
	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage"
)

func SegmentFromRow(r storage.Row) (*segment.Segment, error) {
	createdAt, err := r.Time("created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := r.Time("updated_at")
	if err != nil {
		return nil, err
	}

	var rules []segment.Rule
	if err := r.JSON("criteria", &rules); err != nil {
		return nil, err
	}

	return &segment.Segment{
		ID:          r.String("id"),
		Name:        r.String("name"),
		Description: r.String("description"),
		Rules:       rules,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func SegmentCreateRow(req *segment.CreateSegmentRequest) (storage.Row, error) {
	criteria, err := encodeRules(req.Rules)
	if err != nil {
		return nil, err
	}
	return storage.Row{
		"name":        req.Name,
		"description": req.Description,
		"criteria":    criteria,
	}, nil
}

// SegmentUpdateRow renders a partial update; a nil rule slice leaves the
// stored criteria untouched.
func SegmentUpdateRow(req *segment.UpdateSegmentRequest) (storage.Row, error) {
	row := storage.Row{}
	if req.Name != nil {
		row["name"] = *req.Name
	}
	if req.Description != nil {
		row["description"] = *req.Description
	}
	if req.Rules != nil {
		criteria, err := encodeRules(req.Rules)
		if err != nil {
			return nil, err
		}
		row["criteria"] = criteria
	}
	return row, nil
}

func encodeRules(rules []segment.Rule) ([]byte, error) {
	if rules == nil {
		rules = []segment.Rule{}
	}
	b, err := json.Marshal(rules)
	if err != nil {
		return nil, xerrors.NewValidation("rules", "unencodable rule set")
	}
	return b, nil
}

func MembershipFromRow(r storage.Row) (*segment.Membership, error) {
	createdAt, err := r.Time("created_at")
	if err != nil {
		return nil, err
	}
	return &segment.Membership{
		ID:         r.String("id"),
		SegmentID:  r.String("segment_id"),
		CustomerID: r.String("customer_id"),
		CreatedAt:  createdAt,
	}, nil
}
