package segment

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Operator is the comparison applied by a segmentation rule.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpContains Operator = "contains"
)

var Operators = []Operator{OpEq, OpNe, OpGt, OpLt, OpContains}

func (o Operator) Valid() bool {
	for _, v := range Operators {
		if o == v {
			return true
		}
	}
	return false
}

// FieldKind is the comparison family of a segmentable customer attribute.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldTime
)

// RuleFields maps every segmentable customer attribute to its comparison
// kind. The validator and the evaluation engine share this one table, so a
// field that passes Validate is always evaluable.
var RuleFields = map[string]FieldKind{
	"firstName":   FieldText,
	"lastName":    FieldText,
	"email":       FieldText,
	"phone":       FieldText,
	"company":     FieldText,
	"industry":    FieldText,
	"status":      FieldText,
	"tags":        FieldText,
	"value":       FieldNumber,
	"createdAt":   FieldTime,
	"lastContact": FieldTime,
}

// ValidField reports whether name is a segmentable customer attribute.
func ValidField(name string) bool {
	_, ok := RuleFields[name]
	return ok
}

// Rule is one declarative condition on a customer attribute. A segment's
// rules are combined with AND semantics, in order.
type Rule struct {
	Field    string   `json:"field" binding:"required"`
	Operator Operator `json:"operator" binding:"required"`
	Value    string   `json:"value"`
}

type Segment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rules       []Rule `json:"rules"`

	// Count is derived: the number of customers currently matching all
	// rules. It is recomputed on read, never stored as a durable counter.
	Count int64 `json:"count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership links a customer to a segment; the many-to-many bridge.
type Membership struct {
	ID         string    `json:"id"`
	SegmentID  string    `json:"segment_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate enforces the segment invariants before any write.
func (s *Segment) Validate() error {
	if s.Name == "" {
		return xerrors.NewValidation("name", "must not be empty")
	}
	for _, r := range s.Rules {
		if r.Field == "" {
			return xerrors.NewValidation("rules", "rule field must not be empty")
		}
		if !ValidField(r.Field) {
			return xerrors.NewValidation("rules", "unknown rule field "+r.Field)
		}
		if !r.Operator.Valid() {
			return xerrors.NewValidation("rules", "unknown operator "+string(r.Operator))
		}
	}
	return nil
}

// RulesHash returns a stable digest of a rule set, used to key cached
// membership counts.
func RulesHash(rules []Rule) string {
	b, _ := json.Marshal(rules)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
