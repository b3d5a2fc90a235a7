package segment

import (
	"strconv"
	"strings"
	"time"

	"crmdesk-service/internal/domain/customer"
	segdom "crmdesk-service/internal/domain/segment"
	xerrors "crmdesk-service/internal/pkg/errors"
)

// The engine is pure and stateless: every call re-evaluates the rules
// against the candidates it is given. Membership is never assumed stable
// across calls. Field kinds come from segdom.RuleFields, the same table
// Segment.Validate checks, so unknown fields are rejected before a
// segment is ever written; the check here guards ad hoc rule sets.

// Matches evaluates every rule against the candidate and returns the AND
// of all results. An empty rule sequence matches everything.
func Matches(c *customer.Customer, rules []segdom.Rule) (bool, error) {
	for _, rule := range rules {
		ok, err := evaluate(c, rule)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ComputeMembership applies Matches to every candidate and returns the ids
// of those matching all rules, in input order.
func ComputeMembership(customers []customer.Customer, rules []segdom.Rule) ([]string, error) {
	var ids []string
	for i := range customers {
		ok, err := Matches(&customers[i], rules)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, customers[i].ID)
		}
	}
	return ids, nil
}

// MemberCount is the cardinality of ComputeMembership.
func MemberCount(customers []customer.Customer, rules []segdom.Rule) (int64, error) {
	ids, err := ComputeMembership(customers, rules)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func evaluate(c *customer.Customer, rule segdom.Rule) (bool, error) {
	kind, ok := segdom.RuleFields[rule.Field]
	if !ok {
		return false, xerrors.NewValidation("field", "unknown rule field "+rule.Field)
	}
	if !rule.Operator.Valid() {
		return false, xerrors.NewValidation("operator", "unknown operator "+string(rule.Operator))
	}

	switch kind {
	case segdom.FieldNumber:
		return evaluateNumber(numberField(c, rule.Field), rule)
	case segdom.FieldTime:
		return evaluateTime(timeField(c, rule.Field), rule)
	default:
		return evaluateText(textField(c, rule.Field), rule)
	}
}

func textField(c *customer.Customer, field string) string {
	switch field {
	case "firstName":
		return c.FirstName
	case "lastName":
		return c.LastName
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "company":
		return c.Company
	case "industry":
		return c.Industry
	case "status":
		return string(c.Status)
	case "tags":
		return strings.Join(c.Tags, " ")
	}
	return ""
}

func numberField(c *customer.Customer, field string) float64 {
	// value is the only numeric attribute today.
	return c.Value
}

func timeField(c *customer.Customer, field string) time.Time {
	switch field {
	case "createdAt":
		return c.CreatedAt
	case "lastContact":
		if c.LastContact != nil {
			return *c.LastContact
		}
	}
	return time.Time{}
}

func evaluateText(have string, rule segdom.Rule) (bool, error) {
	switch rule.Operator {
	case segdom.OpEq:
		return have == rule.Value, nil
	case segdom.OpNe:
		return have != rule.Value, nil
	case segdom.OpContains:
		return strings.Contains(strings.ToLower(have), strings.ToLower(rule.Value)), nil
	default:
		// gt/lt have no ordering semantics on text attributes.
		return false, &xerrors.TypeMismatchError{Field: rule.Field, Operator: string(rule.Operator)}
	}
}

func evaluateNumber(have float64, rule segdom.Rule) (bool, error) {
	want, err := strconv.ParseFloat(strings.TrimSpace(rule.Value), 64)
	if err != nil {
		return false, xerrors.NewValidation("value", "rule value for "+rule.Field+" must be numeric")
	}
	switch rule.Operator {
	case segdom.OpEq:
		return have == want, nil
	case segdom.OpNe:
		return have != want, nil
	case segdom.OpGt:
		return have > want, nil
	case segdom.OpLt:
		return have < want, nil
	default:
		return false, &xerrors.TypeMismatchError{Field: rule.Field, Operator: string(rule.Operator)}
	}
}

func evaluateTime(have time.Time, rule segdom.Rule) (bool, error) {
	want, err := parseRuleTime(rule.Value)
	if err != nil {
		return false, xerrors.NewValidation("value", "rule value for "+rule.Field+" must be a date")
	}
	switch rule.Operator {
	case segdom.OpEq:
		return have.Equal(want), nil
	case segdom.OpNe:
		return !have.Equal(want), nil
	case segdom.OpGt:
		return have.After(want), nil
	case segdom.OpLt:
		return have.Before(want), nil
	default:
		return false, &xerrors.TypeMismatchError{Field: rule.Field, Operator: string(rule.Operator)}
	}
}

func parseRuleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
