package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Row is the generic record shape exchanged with the storage boundary.
// Keys are storage column names; joined relation columns are prefixed with
// the relation name, e.g. "customers.first_name".
type Row map[string]any

// String returns a text column, treating NULL as the empty string.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// Float returns a numeric column, treating NULL as zero.
func (r Row) Float(key string) (float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, xerrors.NewValidation(key, "not a number: "+n)
		}
		return f, nil
	default:
		return 0, xerrors.NewValidation(key, fmt.Sprintf("unexpected numeric type %T", v))
	}
}

// IntPtr returns an optional integer column, NULL as nil. String values are
// coerced, with the empty string counting as NULL.
func (r Row) IntPtr(key string) (*int, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int:
		return &n, nil
	case int32:
		i := int(n)
		return &i, nil
	case int64:
		i := int(n)
		return &i, nil
	case float64:
		i := int(n)
		if float64(i) != n {
			return nil, xerrors.NewValidation(key, "fractional value where an integer is required")
		}
		return &i, nil
	case string:
		if n == "" {
			return nil, nil
		}
		i, err := strconv.Atoi(n)
		if err != nil {
			return nil, xerrors.NewValidation(key, "not an integer: "+n)
		}
		return &i, nil
	default:
		return nil, xerrors.NewValidation(key, fmt.Sprintf("unexpected integer type %T", v))
	}
}

// Time returns a timestamp column, NULL as the zero time.
func (r Row) Time(key string) (time.Time, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, xerrors.NewValidation(key, "not a timestamp: "+t)
		}
		return parsed, nil
	default:
		return time.Time{}, xerrors.NewValidation(key, fmt.Sprintf("unexpected timestamp type %T", v))
	}
}

// TimePtr returns an optional timestamp column, NULL as nil.
func (r Row) TimePtr(key string) (*time.Time, error) {
	if v, ok := r[key]; !ok || v == nil {
		return nil, nil
	}
	t, err := r.Time(key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// StringSlice returns a text-array column, NULL as nil. The pgx boundary
// may hand back either []string or []any.
func (r Row) StringSlice(key string) ([]string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, xerrors.NewValidation(key, fmt.Sprintf("unexpected array element type %T", e))
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, xerrors.NewValidation(key, fmt.Sprintf("unexpected array type %T", v))
	}
}

// JSON decodes a jsonb column into dst, NULL as a no-op.
func (r Row) JSON(key string, dst any) error {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	var raw []byte
	switch j := v.(type) {
	case []byte:
		raw = j
	case string:
		raw = []byte(j)
	default:
		// The boundary may have decoded the document already.
		b, err := json.Marshal(j)
		if err != nil {
			return xerrors.NewValidation(key, "undecodable json document")
		}
		raw = b
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return xerrors.NewValidation(key, "malformed json document")
	}
	return nil
}
