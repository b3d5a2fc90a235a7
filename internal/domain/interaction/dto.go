package interaction

import (
	"bytes"
	"strconv"
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Minutes decodes a duration that may arrive as a JSON number or as a
// numeric string, the way form-driven clients submit it. An empty string
// or null counts as absent.
type Minutes struct {
	Valid bool
	Value int
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		m.Valid = false
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return xerrors.NewValidation("duration", "malformed string value")
		}
		if s == "" {
			m.Valid = false
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return xerrors.NewValidation("duration", "not a whole number of minutes")
		}
		m.Valid = true
		m.Value = n
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return xerrors.NewValidation("duration", "not a whole number of minutes")
	}
	m.Valid = true
	m.Value = n
	return nil
}

func (m Minutes) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(m.Value)), nil
}

// Ptr returns the duration as an optional int.
func (m Minutes) Ptr() *int {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

type CreateInteractionRequest struct {
	CustomerID string     `json:"customer_id" binding:"required"`
	Type       Type       `json:"type" binding:"required"`
	Channel    string     `json:"channel" binding:"max=100"`
	Subject    string     `json:"subject" binding:"required,max=255"`
	Notes      string     `json:"notes"`
	Date       *time.Time `json:"date"` // defaults to creation time
	Duration   Minutes    `json:"duration"`
	Outcome    Outcome    `json:"outcome"`
	NextAction string     `json:"next_action" binding:"max=255"`
}

func (r *CreateInteractionRequest) Validate() error {
	if !r.Type.Valid() {
		return xerrors.NewValidation("type", "unknown type "+string(r.Type))
	}
	if r.Duration.Valid && r.Duration.Value < 0 {
		return xerrors.NewValidation("duration", "must not be negative")
	}
	if r.Outcome != "" && !r.Outcome.Valid() {
		return xerrors.NewValidation("outcome", "unknown outcome "+string(r.Outcome))
	}
	return nil
}

// UpdateInteractionRequest carries a partial update. The customer foreign
// key is immutable once created and is deliberately absent here.
type UpdateInteractionRequest struct {
	Type       *Type      `json:"type"`
	Channel    *string    `json:"channel" binding:"omitempty,max=100"`
	Subject    *string    `json:"subject" binding:"omitempty,max=255"`
	Notes      *string    `json:"notes"`
	Date       *time.Time `json:"date"`
	Duration   *Minutes   `json:"duration"`
	Outcome    *Outcome   `json:"outcome"`
	NextAction *string    `json:"next_action" binding:"omitempty,max=255"`
}

func (r *UpdateInteractionRequest) Validate() error {
	if r.Type != nil && !r.Type.Valid() {
		return xerrors.NewValidation("type", "unknown type "+string(*r.Type))
	}
	if r.Subject != nil && *r.Subject == "" {
		return xerrors.NewValidation("subject", "must not be empty")
	}
	if r.Duration != nil && r.Duration.Valid && r.Duration.Value < 0 {
		return xerrors.NewValidation("duration", "must not be negative")
	}
	if r.Outcome != nil && *r.Outcome != "" && !r.Outcome.Valid() {
		return xerrors.NewValidation("outcome", "unknown outcome "+string(*r.Outcome))
	}
	return nil
}

type ListFilters struct {
	CustomerID string `form:"customer_id"`
	Type       string `form:"type"`
	Outcome    string `form:"outcome"`
	Search     string `form:"search"` // matched against subject and channel
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type ListResponse struct {
	Data       []Interaction `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
