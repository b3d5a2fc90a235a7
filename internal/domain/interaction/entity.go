package interaction

import (
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Type is the channel category of an interaction.
type Type string

const (
	TypeEmail   Type = "Email"
	TypePhone   Type = "Phone"
	TypeMeeting Type = "Meeting"
	TypeChat    Type = "Chat"
	TypeSocial  Type = "Social"
)

var Types = []Type{TypeEmail, TypePhone, TypeMeeting, TypeChat, TypeSocial}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// Outcome is the optional result classification of an interaction.
type Outcome string

const (
	OutcomePositive Outcome = "Positive"
	OutcomeNeutral  Outcome = "Neutral"
	OutcomeNegative Outcome = "Negative"
)

var Outcomes = []Outcome{OutcomePositive, OutcomeNeutral, OutcomeNegative}

func (o Outcome) Valid() bool {
	for _, v := range Outcomes {
		if o == v {
			return true
		}
	}
	return false
}

type Interaction struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	// Display fields flattened from the joined customer record.
	CustomerName    string `json:"customer_name"`
	CustomerCompany string `json:"customer_company,omitempty"`

	Type       Type      `json:"type"`
	Channel    string    `json:"channel"`
	Subject    string    `json:"subject"`
	Notes      string    `json:"notes,omitempty"`
	Date       time.Time `json:"date"`
	Duration   *int      `json:"duration,omitempty"` // minutes
	Outcome    Outcome   `json:"outcome,omitempty"`
	NextAction string    `json:"next_action,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the interaction invariants before any write.
func (i *Interaction) Validate() error {
	if i.CustomerID == "" {
		return xerrors.NewValidation("customer_id", "must not be empty")
	}
	if !i.Type.Valid() {
		return xerrors.NewValidation("type", "unknown type "+string(i.Type))
	}
	if i.Subject == "" {
		return xerrors.NewValidation("subject", "must not be empty")
	}
	if i.Duration != nil && *i.Duration < 0 {
		return xerrors.NewValidation("duration", "must not be negative")
	}
	if i.Outcome != "" && !i.Outcome.Valid() {
		return xerrors.NewValidation("outcome", "unknown outcome "+string(i.Outcome))
	}
	return nil
}
