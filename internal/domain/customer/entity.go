package customer

import (
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Status is the lifecycle stage of a customer.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusProspect  Status = "Prospect"
	StatusQualified Status = "Qualified"
)

// Statuses lists every valid customer status.
var Statuses = []Status{StatusActive, StatusInactive, StatusProspect, StatusQualified}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Address is the optional structured mailing address of a customer.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Industry  string `json:"industry,omitempty"`

	Status Status   `json:"status"`
	Value  float64  `json:"value"`
	Tags   []string `json:"tags,omitempty"`

	Address *Address `json:"address,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastContact *time.Time `json:"last_contact,omitempty"`
}

// FullName joins first and last name for display.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Validate enforces the customer invariants before any write.
func (c *Customer) Validate() error {
	if c.FirstName == "" {
		return xerrors.NewValidation("first_name", "must not be empty")
	}
	if c.LastName == "" {
		return xerrors.NewValidation("last_name", "must not be empty")
	}
	if c.Email == "" {
		return xerrors.NewValidation("email", "must not be empty")
	}
	if !c.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(c.Status))
	}
	if c.Value < 0 {
		return xerrors.NewValidation("value", "must not be negative")
	}
	return nil
}
