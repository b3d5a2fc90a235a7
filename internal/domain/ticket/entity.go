package ticket

import (
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

// Priority ranks how urgently a ticket needs attention.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Status is the workflow state of a ticket.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type SupportTicket struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	// Display fields flattened from the joined customer record.
	CustomerName    string `json:"customer_name"`
	CustomerCompany string `json:"customer_company,omitempty"`

	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	Category    string   `json:"category"`
	AssignedTo  string   `json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Responses are attached on single-ticket reads, ordered oldest first.
	Responses []Response `json:"responses,omitempty"`
}

// Response is a reply on a support ticket.
type Response struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate enforces the ticket invariants before any write.
func (t *SupportTicket) Validate() error {
	if t.CustomerID == "" {
		return xerrors.NewValidation("customer_id", "must not be empty")
	}
	if t.Title == "" {
		return xerrors.NewValidation("title", "must not be empty")
	}
	if !t.Priority.Valid() {
		return xerrors.NewValidation("priority", "unknown priority "+string(t.Priority))
	}
	if !t.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(t.Status))
	}
	if t.Category == "" {
		return xerrors.NewValidation("category", "must not be empty")
	}
	return nil
}
