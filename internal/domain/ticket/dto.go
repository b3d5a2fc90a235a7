package ticket

import (
	xerrors "crmdesk-service/internal/pkg/errors"
)

type CreateTicketRequest struct {
	CustomerID  string   `json:"customer_id" binding:"required"`
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	Category    string   `json:"category" binding:"required,max=100"`
	AssignedTo  string   `json:"assigned_to" binding:"max=255"`
}

// Validate applies defaults and enum checks. New tickets open at Medium
// priority unless stated otherwise, mirroring the storage defaults.
func (r *CreateTicketRequest) Validate() error {
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	if !r.Priority.Valid() {
		return xerrors.NewValidation("priority", "unknown priority "+string(r.Priority))
	}
	if !r.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(r.Status))
	}
	return nil
}

// UpdateTicketRequest carries a partial update. The customer foreign key is
// immutable once created.
type UpdateTicketRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=255"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	Status      *Status   `json:"status"`
	Category    *string   `json:"category" binding:"omitempty,max=100"`
	AssignedTo  *string   `json:"assigned_to" binding:"omitempty,max=255"`
}

func (r *UpdateTicketRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return xerrors.NewValidation("title", "must not be empty")
	}
	if r.Priority != nil && !r.Priority.Valid() {
		return xerrors.NewValidation("priority", "unknown priority "+string(*r.Priority))
	}
	if r.Status != nil && !r.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(*r.Status))
	}
	if r.Category != nil && *r.Category == "" {
		return xerrors.NewValidation("category", "must not be empty")
	}
	return nil
}

type CreateResponseRequest struct {
	Author  string `json:"author" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
}

type ListFilters struct {
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	CustomerID string `form:"customer_id"`
	Search     string `form:"search"` // matched against title and category
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type ListResponse struct {
	Data       []SupportTicket `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
