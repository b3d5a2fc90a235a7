package customer

import (
	"time"

	xerrors "crmdesk-service/internal/pkg/errors"
)

type CreateCustomerRequest struct {
	FirstName string   `json:"first_name" binding:"required,max=255"`
	LastName  string   `json:"last_name" binding:"required,max=255"`
	Email     string   `json:"email" binding:"required,email,max=255"`
	Phone     string   `json:"phone" binding:"max=30"`
	Company   string   `json:"company" binding:"max=255"`
	Industry  string   `json:"industry" binding:"max=100"`
	Status    Status   `json:"status"`
	Value     float64  `json:"value"`
	Tags      []string `json:"tags"`
	Address   *Address `json:"address"`
}

// Validate applies entity invariants that binding tags cannot express.
// A missing status defaults to Prospect, mirroring the storage default.
func (r *CreateCustomerRequest) Validate() error {
	if r.Status == "" {
		r.Status = StatusProspect
	}
	if !r.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(r.Status))
	}
	if r.Value < 0 {
		return xerrors.NewValidation("value", "must not be negative")
	}
	return nil
}

// UpdateCustomerRequest carries a partial update: nil fields are left
// untouched in storage.
type UpdateCustomerRequest struct {
	FirstName   *string    `json:"first_name" binding:"omitempty,max=255"`
	LastName    *string    `json:"last_name" binding:"omitempty,max=255"`
	Email       *string    `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string    `json:"phone" binding:"omitempty,max=30"`
	Company     *string    `json:"company" binding:"omitempty,max=255"`
	Industry    *string    `json:"industry" binding:"omitempty,max=100"`
	Status      *Status    `json:"status"`
	Value       *float64   `json:"value"`
	Tags        []string   `json:"tags"`
	Address     *Address   `json:"address"`
	LastContact *time.Time `json:"last_contact"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if r.Email != nil && *r.Email == "" {
		return xerrors.NewValidation("email", "must not be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return xerrors.NewValidation("status", "unknown status "+string(*r.Status))
	}
	if r.Value != nil && *r.Value < 0 {
		return xerrors.NewValidation("value", "must not be negative")
	}
	return nil
}

type ListFilters struct {
	Status   string `form:"status"`
	Industry string `form:"industry"`
	Search   string `form:"search"` // matched against first name, last name, email, company
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Data       []Customer `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
