// Package mapper translates between the storage row shape and the domain
// entities. Row→entity functions are total: optional columns that are
// absent or NULL map to zero values, never to an error; only genuinely
// unmappable values fail, with a ValidationError. Entity→row functions for
// updates omit absent fields so a partial payload never nulls stored data.
package mapper

import (
	"encoding/json"

	"crmdesk-service/internal/domain/customer"
	xerrors "crmdesk-service/internal/pkg/errors"
	"crmdesk-service/internal/storage"
)

func CustomerFromRow(r storage.Row) (*customer.Customer, error) {
	value, err := r.Float("value")
	if err != nil {
		return nil, err
	}
	tags, err := r.StringSlice("tags")
	if err != nil {
		return nil, err
	}
	createdAt, err := r.Time("created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := r.Time("updated_at")
	if err != nil {
		return nil, err
	}
	lastContact, err := r.TimePtr("last_contact")
	if err != nil {
		return nil, err
	}

	c := &customer.Customer{
		ID:          r.String("id"),
		FirstName:   r.String("first_name"),
		LastName:    r.String("last_name"),
		Email:       r.String("email"),
		Phone:       r.String("phone"),
		Company:     r.String("company"),
		Industry:    r.String("industry"),
		Status:      customer.Status(r.String("status")),
		Value:       value,
		Tags:        tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		LastContact: lastContact,
	}

	if v, ok := r["address"]; ok && v != nil {
		var addr customer.Address
		if err := r.JSON("address", &addr); err != nil {
			return nil, err
		}
		c.Address = &addr
	}
	return c, nil
}

// CustomerToRow renders a full entity into storage shape. Zero timestamps
// are omitted so storage defaults can fill them.
func CustomerToRow(c *customer.Customer) (storage.Row, error) {
	row := storage.Row{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"company":    c.Company,
		"industry":   c.Industry,
		"status":     string(c.Status),
		"value":      c.Value,
		"tags":       c.Tags,
	}
	if c.ID != "" {
		row["id"] = c.ID
	}
	if c.Address != nil {
		b, err := json.Marshal(c.Address)
		if err != nil {
			return nil, xerrors.NewValidation("address", "unencodable address")
		}
		row["address"] = b
	}
	if c.LastContact != nil {
		row["last_contact"] = *c.LastContact
	}
	if !c.CreatedAt.IsZero() {
		row["created_at"] = c.CreatedAt
	}
	if !c.UpdatedAt.IsZero() {
		row["updated_at"] = c.UpdatedAt
	}
	return row, nil
}

// CustomerUpdateRow renders a partial update, including only the fields
// present in the request.
func CustomerUpdateRow(req *customer.UpdateCustomerRequest) (storage.Row, error) {
	row := storage.Row{}
	if req.FirstName != nil {
		row["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		row["last_name"] = *req.LastName
	}
	if req.Email != nil {
		row["email"] = *req.Email
	}
	if req.Phone != nil {
		row["phone"] = *req.Phone
	}
	if req.Company != nil {
		row["company"] = *req.Company
	}
	if req.Industry != nil {
		row["industry"] = *req.Industry
	}
	if req.Status != nil {
		row["status"] = string(*req.Status)
	}
	if req.Value != nil {
		row["value"] = *req.Value
	}
	if req.Tags != nil {
		row["tags"] = req.Tags
	}
	if req.Address != nil {
		b, err := json.Marshal(req.Address)
		if err != nil {
			return nil, xerrors.NewValidation("address", "unencodable address")
		}
		row["address"] = b
	}
	if req.LastContact != nil {
		row["last_contact"] = *req.LastContact
	}
	return row, nil
}
