package mapper

import (
	"crmdesk-service/internal/domain/ticket"
	"crmdesk-service/internal/storage"
)

func TicketFromRow(r storage.Row) (*ticket.SupportTicket, error) {
	createdAt, err := r.Time("created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := r.Time("updated_at")
	if err != nil {
		return nil, err
	}

	return &ticket.SupportTicket{
		ID:              r.String("id"),
		CustomerID:      r.String("customer_id"),
		CustomerName:    joinedCustomerName(r),
		CustomerCompany: r.String("customers.company"),
		Title:           r.String("title"),
		Description:     r.String("description"),
		Priority:        ticket.Priority(r.String("priority")),
		Status:          ticket.Status(r.String("status")),
		Category:        r.String("category"),
		AssignedTo:      r.String("assigned_to"),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func TicketCreateRow(req *ticket.CreateTicketRequest) storage.Row {
	row := storage.Row{
		"customer_id": req.CustomerID,
		"title":       req.Title,
		"description": req.Description,
		"priority":    string(req.Priority),
		"status":      string(req.Status),
		"category":    req.Category,
	}
	if req.AssignedTo != "" {
		row["assigned_to"] = req.AssignedTo
	}
	return row
}

// TicketUpdateRow renders a partial update, including only the fields
// present in the request.
func TicketUpdateRow(req *ticket.UpdateTicketRequest) storage.Row {
	row := storage.Row{}
	if req.Title != nil {
		row["title"] = *req.Title
	}
	if req.Description != nil {
		row["description"] = *req.Description
	}
	if req.Priority != nil {
		row["priority"] = string(*req.Priority)
	}
	if req.Status != nil {
		row["status"] = string(*req.Status)
	}
	if req.Category != nil {
		row["category"] = *req.Category
	}
	if req.AssignedTo != nil {
		row["assigned_to"] = *req.AssignedTo
	}
	return row
}

func ResponseFromRow(r storage.Row) (*ticket.Response, error) {
	createdAt, err := r.Time("created_at")
	if err != nil {
		return nil, err
	}
	return &ticket.Response{
		ID:        r.String("id"),
		TicketID:  r.String("ticket_id"),
		Author:    r.String("author"),
		Message:   r.String("message"),
		CreatedAt: createdAt,
	}, nil
}

func ResponseCreateRow(ticketID string, req *ticket.CreateResponseRequest) storage.Row {
	return storage.Row{
		"ticket_id": ticketID,
		"author":    req.Author,
		"message":   req.Message,
	}
}
