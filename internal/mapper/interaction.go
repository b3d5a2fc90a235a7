package mapper

import (
	"time"

	"crmdesk-service/internal/domain/interaction"
	"crmdesk-service/internal/storage"
)

// CustomerJoinFields are the parent-customer columns eagerly selected when
// listing relation-bearing records.
var CustomerJoinFields = []string{"first_name", "last_name", "company"}

// joinedCustomerName flattens the joined customer columns into a display
// name, falling back to "Unknown" when the relation is absent.
func joinedCustomerName(r storage.Row) string {
	first, firstOK := r["customers.first_name"]
	last, lastOK := r["customers.last_name"]
	if (!firstOK || first == nil) && (!lastOK || last == nil) {
		return "Unknown"
	}
	return r.String("customers.first_name") + " " + r.String("customers.last_name")
}

func InteractionFromRow(r storage.Row) (*interaction.Interaction, error) {
	duration, err := r.IntPtr("duration")
	if err != nil {
		return nil, err
	}
	date, err := r.Time("date")
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

	return &interaction.Interaction{
		ID:              r.String("id"),
		CustomerID:      r.String("customer_id"),
		CustomerName:    joinedCustomerName(r),
		CustomerCompany: r.String("customers.company"),
		Type:            interaction.Type(r.String("type")),
		Channel:         r.String("channel"),
		Subject:         r.String("subject"),
		Notes:           r.String("notes"),
		Date:            date,
		Duration:        duration,
		Outcome:         interaction.Outcome(r.String("outcome")),
		NextAction:      r.String("next_action"),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// InteractionCreateRow renders a create request into storage shape. The
// date defaults to now when the client leaves it out.
func InteractionCreateRow(req *interaction.CreateInteractionRequest, now time.Time) storage.Row {
	row := storage.Row{
		"customer_id": req.CustomerID,
		"type":        string(req.Type),
		"channel":     req.Channel,
		"subject":     req.Subject,
		"notes":       req.Notes,
		"date":        now,
	}
	if req.Date != nil {
		row["date"] = *req.Date
	}
	if d := req.Duration.Ptr(); d != nil {
		row["duration"] = *d
	}
	if req.Outcome != "" {
		row["outcome"] = string(req.Outcome)
	}
	if req.NextAction != "" {
		row["next_action"] = req.NextAction
	}
	return row
}

// InteractionUpdateRow renders a partial update, including only the fields
// present in the request. An explicit empty-string duration clears the
// stored value.
func InteractionUpdateRow(req *interaction.UpdateInteractionRequest) storage.Row {
	row := storage.Row{}
	if req.Type != nil {
		row["type"] = string(*req.Type)
	}
	if req.Channel != nil {
		row["channel"] = *req.Channel
	}
	if req.Subject != nil {
		row["subject"] = *req.Subject
	}
	if req.Notes != nil {
		row["notes"] = *req.Notes
	}
	if req.Date != nil {
		row["date"] = *req.Date
	}
	if req.Duration != nil {
		if req.Duration.Valid {
			row["duration"] = req.Duration.Value
		} else {
			row["duration"] = nil
		}
	}
	if req.Outcome != nil {
		if *req.Outcome == "" {
			row["outcome"] = nil
		} else {
			row["outcome"] = string(*req.Outcome)
		}
	}
	if req.NextAction != nil {
		row["next_action"] = *req.NextAction
	}
	return row
}
