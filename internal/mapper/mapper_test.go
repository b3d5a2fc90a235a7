package mapper

import (
	"testing"
	"time"

	"crmdesk-service/internal/domain/customer"
	"crmdesk-service/internal/domain/interaction"
	"crmdesk-service/internal/domain/segment"
	"crmdesk-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRowRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	contact := now.Add(-48 * time.Hour)
	c := &customer.Customer{
		ID:          "01HX",
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@example.com",
		Phone:       "555-0100",
		Company:     "BigTech Inc",
		Industry:    "Technology",
		Status:      customer.StatusActive,
		Value:       75000,
		Tags:        []string{"vip", "beta"},
		Address:     &customer.Address{City: "Nairobi", Country: "KE"},
		CreatedAt:   now,
		UpdatedAt:   now,
		LastContact: &contact,
	}

	row, err := CustomerToRow(c)
	require.NoError(t, err)

	got, err := CustomerFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCustomerFromRowTotalOnNulls(t *testing.T) {
	got, err := CustomerFromRow(storage.Row{
		"id":         "x1",
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "ann@example.com",
		"status":     "Prospect",
		"phone":      nil,
		"value":      nil,
		"tags":       nil,
		"address":    nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "", got.Phone)
	assert.Equal(t, 0.0, got.Value)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Address)
	assert.Nil(t, got.LastContact)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestCustomerUpdateRowOmitsAbsentFields(t *testing.T) {
	company := "New Co"
	value := 1500.0
	row, err := CustomerUpdateRow(&customer.UpdateCustomerRequest{
		Company: &company,
		Value:   &value,
	})
	require.NoError(t, err)

	assert.Equal(t, storage.Row{"company": "New Co", "value": 1500.0}, row)
}

func TestJoinedCustomerName(t *testing.T) {
	named := storage.Row{
		"customers.first_name": "Ann",
		"customers.last_name":  "Lee",
		"customers.company":    "BigTech Inc",
	}
	assert.Equal(t, "Ann Lee", joinedCustomerName(named))

	// Deleted parent: left join leaves the columns NULL.
	orphan := storage.Row{
		"customers.first_name": nil,
		"customers.last_name":  nil,
	}
	assert.Equal(t, "Unknown", joinedCustomerName(orphan))

	assert.Equal(t, "Unknown", joinedCustomerName(storage.Row{}))
}

func TestInteractionCreateRowDefaultsDate(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	row := InteractionCreateRow(&interaction.CreateInteractionRequest{
		CustomerID: "c1",
		Type:       interaction.TypeEmail,
		Subject:    "Follow up",
	}, now)

	assert.Equal(t, now, row["date"])
	_, hasDuration := row["duration"]
	assert.False(t, hasDuration)
	_, hasOutcome := row["outcome"]
	assert.False(t, hasOutcome)
}

func TestInteractionUpdateRowDurationSemantics(t *testing.T) {
	set := InteractionUpdateRow(&interaction.UpdateInteractionRequest{
		Duration: &interaction.Minutes{Valid: true, Value: 45},
	})
	assert.Equal(t, 45, set["duration"])

	// An explicit empty duration clears the stored value.
	cleared := InteractionUpdateRow(&interaction.UpdateInteractionRequest{
		Duration: &interaction.Minutes{Valid: false},
	})
	v, ok := cleared["duration"]
	require.True(t, ok)
	assert.Nil(t, v)

	// Absent duration leaves storage untouched.
	untouched := InteractionUpdateRow(&interaction.UpdateInteractionRequest{})
	_, ok = untouched["duration"]
	assert.False(t, ok)
}

func TestSegmentRowRoundTrip(t *testing.T) {
	req := &segment.CreateSegmentRequest{
		Name:        "High value tech",
		Description: "Active tech accounts above 50k",
		Rules: []segment.Rule{
			{Field: "status", Operator: segment.OpEq, Value: "Active"},
			{Field: "value", Operator: segment.OpGt, Value: "50000"},
		},
	}

	row, err := SegmentCreateRow(req)
	require.NoError(t, err)
	row["id"] = "s1"

	got, err := SegmentFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "High value tech", got.Name)
	assert.Equal(t, req.Rules, got.Rules)
}

func TestSegmentUpdateRowNilRulesUntouched(t *testing.T) {
	name := "Renamed"
	row, err := SegmentUpdateRow(&segment.UpdateSegmentRequest{Name: &name})
	require.NoError(t, err)

	_, ok := row["criteria"]
	assert.False(t, ok)
	assert.Equal(t, "Renamed", row["name"])
}
