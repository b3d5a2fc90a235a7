package segment

import (
	"testing"
	"time"

	"crmdesk-service/internal/domain/customer"
	segdom "crmdesk-service/internal/domain/segment"
	xerrors "crmdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCustomers() []customer.Customer {
	return []customer.Customer{
		{ID: "c1", FirstName: "Ann", LastName: "Lee", Company: "BigTech Inc", Status: customer.StatusActive, Value: 75000},
		{ID: "c2", FirstName: "Bob", LastName: "Ray", Company: "Finance Co", Status: customer.StatusActive, Value: 30000},
		{ID: "c3", FirstName: "Cy", LastName: "Ode", Company: "TechStart", Status: customer.StatusProspect, Value: 90000},
	}
}

func TestMatchesAndSemantics(t *testing.T) {
	rules := []segdom.Rule{
		{Field: "status", Operator: segdom.OpEq, Value: "Active"},
		{Field: "value", Operator: segdom.OpGt, Value: "50000"},
	}

	ids, err := ComputeMembership(sampleCustomers(), rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}

func TestMatchesContainsCaseInsensitive(t *testing.T) {
	rules := []segdom.Rule{
		{Field: "company", Operator: segdom.OpContains, Value: "tech"},
	}

	ids, err := ComputeMembership(sampleCustomers(), rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c3"}, ids)
}

func TestEmptyRulesMatchEverything(t *testing.T) {
	customers := sampleCustomers()

	ids, err := ComputeMembership(customers, nil)
	require.NoError(t, err)
	assert.Len(t, ids, len(customers))

	count, err := MemberCount(customers, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ids)), count)
}

func TestCountEqualsMembershipCardinality(t *testing.T) {
	rules := []segdom.Rule{
		{Field: "status", Operator: segdom.OpNe, Value: "Prospect"},
	}
	customers := sampleCustomers()

	ids, err := ComputeMembership(customers, rules)
	require.NoError(t, err)
	count, err := MemberCount(customers, rules)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ids)), count)
}

func TestNumericRuleOnStringValue(t *testing.T) {
	c := sampleCustomers()[0]
	_, err := Matches(&c, []segdom.Rule{
		{Field: "value", Operator: segdom.OpGt, Value: "lots"},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsValidation(err))
}

func TestOrderingOperatorOnTextField(t *testing.T) {
	c := sampleCustomers()[0]
	_, err := Matches(&c, []segdom.Rule{
		{Field: "company", Operator: segdom.OpGt, Value: "A"},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsTypeMismatch(err))
}

func TestContainsOnNumericField(t *testing.T) {
	c := sampleCustomers()[0]
	_, err := Matches(&c, []segdom.Rule{
		{Field: "value", Operator: segdom.OpContains, Value: "75"},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsTypeMismatch(err))
}

func TestUnknownFieldAndOperatorRejected(t *testing.T) {
	c := sampleCustomers()[0]

	_, err := Matches(&c, []segdom.Rule{{Field: "shoeSize", Operator: segdom.OpEq, Value: "9"}})
	assert.True(t, xerrors.IsValidation(err))

	_, err = Matches(&c, []segdom.Rule{{Field: "status", Operator: "like", Value: "Active"}})
	assert.True(t, xerrors.IsValidation(err))
}

func TestTagsMatchedAsJoinedText(t *testing.T) {
	c := customer.Customer{ID: "c1", Tags: []string{"vip", "beta-tester"}}

	ok, err := Matches(&c, []segdom.Rule{{Field: "tags", Operator: segdom.OpContains, Value: "beta"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTimeRules(t *testing.T) {
	joined := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := customer.Customer{ID: "c1", CreatedAt: joined}

	ok, err := Matches(&c, []segdom.Rule{{Field: "createdAt", Operator: segdom.OpGt, Value: "2024-01-01"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Matches(&c, []segdom.Rule{{Field: "createdAt", Operator: segdom.OpLt, Value: "2024-01-01"}})
	require.NoError(t, err)
	assert.False(t, ok)

	// No recorded last contact evaluates against the zero time.
	ok, err = Matches(&c, []segdom.Rule{{Field: "lastContact", Operator: segdom.OpLt, Value: "2024-01-01"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMembershipPreservesInputOrder(t *testing.T) {
	customers := []customer.Customer{
		{ID: "z", Status: customer.StatusActive},
		{ID: "a", Status: customer.StatusActive},
		{ID: "m", Status: customer.StatusInactive},
	}

	ids, err := ComputeMembership(customers, []segdom.Rule{
		{Field: "status", Operator: segdom.OpEq, Value: "Active"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, ids)
}
