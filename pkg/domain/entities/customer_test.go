package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_Validation(t *testing.T) {
	m := testMedicine(t)
	items := []OrderLine{{Medicine: m, Quantity: 1}}

	testCases := []struct {
		name       string
		customer   string
		items      []OrderLine
		regularity int
		expectErr  bool
	}{
		{"casual customer", "Иванов", nil, 0, false},
		{"regular customer", "Иванов", items, 3, false},
		{"empty name", "", nil, 0, true},
		{"regular without regularity", "Иванов", items, 0, true},
		{"negative regularity", "Иванов", items, -1, true},
		{"zero quantity", "Иванов", []OrderLine{{Medicine: m, Quantity: 0}}, 3, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCustomer(tc.customer, "", "", false, tc.items, tc.regularity)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomer_IsDue(t *testing.T) {
	m := testMedicine(t)
	customer, err := NewCustomer("Иванов", "", "", false, []OrderLine{{Medicine: m, Quantity: 1}}, 3)
	require.NoError(t, err)

	testCases := []struct {
		day int
		due bool
	}{
		{1, false},
		{3, true},
		{6, true},
		{7, false},
	}

	for _, tc := range testCases {
		due, err := customer.IsDue(tc.day)
		require.NoError(t, err)
		assert.Equal(t, tc.due, due, "day %d", tc.day)
	}
}

func TestCustomer_IsDueRejectsZeroRegularity(t *testing.T) {
	customer := &Customer{
		Name:         "Иванов",
		RegularItems: []OrderLine{{Medicine: testMedicine(t), Quantity: 1}},
		Regularity:   0,
	}

	_, err := customer.IsDue(5)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCustomer_CasualIsNeverDue(t *testing.T) {
	customer, err := NewCustomer("Иванов", "", "", true, nil, 0)
	require.NoError(t, err)

	due, err := customer.IsDue(0)
	require.NoError(t, err)
	assert.False(t, due)
	assert.False(t, customer.IsRegular())
}
