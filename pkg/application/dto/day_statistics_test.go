package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

func TestDayStatistics_Margin(t *testing.T) {
	testCases := []struct {
		name     string
		revenue  int64
		profit   int64
		expected string
	}{
		{"positive margin", 1250, 250, "20"},
		{"loss making day", 100, -50, "-50"},
		{"no revenue", 0, -30, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats := DayStatistics{Revenue: decimal.NewFromInt(tc.revenue), Profit: decimal.NewFromInt(tc.profit)}
			assert.True(t, stats.Margin().Equal(decimal.RequireFromString(tc.expected)), "margin = %s", stats.Margin())
		})
	}
}

func TestSummarize(t *testing.T) {
	days := []DayStatistics{
		{
			Day:     1,
			Revenue: decimal.NewFromInt(1000),
			Profit:  decimal.NewFromInt(200),
			Losses:  decimal.Zero,
			Orders:  []OrderView{{Status: entities.Delivered}, {Status: entities.NoCourier}},
		},
		{
			Day:     2,
			Revenue: decimal.NewFromInt(500),
			Profit:  decimal.NewFromInt(-50),
			Losses:  decimal.NewFromInt(150),
			Orders:  []OrderView{{Status: entities.Delivered}, {Status: entities.Partially}, {Status: entities.NoMedicines}},
		},
	}

	totals := Summarize(days)
	assert.Equal(t, 2, totals.Days)
	assert.Equal(t, 5, totals.Orders)
	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(1500)))
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(150)))
	assert.True(t, totals.Losses.Equal(decimal.NewFromInt(150)))
	assert.True(t, totals.Margin().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 2, totals.ByStatus[entities.Delivered])
	assert.Equal(t, 1, totals.ByStatus[entities.Partially])
	assert.Equal(t, 1, totals.ByStatus[entities.NoMedicines])
	assert.Equal(t, 1, totals.ByStatus[entities.NoCourier])

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Days)
	assert.True(t, empty.Margin().IsZero())
}

func TestNewOrderView(t *testing.T) {
	m, err := entities.NewMedicine("Нурофен", 200, entities.Tablets, entities.Painkiller, 120, 365, 20, 5)
	require.NoError(t, err)
	customer, err := entities.NewCustomer("Иванов", "", "ул. Ленина, 5", false, nil, 0)
	require.NoError(t, err)
	order, err := entities.NewOrder(uuid.New(), customer, []entities.OrderLine{{Medicine: *m, Quantity: 3}}, entities.Random)
	require.NoError(t, err)

	placed := NewOrderView(order)
	assert.Equal(t, entities.NoCourier, placed.Status)
	assert.False(t, placed.Priced)
	assert.True(t, placed.Cost.IsZero())
	assert.Equal(t, []ItemView{{Medicine: "Нурофен", Quantity: 3}}, placed.Items)

	fulfilled, err := order.Fulfill(entities.Partially, entities.Receipt{Count: 2, Cost: decimal.NewFromInt(240)})
	require.NoError(t, err)
	require.NoError(t, fulfilled.SetSummary(decimal.NewFromInt(300)))

	priced := NewOrderView(order)
	assert.Equal(t, "Иванов", priced.CustomerName)
	assert.Equal(t, "ул. Ленина, 5", priced.CustomerAddress)
	assert.Equal(t, entities.Partially, priced.Status)
	assert.Equal(t, entities.Quantity(2), priced.Fulfilled)
	assert.True(t, priced.Cost.Equal(decimal.NewFromInt(240)))
	assert.True(t, priced.Priced)
	assert.True(t, priced.Summary.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, entities.NoCourier, placed.Status, "earlier view is not affected")
}
