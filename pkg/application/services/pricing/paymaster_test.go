package pricing

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

func fulfilledOrder(t *testing.T, orderType entities.OrderType, card bool, cost int64) *entities.FulfilledOrder {
	t.Helper()
	m, err := entities.NewMedicine("Амоксициллин", 500, entities.Tablets, entities.Antibiotic, 45.5, 90, 50, 10)
	require.NoError(t, err)
	items := []entities.OrderLine{{Medicine: *m, Quantity: 1}}

	regularity := 0
	var template []entities.OrderLine
	if orderType == entities.Regular {
		regularity = 7
		template = items
	}
	customer, err := entities.NewCustomer("Иванов", "", "", card, template, regularity)
	require.NoError(t, err)

	order, err := entities.NewOrder(uuid.New(), customer, items, orderType)
	require.NoError(t, err)

	fulfilled, err := order.Fulfill(entities.Delivered, entities.Receipt{Count: 1, Cost: decimal.NewFromInt(cost)})
	require.NoError(t, err)
	return fulfilled
}

func noDiscounts(margin float64) Config {
	return Config{RetailMargin: margin, DiscountThreshold: 1000}
}

func TestPayMaster_Price(t *testing.T) {
	testCases := []struct {
		name      string
		config    Config
		orderType entities.OrderType
		card      bool
		cost      int64
		expected  string
	}{
		{"margin only", noDiscounts(0.25), entities.Random, false, 1000, "1250"},
		{"zero cost", DefaultConfig(0.25), entities.Regular, true, 0, "0"},
		{"card discount", DefaultConfig(0.25), entities.Random, true, 400, "475"},
		{"regular discount", DefaultConfig(0.25), entities.Regular, false, 400, "475"},
		{"regular and card", DefaultConfig(0.25), entities.Regular, true, 400, "455"},
		{"threshold discount", DefaultConfig(0.25), entities.Random, false, 1000, "1212.5"},
		{"base exactly at threshold", DefaultConfig(0.25), entities.Random, false, 800, "1000"},
		// 0.05 + 0.05 + 0.03 capped at 0.09
		{"capped discount", DefaultConfig(0.25), entities.Regular, true, 1200, "1365"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pm, err := NewPayMaster(tc.config)
			require.NoError(t, err)

			fulfilled := fulfilledOrder(t, tc.orderType, tc.card, tc.cost)
			price, err := pm.Price(fulfilled)
			require.NoError(t, err)

			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, price.Equal(expected), "expected %s, got %s", expected, price)

			summary, err := fulfilled.Order().Summary()
			require.NoError(t, err)
			assert.True(t, summary.Equal(price))
		})
	}
}

func TestPayMaster_DiscountIsSummedBeforeCap(t *testing.T) {
	pm, err := NewPayMaster(DefaultConfig(0.25))
	require.NoError(t, err)

	fulfilled := fulfilledOrder(t, entities.Regular, true, 1200)
	discount := pm.Discount(fulfilled.Order(), decimal.NewFromInt(1500))
	assert.True(t, discount.Equal(decimal.RequireFromString("0.13")), "discount = %s", discount)
}

func TestPayMaster_PriceOrderRequiresReceipt(t *testing.T) {
	pm, err := NewPayMaster(DefaultConfig(0.25))
	require.NoError(t, err)

	customer, err := entities.NewCustomer("Иванов", "", "", false, nil, 0)
	require.NoError(t, err)
	m, err := entities.NewMedicine("Нурофен", 200, entities.Tablets, entities.Painkiller, 120, 365, 20, 5)
	require.NoError(t, err)
	order, err := entities.NewOrder(uuid.New(), customer, []entities.OrderLine{{Medicine: *m, Quantity: 1}}, entities.Random)
	require.NoError(t, err)

	_, err = pm.PriceOrder(order)
	assert.ErrorIs(t, err, entities.ErrPrecondition)
	assert.Equal(t, entities.Placed, order.Stage())
}

func TestPayMaster_PricesOnlyOnce(t *testing.T) {
	pm, err := NewPayMaster(DefaultConfig(0.25))
	require.NoError(t, err)

	fulfilled := fulfilledOrder(t, entities.Random, false, 100)
	first, err := pm.PriceOrder(fulfilled.Order())
	require.NoError(t, err)
	assert.True(t, first.Equal(decimal.NewFromInt(125)))

	_, err = pm.Price(fulfilled)
	assert.ErrorIs(t, err, entities.ErrPrecondition)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative margin", func(c *Config) { c.RetailMargin = -0.1 }, true},
		{"card discount above one", func(c *Config) { c.CardDiscount = 1.5 }, true},
		{"negative max discount", func(c *Config) { c.MaxDiscount = -0.01 }, true},
		{"negative threshold", func(c *Config) { c.DiscountThreshold = -1 }, true},
		{"NaN margin", func(c *Config) { c.RetailMargin = math.NaN() }, true},
		{"Inf margin", func(c *Config) { c.RetailMargin = math.Inf(1) }, true},
		{"NaN regular discount", func(c *Config) { c.RegularDiscount = math.NaN() }, true},
		{"Inf threshold", func(c *Config) { c.DiscountThreshold = math.Inf(1) }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig(0.25)
			tc.mutate(&config)

			_, err := NewPayMaster(config)
			if tc.expectErr {
				assert.ErrorIs(t, err, entities.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
