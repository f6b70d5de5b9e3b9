package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

type firstLeadTime struct{}

func (firstLeadTime) IntN(int) int { return 0 }

func medicine(t *testing.T, name string, wholesale float64, expiration int) entities.Medicine {
	t.Helper()
	m, err := entities.NewMedicine(name, 100, entities.Tablets, entities.Painkiller, wholesale, expiration, 20, 5)
	require.NoError(t, err)
	return *m
}

func newTestWarehouse(t *testing.T) (*Warehouse, entities.Medicine, entities.Medicine) {
	t.Helper()
	aspirin := medicine(t, "Аспирин", 100, 40)
	nurofen := medicine(t, "Нурофен", 10, 20)

	w, err := NewWarehouse([]StockEntry{
		{Medicine: aspirin, Count: 10},
		{Medicine: nurofen, Count: 3},
	}, firstLeadTime{})
	require.NoError(t, err)
	return w, aspirin, nurofen
}

func placeOrder(t *testing.T, lines ...entities.OrderLine) *entities.Order {
	t.Helper()
	customer, err := entities.NewCustomer("Иванов", "", "", false, nil, 0)
	require.NoError(t, err)
	order, err := entities.NewOrder(uuid.New(), customer, lines, entities.Random)
	require.NoError(t, err)
	return order
}

func TestNewWarehouse_RejectsDuplicateMedicine(t *testing.T) {
	m := medicine(t, "Аспирин", 100, 40)

	_, err := NewWarehouse([]StockEntry{{Medicine: m, Count: 1}, {Medicine: m, Count: 2}}, firstLeadTime{})
	assert.ErrorIs(t, err, entities.ErrConfiguration)
}

func TestWarehouse_MedicinesKeepCatalogOrder(t *testing.T) {
	w, aspirin, nurofen := newTestWarehouse(t)

	assert.Equal(t, []entities.Medicine{aspirin, nurofen}, w.Medicines())
}

func TestWarehouse_Fulfill(t *testing.T) {
	testCases := []struct {
		name           string
		aspirinQty     entities.Quantity
		nurofenQty     entities.Quantity
		drainNurofen   bool
		expectedStatus entities.OrderStatus
		expectedCount  entities.Quantity
		expectedCost   string
	}{
		{"all lines in stock", 2, 1, false, entities.Delivered, 3, "205"},
		{"one line short", 2, 5, false, entities.Partially, 5, "215"},
		{"nothing in stock", 0, 2, true, entities.NoMedicines, 0, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, aspirin, nurofen := newTestWarehouse(t)
			if tc.drainNurofen {
				sku, err := w.SKU(nurofen)
				require.NoError(t, err)
				sku.Sell(3)
			}

			var lines []entities.OrderLine
			if tc.aspirinQty > 0 {
				lines = append(lines, entities.OrderLine{Medicine: aspirin, Quantity: tc.aspirinQty})
			}
			lines = append(lines, entities.OrderLine{Medicine: nurofen, Quantity: tc.nurofenQty})
			order := placeOrder(t, lines...)

			fulfilled, err := w.Fulfill(order)
			require.NoError(t, err)

			receipt := fulfilled.Receipt()
			assert.Equal(t, tc.expectedStatus, order.Status())
			assert.Equal(t, tc.expectedCount, receipt.Count)
			assert.True(t, receipt.Cost.Equal(decimal.RequireFromString(tc.expectedCost)),
				"cost = %s", receipt.Cost)
		})
	}
}

func TestWarehouse_FulfillUnknownMedicineLeavesStockUntouched(t *testing.T) {
	w, aspirin, _ := newTestWarehouse(t)
	unknown := medicine(t, "Валидол", 50, 100)

	order := placeOrder(t,
		entities.OrderLine{Medicine: aspirin, Quantity: 4},
		entities.OrderLine{Medicine: unknown, Quantity: 1},
	)

	_, err := w.Fulfill(order)
	assert.ErrorIs(t, err, entities.ErrUnknownMedicine)
	assert.Equal(t, entities.Placed, order.Stage())

	sku, err := w.SKU(aspirin)
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(10), sku.Count())
}

func TestWarehouse_FulfillTwiceFails(t *testing.T) {
	w, aspirin, _ := newTestWarehouse(t)
	order := placeOrder(t, entities.OrderLine{Medicine: aspirin, Quantity: 1})

	_, err := w.Fulfill(order)
	require.NoError(t, err)

	_, err = w.Fulfill(order)
	assert.ErrorIs(t, err, entities.ErrPrecondition)

	sku, err := w.SKU(aspirin)
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(9), sku.Count(), "second call must not sell again")
}

func TestWarehouse_HasDiscounted(t *testing.T) {
	w, aspirin, nurofen := newTestWarehouse(t)

	discounted, err := w.HasDiscounted(aspirin)
	require.NoError(t, err)
	assert.False(t, discounted)

	discounted, err = w.HasDiscounted(nurofen)
	require.NoError(t, err)
	assert.True(t, discounted)

	_, err = w.HasDiscounted(medicine(t, "Валидол", 50, 100))
	assert.ErrorIs(t, err, entities.ErrUnknownMedicine)
}

func TestWarehouse_DayCycle(t *testing.T) {
	w, aspirin, nurofen := newTestWarehouse(t)

	// Nurofen starts below its minimum of 5 and is reordered with lead time 1
	losses := w.EndDay()
	assert.True(t, losses.IsZero())

	snap := w.Snapshot()
	sku, ok := snap.Find(nurofen.Name)
	require.True(t, ok)
	require.NotNil(t, sku.Pending)
	assert.Equal(t, 0, sku.Pending.LeadTimeDays)

	aspirinSnap, ok := snap.Find(aspirin.Name)
	require.True(t, ok)
	assert.Nil(t, aspirinSnap.Pending)
	assert.Equal(t, 39, aspirinSnap.Batches[0].ShelfLifeDays)

	w.StartDay()
	nurofenSKU, err := w.SKU(nurofen)
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(23), nurofenSKU.Count())
}

func TestWarehouse_SnapshotIsIndependent(t *testing.T) {
	w, aspirin, _ := newTestWarehouse(t)
	before := w.Snapshot()

	order := placeOrder(t, entities.OrderLine{Medicine: aspirin, Quantity: 4})
	_, err := w.Fulfill(order)
	require.NoError(t, err)
	w.EndDay()

	sku, ok := before.Find(aspirin.Name)
	require.True(t, ok)
	assert.Equal(t, entities.Quantity(10), sku.Count)
	assert.Equal(t, entities.Quantity(10), sku.Batches[0].Count)
	assert.Equal(t, 40, sku.Batches[0].ShelfLifeDays)

	_, ok = before.Find("Валидол")
	assert.False(t, ok)
}
