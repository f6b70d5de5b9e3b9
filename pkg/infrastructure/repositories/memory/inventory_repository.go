package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/domain/repositories"
)

// StockEntry is a catalog medicine with its initial unit count
type StockEntry struct {
	Medicine entities.Medicine
	Count    entities.Quantity
}

// Warehouse provides in-memory batch-level stock keyed by catalog entry
type Warehouse struct {
	skus  map[entities.Medicine]*entities.StockKeepingUnit
	order []entities.Medicine
	rng   entities.LeadTimeSource
}

// NewWarehouse creates a warehouse with one fresh batch per catalog entry.
// rng draws replenishment lead times.
func NewWarehouse(stock []StockEntry, rng entities.LeadTimeSource) (*Warehouse, error) {
	if rng == nil {
		return nil, fmt.Errorf("lead time source cannot be nil")
	}

	w := &Warehouse{
		skus:  make(map[entities.Medicine]*entities.StockKeepingUnit, len(stock)),
		order: make([]entities.Medicine, 0, len(stock)),
		rng:   rng,
	}
	names := make(map[string]bool, len(stock))

	for _, entry := range stock {
		if names[entry.Medicine.Name] {
			return nil, fmt.Errorf("%w: duplicate medicine %s", entities.ErrConfiguration, entry.Medicine.Name)
		}
		names[entry.Medicine.Name] = true

		sku, err := entities.NewStockKeepingUnit(entry.Medicine, entry.Count)
		if err != nil {
			return nil, fmt.Errorf("%w: medicine %s: %v", entities.ErrConfiguration, entry.Medicine.Name, err)
		}
		w.skus[entry.Medicine] = sku
		w.order = append(w.order, entry.Medicine)
	}

	return w, nil
}

// Verify interface compliance
var _ repositories.Warehouse = (*Warehouse)(nil)

// Medicines returns the catalog in load order
func (w *Warehouse) Medicines() []entities.Medicine {
	out := make([]entities.Medicine, len(w.order))
	copy(out, w.order)
	return out
}

// SKU returns the stock record of a medicine
func (w *Warehouse) SKU(medicine entities.Medicine) (*entities.StockKeepingUnit, error) {
	sku, ok := w.skus[medicine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownMedicine, medicine.Name)
	}
	return sku, nil
}

// HasDiscounted reports whether the medicine has any discounted batch in stock
func (w *Warehouse) HasDiscounted(medicine entities.Medicine) (bool, error) {
	sku, err := w.SKU(medicine)
	if err != nil {
		return false, err
	}
	return sku.HasDiscounted(), nil
}

// StartDay receives replenishments whose lead time has run out
func (w *Warehouse) StartDay() {
	for _, medicine := range w.order {
		w.skus[medicine].StartDay()
	}
}

// EndDay ages every SKU and returns the total write-off losses
func (w *Warehouse) EndDay() decimal.Decimal {
	losses := decimal.Zero
	for _, medicine := range w.order {
		losses = losses.Add(w.skus[medicine].EndDay(w.rng))
	}
	return losses
}

// Fulfill sells every requested line and records the receipt on the order.
// Stock is committed here, before any courier check.
func (w *Warehouse) Fulfill(order *entities.Order) (*entities.FulfilledOrder, error) {
	if order.Stage() != entities.Placed {
		return nil, fmt.Errorf("%w: order %s already processed", entities.ErrPrecondition, order.ID)
	}

	// Resolve all lines first so an unknown medicine leaves stock untouched
	skus := make([]*entities.StockKeepingUnit, len(order.Items))
	for i, line := range order.Items {
		sku, err := w.SKU(line.Medicine)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", order.ID, err)
		}
		skus[i] = sku
	}

	receipt := entities.Receipt{Cost: decimal.Zero}
	status := entities.Delivered

	for i, line := range order.Items {
		sale := skus[i].Sell(line.Quantity)
		receipt.Count += sale.Count
		receipt.Cost = receipt.Cost.Add(sale.Cost)

		if sale.Count < line.Quantity {
			status = entities.Partially
		}
	}

	if receipt.Count == 0 {
		status = entities.NoMedicines
	}

	return order.Fulfill(status, receipt)
}

// Snapshot returns an independent copy of every SKU in catalog order
func (w *Warehouse) Snapshot() entities.WarehouseSnapshot {
	snap := entities.WarehouseSnapshot{SKUs: make([]entities.SKUSnapshot, 0, len(w.order))}
	for _, medicine := range w.order {
		snap.SKUs = append(snap.SKUs, w.skus[medicine].Snapshot())
	}
	return snap
}
