package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DiscountShelfLifeDays is the remaining shelf life at which a batch is sold at half price
	DiscountShelfLifeDays = 30
	// MaxLeadTimeDays bounds the supplier lead time of a replenishment batch
	MaxLeadTimeDays = 3
)

var discountMultiplier = decimal.NewFromFloat(0.5)

// Batch represents a lot of one medicine sharing one expiration countdown
type Batch struct {
	Count         Quantity
	ShelfLifeDays int
}

// IsDiscounted reports whether the batch is close enough to expiry to sell at half price
func (b *Batch) IsDiscounted() bool {
	return b.ShelfLifeDays <= DiscountShelfLifeDays
}

// IsExpired reports whether the batch can no longer be sold
func (b *Batch) IsExpired() bool {
	return b.ShelfLifeDays <= 0
}

// IsEmpty reports whether the batch has no units left
func (b *Batch) IsEmpty() bool {
	return b.Count <= 0
}

// Sell removes up to n units and returns how many were removed
func (b *Batch) Sell(n Quantity) Quantity {
	sold := min(b.Count, n)
	if sold < 0 {
		sold = 0
	}
	b.Count -= sold
	return sold
}

// SaleResult is the outcome of selling one medicine: units taken and their wholesale cost
type SaleResult struct {
	Count Quantity
	Cost  decimal.Decimal
}

// LeadTimeSource draws uniform integers in [0, n)
type LeadTimeSource interface {
	IntN(n int) int
}

// StockKeepingUnit holds the active batches of one medicine, oldest arrival
// first, plus at most one pending replenishment batch.
type StockKeepingUnit struct {
	medicine Medicine
	batches  []*Batch
	count    Quantity

	pending     *Batch
	pendingDays int
}

// NewStockKeepingUnit creates a SKU holding a single fresh batch of initialCount units
func NewStockKeepingUnit(medicine Medicine, initialCount Quantity) (*StockKeepingUnit, error) {
	if initialCount < 0 {
		return nil, fmt.Errorf("initial count cannot be negative, got %d", initialCount)
	}

	sku := &StockKeepingUnit{medicine: medicine}
	if initialCount > 0 {
		sku.batches = append(sku.batches, &Batch{Count: initialCount, ShelfLifeDays: medicine.ExpirationDays})
		sku.count = initialCount
	}
	return sku, nil
}

// Medicine returns the catalog entry of this SKU
func (s *StockKeepingUnit) Medicine() Medicine {
	return s.medicine
}

// Count returns the number of units across active batches
func (s *StockKeepingUnit) Count() Quantity {
	return s.count
}

// HasDiscounted reports whether any active batch is discounted
func (s *StockKeepingUnit) HasDiscounted() bool {
	for _, b := range s.batches {
		if b.IsDiscounted() {
			return true
		}
	}
	return false
}

// StartDay receives the pending batch once its lead time has run out
func (s *StockKeepingUnit) StartDay() {
	if s.pending != nil && s.pendingDays == 0 {
		s.batches = append(s.batches, s.pending)
		s.count += s.pending.Count
		s.pending = nil
	}
}

// Sell takes up to requested units from non-expired batches in arrival order.
// Discounted batches are costed at half the wholesale price. Fulfilling fewer
// units than requested is a normal outcome.
func (s *StockKeepingUnit) Sell(requested Quantity) SaleResult {
	result := SaleResult{Cost: decimal.Zero}
	unitPrice := s.medicine.UnitPrice()
	remaining := requested

	for _, batch := range s.batches {
		if remaining <= 0 {
			break
		}
		if batch.IsExpired() {
			continue
		}

		price := unitPrice
		if batch.IsDiscounted() {
			price = price.Mul(discountMultiplier)
		}

		sold := batch.Sell(remaining)
		result.Cost = result.Cost.Add(price.Mul(decimal.NewFromInt(int64(sold))))
		result.Count += sold
		remaining -= sold
	}

	s.count -= result.Count
	return result
}

// EndDay ages every active batch by one day, writes off expired ones and prunes
// empty ones, then runs the reorder policy. It returns the wholesale value of
// the written-off units.
func (s *StockKeepingUnit) EndDay(rng LeadTimeSource) decimal.Decimal {
	losses := decimal.Zero
	unitPrice := s.medicine.UnitPrice()

	kept := s.batches[:0]
	for _, batch := range s.batches {
		batch.ShelfLifeDays--
		if batch.IsExpired() {
			losses = losses.Add(unitPrice.Mul(decimal.NewFromInt(int64(batch.Count))))
			s.count -= batch.Count
			continue
		}
		if batch.IsEmpty() {
			continue
		}
		kept = append(kept, batch)
	}
	for i := len(kept); i < len(s.batches); i++ {
		s.batches[i] = nil
	}
	s.batches = kept

	s.reorder(rng)
	return losses
}

// reorder places a replenishment when stock runs below the threshold. The lead
// time counter is decremented on the day the batch is created too, so a batch
// with lead time n is received at the start of the n-th following day.
func (s *StockKeepingUnit) reorder(rng LeadTimeSource) {
	if s.count < s.medicine.MinQuantity && s.pending == nil {
		s.pending = &Batch{Count: s.medicine.PurchaseQuantity, ShelfLifeDays: s.medicine.ExpirationDays}
		s.pendingDays = rng.IntN(MaxLeadTimeDays) + 1
	}

	if s.pending != nil {
		s.pendingDays--
	}
}
