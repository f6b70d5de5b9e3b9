package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

// Config holds the rates of the retail pricing policy
type Config struct {
	RetailMargin      float64
	CardDiscount      float64
	RegularDiscount   float64
	ThresholdDiscount float64
	DiscountThreshold float64
	MaxDiscount       float64
}

// DefaultConfig returns the standard discount rates for the given margin
func DefaultConfig(retailMargin float64) Config {
	return Config{
		RetailMargin:      retailMargin,
		CardDiscount:      0.05,
		RegularDiscount:   0.05,
		ThresholdDiscount: 0.03,
		DiscountThreshold: 1000,
		MaxDiscount:       0.09,
	}
}

// Validate checks that every rate is in range
func (c Config) Validate() error {
	if !entities.IsFiniteNumber(c.RetailMargin) || c.RetailMargin < 0 {
		return fmt.Errorf("%w: retail margin must be a non-negative number, got %v", entities.ErrConfiguration, c.RetailMargin)
	}
	rates := []struct {
		name  string
		value float64
	}{
		{"card discount", c.CardDiscount},
		{"regular discount", c.RegularDiscount},
		{"threshold discount", c.ThresholdDiscount},
		{"max discount", c.MaxDiscount},
	}
	for _, r := range rates {
		if !entities.IsFiniteNumber(r.value) || r.value < 0 || r.value > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", entities.ErrConfiguration, r.name, r.value)
		}
	}
	if !entities.IsFiniteNumber(c.DiscountThreshold) || c.DiscountThreshold < 0 {
		return fmt.Errorf("%w: discount threshold must be a non-negative number, got %v", entities.ErrConfiguration, c.DiscountThreshold)
	}
	return nil
}

// PayMaster turns the wholesale cost of a fulfilled order into a retail price.
// It keeps no per-order state.
type PayMaster struct {
	margin            decimal.Decimal
	cardDiscount      decimal.Decimal
	regularDiscount   decimal.Decimal
	thresholdDiscount decimal.Decimal
	threshold         decimal.Decimal
	maxDiscount       decimal.Decimal
}

// NewPayMaster creates a validated PayMaster
func NewPayMaster(config Config) (*PayMaster, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PayMaster{
		margin:            decimal.NewFromFloat(config.RetailMargin),
		cardDiscount:      decimal.NewFromFloat(config.CardDiscount),
		regularDiscount:   decimal.NewFromFloat(config.RegularDiscount),
		thresholdDiscount: decimal.NewFromFloat(config.ThresholdDiscount),
		threshold:         decimal.NewFromFloat(config.DiscountThreshold),
		maxDiscount:       decimal.NewFromFloat(config.MaxDiscount),
	}, nil
}

// Discount returns the summed discount rate before capping
func (p *PayMaster) Discount(order *entities.Order, basePrice decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	if order.IsRegular() {
		sum = sum.Add(p.regularDiscount)
	}
	if order.Customer.DiscountCard {
		sum = sum.Add(p.cardDiscount)
	}
	if basePrice.GreaterThan(p.threshold) {
		sum = sum.Add(p.thresholdDiscount)
	}
	return sum
}

// Price computes the retail price of a fulfilled order and stores it as the
// order summary:
//
//	price = cost × (1 + margin) × (1 − min(discounts, maxDiscount))
func (p *PayMaster) Price(fulfilled *entities.FulfilledOrder) (decimal.Decimal, error) {
	if fulfilled == nil {
		return decimal.Zero, fmt.Errorf("%w: nil fulfilled order", entities.ErrPrecondition)
	}

	base := fulfilled.Receipt().Cost.Mul(decimal.NewFromInt(1).Add(p.margin))
	discount := decimal.Min(p.Discount(fulfilled.Order(), base), p.maxDiscount)
	price := base.Mul(decimal.NewFromInt(1).Sub(discount))

	if err := fulfilled.SetSummary(price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// PriceOrder prices an order that must already have been through the warehouse
func (p *PayMaster) PriceOrder(order *entities.Order) (decimal.Decimal, error) {
	fulfilled, err := order.Fulfillment()
	if err != nil {
		return decimal.Zero, err
	}
	return p.Price(fulfilled)
}
