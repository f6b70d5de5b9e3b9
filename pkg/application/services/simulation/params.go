package simulation

import (
	"fmt"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

// Params holds the configuration of a simulation run
type Params struct {
	Days                int     `mapstructure:"days" json:"days"`
	Couriers            int     `mapstructure:"couriers" json:"couriers"`
	RetailMargin        float64 `mapstructure:"retail_margin" json:"retail_margin"`
	CardDiscount        float64 `mapstructure:"card_discount" json:"card_discount"`
	BaseOrders          int     `mapstructure:"base_orders" json:"base_orders"`
	Sensitivity         float64 `mapstructure:"sensitivity" json:"sensitivity"`
	Seed                uint64  `mapstructure:"seed" json:"seed"`
	MaxOrdersPerCourier int     `mapstructure:"max_orders_per_courier" json:"max_orders_per_courier"`
}

// DefaultParams returns the parameters of the reference run
func DefaultParams() Params {
	return Params{
		Days:         100,
		Couriers:     5,
		RetailMargin: 0.25,
		CardDiscount: 0.05,
		BaseOrders:   10,
		Sensitivity:  0.05,
		Seed:         1,
	}
}

// Validate checks every field and wraps failures in ErrConfiguration
func (p Params) Validate() error {
	if p.Days <= 0 {
		return fmt.Errorf("%w: days must be positive, got %d", entities.ErrConfiguration, p.Days)
	}
	if p.Couriers <= 0 {
		return fmt.Errorf("%w: couriers must be positive, got %d", entities.ErrConfiguration, p.Couriers)
	}
	if !entities.IsFiniteNumber(p.RetailMargin) || p.RetailMargin < 0 {
		return fmt.Errorf("%w: retail margin must be a non-negative number, got %v", entities.ErrConfiguration, p.RetailMargin)
	}
	if !entities.IsFiniteNumber(p.CardDiscount) || p.CardDiscount < 0 || p.CardDiscount > 1 {
		return fmt.Errorf("%w: card discount must be in [0,1], got %v", entities.ErrConfiguration, p.CardDiscount)
	}
	if p.BaseOrders < 0 {
		return fmt.Errorf("%w: base orders cannot be negative, got %d", entities.ErrConfiguration, p.BaseOrders)
	}
	if !entities.IsFiniteNumber(p.Sensitivity) || p.Sensitivity < 0 {
		return fmt.Errorf("%w: sensitivity must be a non-negative number, got %v", entities.ErrConfiguration, p.Sensitivity)
	}
	if p.MaxOrdersPerCourier < 0 {
		return fmt.Errorf("%w: max orders per courier cannot be negative, got %d", entities.ErrConfiguration, p.MaxOrdersPerCourier)
	}
	return nil
}

// OrderIntensity is the mean daily number of exogenous orders. Higher margins
// suppress demand.
func (p Params) OrderIntensity() float64 {
	return float64(p.BaseOrders) / (1 + p.Sensitivity*p.RetailMargin)
}
