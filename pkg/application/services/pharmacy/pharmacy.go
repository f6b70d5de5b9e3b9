package pharmacy

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/application/services/pricing"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/domain/repositories"
)

// DefaultMaxOrdersPerCourier is the number of orders one courier delivers per day
const DefaultMaxOrdersPerCourier = 15

// Recorder receives the statistics of every closed day
type Recorder interface {
	ObserveDay(stats dto.DayStatistics)
}

// IDSource issues order identifiers
type IDSource interface {
	NewID() uuid.UUID
}

// Config holds courier capacity settings
type Config struct {
	Couriers            int
	MaxOrdersPerCourier int
}

// Option configures optional Pharmacy collaborators
type Option func(*Pharmacy)

// WithRecorder reports each closed day to r, after any recorder added before it
func WithRecorder(r Recorder) Option {
	return func(p *Pharmacy) {
		p.recorders = append(p.recorders, r)
	}
}

// WithLogger sets the logger used for day-level diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pharmacy) {
		p.logger = logger
	}
}

// Pharmacy runs the day cycle: regular and exogenous orders are fulfilled in
// list order up to courier capacity, priced, and rolled into day statistics.
type Pharmacy struct {
	warehouse     repositories.Warehouse
	payMaster     *pricing.PayMaster
	customers     []*entities.Customer
	couriers      int
	maxPerCourier int
	ids           IDSource
	recorders     []Recorder
	logger        *zap.Logger
}

// NewPharmacy creates a validated Pharmacy. Only customers with a regular
// order template take part in scheduled ordering.
func NewPharmacy(
	warehouse repositories.Warehouse,
	payMaster *pricing.PayMaster,
	customers []*entities.Customer,
	config Config,
	ids IDSource,
	opts ...Option,
) (*Pharmacy, error) {
	if warehouse == nil {
		return nil, fmt.Errorf("warehouse cannot be nil")
	}
	if payMaster == nil {
		return nil, fmt.Errorf("pay master cannot be nil")
	}
	if ids == nil {
		return nil, fmt.Errorf("id source cannot be nil")
	}
	if config.Couriers <= 0 {
		return nil, fmt.Errorf("%w: couriers must be positive, got %d", entities.ErrConfiguration, config.Couriers)
	}
	if config.MaxOrdersPerCourier == 0 {
		config.MaxOrdersPerCourier = DefaultMaxOrdersPerCourier
	}
	if config.MaxOrdersPerCourier < 0 {
		return nil, fmt.Errorf("%w: max orders per courier must be positive, got %d",
			entities.ErrConfiguration, config.MaxOrdersPerCourier)
	}

	var regulars []*entities.Customer
	for _, c := range customers {
		if !c.IsRegular() {
			continue
		}
		if c.Regularity <= 0 {
			return nil, fmt.Errorf("%w: customer %s has regularity %d", entities.ErrConfiguration, c.Name, c.Regularity)
		}
		regulars = append(regulars, c)
	}

	p := &Pharmacy{
		warehouse:     warehouse,
		payMaster:     payMaster,
		customers:     regulars,
		couriers:      config.Couriers,
		maxPerCourier: config.MaxOrdersPerCourier,
		ids:           ids,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Capacity returns how many orders can be delivered in one day
func (p *Pharmacy) Capacity() int {
	return p.couriers * p.maxPerCourier
}

// Warehouse returns the live warehouse
func (p *Pharmacy) Warehouse() repositories.Warehouse {
	return p.warehouse
}

// ProcessDay runs one full day. Regular orders come first in the order list,
// so they always get couriers before exogenous orders. Orders past capacity
// keep NoCourier status and are reported without revenue.
func (p *Pharmacy) ProcessDay(day int, exogenous []*entities.Order) (dto.DayStatistics, error) {
	p.warehouse.StartDay()

	orders, err := p.regularOrders(day)
	if err != nil {
		return dto.DayStatistics{}, fmt.Errorf("day %d: %w", day, err)
	}
	orders = append(orders, exogenous...)

	revenue, profit, err := p.deliver(orders)
	if err != nil {
		return dto.DayStatistics{}, fmt.Errorf("day %d: %w", day, err)
	}

	losses := p.warehouse.EndDay()
	profit = profit.Sub(losses)

	stats := dto.DayStatistics{
		Day:       day,
		Revenue:   revenue,
		Profit:    profit,
		Losses:    losses,
		Orders:    make([]dto.OrderView, len(orders)),
		Warehouse: p.warehouse.Snapshot(),
	}
	for i, o := range orders {
		stats.Orders[i] = dto.NewOrderView(o)
	}

	for _, r := range p.recorders {
		r.ObserveDay(stats)
	}
	p.logger.Debug("day closed",
		zap.Int("day", day),
		zap.Int("orders", len(orders)),
		zap.Int("capacity", p.Capacity()),
		zap.String("revenue", revenue.StringFixed(2)),
		zap.String("profit", profit.StringFixed(2)),
		zap.String("losses", losses.StringFixed(2)),
	)

	return stats, nil
}

func (p *Pharmacy) regularOrders(day int) ([]*entities.Order, error) {
	var orders []*entities.Order
	for _, c := range p.customers {
		due, err := c.IsDue(day)
		if err != nil {
			return nil, err
		}
		if !due {
			continue
		}

		order, err := entities.NewRegularOrder(p.ids.NewID(), c)
		if err != nil {
			return nil, fmt.Errorf("regular order for %s: %w", c.Name, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// deliver fulfills and prices the first Capacity() orders in list order.
// Later orders see stock already taken by earlier ones.
func (p *Pharmacy) deliver(orders []*entities.Order) (decimal.Decimal, decimal.Decimal, error) {
	revenue := decimal.Zero
	profit := decimal.Zero

	deliverable := min(len(orders), p.Capacity())
	for _, order := range orders[:deliverable] {
		fulfilled, err := p.warehouse.Fulfill(order)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		price, err := p.payMaster.Price(fulfilled)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		revenue = revenue.Add(price)
		profit = profit.Add(price.Sub(fulfilled.Receipt().Cost))
	}

	if dropped := len(orders) - deliverable; dropped > 0 {
		p.logger.Debug("orders left without courier", zap.Int("dropped", dropped))
	}
	return revenue, profit, nil
}
