package simulation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/application/services/pharmacy"
	"github.com/vsinha/pharmsim/pkg/application/services/pricing"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/infrastructure/random"
	"github.com/vsinha/pharmsim/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/pharmsim/pkg/infrastructure/repositories/memory"
)

// ErrComplete is returned by NextDay once the horizon has been simulated
var ErrComplete = errors.New("simulation complete")

type options struct {
	logger    *zap.Logger
	recorders []pharmacy.Recorder
	pricing   *pricing.Config
}

// Option configures optional simulation collaborators
type Option func(*options)

// WithLogger sets the logger passed down to the day cycle
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder reports every closed day to r. Recorders are called in the
// order they were added.
func WithRecorder(r pharmacy.Recorder) Option {
	return func(o *options) {
		o.recorders = append(o.recorders, r)
	}
}

// WithPricing replaces the default pricing rates. RetailMargin and
// CardDiscount from Params are ignored when this option is set.
func WithPricing(config pricing.Config) Option {
	return func(o *options) {
		o.pricing = &config
	}
}

// Simulation drives the day cycle over the configured horizon. It owns the
// single random source every stochastic draw of the run comes from.
type Simulation struct {
	params    Params
	warehouse *memory.Warehouse
	pharmacy  *pharmacy.Pharmacy
	generator *OrderGenerator
	logger    *zap.Logger

	day   int
	stats []dto.DayStatistics
}

// NewSimulation builds a simulation from parameters and seed rows. Any
// malformed row or parameter fails with entities.ErrConfiguration.
func NewSimulation(params Params, catalogRows, customerRows [][]string, opts ...Option) (*Simulation, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	stock, err := csv.ParseCatalog(catalogRows)
	if err != nil {
		return nil, err
	}
	if len(stock) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", entities.ErrConfiguration)
	}

	source := random.NewSource(params.Seed)

	warehouse, err := memory.NewWarehouse(stock, source)
	if err != nil {
		return nil, err
	}

	customers, err := csv.ParseCustomers(customerRows, warehouse.Medicines())
	if err != nil {
		return nil, err
	}

	pricingConfig := pricing.DefaultConfig(params.RetailMargin)
	pricingConfig.CardDiscount = params.CardDiscount
	if o.pricing != nil {
		pricingConfig = *o.pricing
	}
	payMaster, err := pricing.NewPayMaster(pricingConfig)
	if err != nil {
		return nil, err
	}

	pharmacyOpts := []pharmacy.Option{pharmacy.WithLogger(o.logger)}
	for _, r := range o.recorders {
		pharmacyOpts = append(pharmacyOpts, pharmacy.WithRecorder(r))
	}
	ph, err := pharmacy.NewPharmacy(
		warehouse,
		payMaster,
		customers,
		pharmacy.Config{Couriers: params.Couriers, MaxOrdersPerCourier: params.MaxOrdersPerCourier},
		source,
		pharmacyOpts...,
	)
	if err != nil {
		return nil, err
	}

	o.logger.Info("simulation created",
		zap.Int("days", params.Days),
		zap.Int("medicines", len(stock)),
		zap.Int("customers", len(customers)),
		zap.Float64("order_intensity", params.OrderIntensity()),
		zap.Uint64("seed", params.Seed),
	)

	return &Simulation{
		params:    params,
		warehouse: warehouse,
		pharmacy:  ph,
		generator: NewOrderGenerator(warehouse, source, params.OrderIntensity()),
		logger:    o.logger,
		stats:     make([]dto.DayStatistics, 0, params.Days),
	}, nil
}

// Params returns the run configuration
func (s *Simulation) Params() Params {
	return s.params
}

// Day returns the last simulated day, 0 before the first one
func (s *Simulation) Day() int {
	return s.day
}

// Warehouse returns a snapshot of the live warehouse
func (s *Simulation) Warehouse() entities.WarehouseSnapshot {
	return s.warehouse.Snapshot()
}

// IsComplete reports whether every day of the horizon has been simulated
func (s *Simulation) IsComplete() bool {
	return s.day >= s.params.Days
}

// NextDay simulates the next day and returns its statistics
func (s *Simulation) NextDay() (dto.DayStatistics, error) {
	if s.IsComplete() {
		return dto.DayStatistics{}, ErrComplete
	}

	day := s.day + 1
	orders, err := s.generator.Generate()
	if err != nil {
		return dto.DayStatistics{}, fmt.Errorf("day %d: failed to generate orders: %w", day, err)
	}

	stats, err := s.pharmacy.ProcessDay(day, orders)
	if err != nil {
		return dto.DayStatistics{}, err
	}

	s.day = day
	s.stats = append(s.stats, stats)
	return stats, nil
}

// Run simulates the remaining days and returns the statistics of the whole
// horizon in day order
func (s *Simulation) Run(ctx context.Context) ([]dto.DayStatistics, error) {
	for !s.IsComplete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := s.NextDay(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("simulation finished", zap.Int("days", s.day))
	return s.Statistics(), nil
}

// Statistics returns the statistics of every simulated day so far
func (s *Simulation) Statistics() []dto.DayStatistics {
	out := make([]dto.DayStatistics, len(s.stats))
	copy(out, s.stats)
	return out
}
