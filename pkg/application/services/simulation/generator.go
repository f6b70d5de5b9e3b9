package simulation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/domain/repositories"
)

const (
	maxItemsPerOrder   = 5
	maxQuantityPerItem = 5
	discountedWeight   = 2.0
	regularWeight      = 1.0
)

var streets = []string{"Ленина", "Гагарина", "Советская"}

// Randomness is the slice of the shared random source used for order synthesis
type Randomness interface {
	IntN(n int) int
	IntRange(lo, hi int) int
	Float64() float64
	Poisson(lambda float64) int
	WeightedSample(weights []float64, k int) []int
	NewID() uuid.UUID
}

// OrderGenerator synthesizes exogenous orders from a Poisson arrival process
type OrderGenerator struct {
	warehouse repositories.Warehouse
	rng       Randomness
	intensity float64
}

// NewOrderGenerator creates a generator drawing a Poisson(intensity) number of orders per day
func NewOrderGenerator(warehouse repositories.Warehouse, rng Randomness, intensity float64) *OrderGenerator {
	return &OrderGenerator{
		warehouse: warehouse,
		rng:       rng,
		intensity: intensity,
	}
}

// Generate returns one day's exogenous orders
func (g *OrderGenerator) Generate() ([]*entities.Order, error) {
	count := g.rng.Poisson(g.intensity)
	orders := make([]*entities.Order, 0, count)
	for range count {
		order, err := g.GenerateOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GenerateOrder builds one random order: 1..5 distinct medicines, weighted 2:1
// toward SKUs holding discounted stock, each with a quantity of 1..5.
func (g *OrderGenerator) GenerateOrder() (*entities.Order, error) {
	medicines := g.warehouse.Medicines()
	if len(medicines) == 0 {
		return nil, fmt.Errorf("%w: cannot generate orders from an empty catalog", entities.ErrConfiguration)
	}

	weights := make([]float64, len(medicines))
	for i, m := range medicines {
		discounted, err := g.warehouse.HasDiscounted(m)
		if err != nil {
			return nil, err
		}
		weights[i] = regularWeight
		if discounted {
			weights[i] = discountedWeight
		}
	}

	itemCount := min(g.rng.IntRange(1, maxItemsPerOrder), len(medicines))
	picked := g.rng.WeightedSample(weights, itemCount)

	items := make([]entities.OrderLine, len(picked))
	for i, idx := range picked {
		items[i] = entities.OrderLine{
			Medicine: medicines[idx],
			Quantity: entities.Quantity(g.rng.IntRange(1, maxQuantityPerItem)),
		}
	}

	return entities.NewOrder(g.rng.NewID(), GenerateCustomer(g.rng), items, entities.Random)
}

// GenerateCustomer creates an anonymous walk-in customer
func GenerateCustomer(rng Randomness) *entities.Customer {
	return &entities.Customer{
		Name:         fmt.Sprintf("Клиент %d", rng.IntRange(1, 100)),
		Phone:        fmt.Sprintf("+7%d", rng.IntRange(9000000000, 9999999999)),
		Address:      fmt.Sprintf("ул. %s, %d", streets[rng.IntN(len(streets))], rng.IntRange(1, 100)),
		DiscountCard: rng.Float64() > 0.7,
	}
}
