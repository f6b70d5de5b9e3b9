package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

// Warehouse provides batch-level stock for every catalog medicine
type Warehouse interface {
	StartDay()
	EndDay() decimal.Decimal
	Fulfill(order *entities.Order) (*entities.FulfilledOrder, error)
	Snapshot() entities.WarehouseSnapshot
	Medicines() []entities.Medicine
	HasDiscounted(medicine entities.Medicine) (bool, error)
}
