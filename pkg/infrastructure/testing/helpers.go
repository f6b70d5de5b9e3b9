package testing

import (
	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/infrastructure/repositories/memory"
)

// FixedLeadTime always draws the same value, so replenishments take int(f)+1 days
type FixedLeadTime int

func (f FixedLeadTime) IntN(n int) int {
	return int(f) % n
}

// CatalogRows returns a small catalog in seed-row column order. Нурофен starts
// inside the discount window; the others do not.
func CatalogRows() [][]string {
	return [][]string{
		{"Амоксициллин", "120", "500", "Таблетки", "90", "45.50", "Антибиотики", "50", "10"},
		{"Нурофен", "80", "200", "Таблетки", "25", "120", "Обезболивающие", "40", "20"},
		{"Корвалол", "30", "25", "Капли", "365", "60,5", "Сердечные", "30", "5"},
	}
}

// CustomerRows returns two regular customers of CatalogRows ordering every
// 3 and 7 days
func CustomerRows() [][]string {
	return [][]string{
		{"Иванов", "+79001234567", "ул. Ленина, 5", "Да", "Амоксициллин:2, Нурофен:1", "3"},
		{"Петрова", "+79007654321", "ул. Гагарина, 12", "Нет", "Корвалол:1", "7"},
	}
}

// MustMedicine is a helper for tests - panics on validation error
func MustMedicine(name string, wholesale float64, expirationDays int, purchase, min entities.Quantity) entities.Medicine {
	m, err := entities.NewMedicine(name, 100, entities.Tablets, entities.Painkiller, wholesale, expirationDays, purchase, min)
	if err != nil {
		panic(err)
	}
	return *m
}

// MustCustomer creates a customer whose template, if any, orders qty of each
// medicine - panics on validation error
func MustCustomer(name string, card bool, regularity int, qty entities.Quantity, medicines ...entities.Medicine) *entities.Customer {
	items := make([]entities.OrderLine, len(medicines))
	for i, m := range medicines {
		items[i] = entities.OrderLine{Medicine: m, Quantity: qty}
	}
	c, err := entities.NewCustomer(name, "", "ул. Ленина, 1", card, items, regularity)
	if err != nil {
		panic(err)
	}
	return c
}

// BuildWarehouse creates a warehouse whose replenishments arrive the next day
func BuildWarehouse(stock ...memory.StockEntry) *memory.Warehouse {
	w, err := memory.NewWarehouse(stock, FixedLeadTime(0))
	if err != nil {
		panic(err)
	}
	return w
}
