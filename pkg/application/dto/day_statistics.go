package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// ItemView is one requested line of an order
type ItemView struct {
	Medicine string            `json:"medicine"`
	Quantity entities.Quantity `json:"quantity"`
}

// OrderView is a read-only copy of an order as it stood when its day closed
type OrderView struct {
	ID              uuid.UUID            `json:"id"`
	CustomerName    string               `json:"customer_name"`
	CustomerAddress string               `json:"customer_address"`
	Type            entities.OrderType   `json:"type"`
	Items           []ItemView           `json:"items"`
	Fulfilled       entities.Quantity    `json:"fulfilled"`
	Cost            decimal.Decimal      `json:"cost"`
	Summary         decimal.Decimal      `json:"summary"`
	Priced          bool                 `json:"priced"`
	Status          entities.OrderStatus `json:"status"`
}

// NewOrderView copies the reportable state of an order
func NewOrderView(order *entities.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		CustomerName:    order.Customer.Name,
		CustomerAddress: order.Customer.Address,
		Type:            order.Type,
		Items:           make([]ItemView, len(order.Items)),
		Cost:            decimal.Zero,
		Summary:         decimal.Zero,
		Status:          order.Status(),
	}
	for i, line := range order.Items {
		view.Items[i] = ItemView{Medicine: line.Medicine.Name, Quantity: line.Quantity}
	}
	if receipt, ok := order.Receipt(); ok {
		view.Fulfilled = receipt.Count
		view.Cost = receipt.Cost
	}
	if summary, err := order.Summary(); err == nil {
		view.Summary = summary
		view.Priced = true
	}
	return view
}

// DayStatistics is the immutable result of one simulated day
type DayStatistics struct {
	Day       int                        `json:"day"`
	Revenue   decimal.Decimal            `json:"revenue"`
	Profit    decimal.Decimal            `json:"profit"`
	Losses    decimal.Decimal            `json:"losses"`
	Orders    []OrderView                `json:"orders"`
	Warehouse entities.WarehouseSnapshot `json:"warehouse"`
}

// Margin returns profit as a percentage of revenue, 0 when there was no revenue
func (s DayStatistics) Margin() decimal.Decimal {
	return margin(s.Profit, s.Revenue)
}

// CountByStatus returns the number of orders per delivery status
func (s DayStatistics) CountByStatus() map[entities.OrderStatus]int {
	counts := make(map[entities.OrderStatus]int)
	for _, o := range s.Orders {
		counts[o.Status]++
	}
	return counts
}

// Totals aggregates a run of day statistics
type Totals struct {
	Days     int
	Revenue  decimal.Decimal
	Profit   decimal.Decimal
	Losses   decimal.Decimal
	Orders   int
	ByStatus map[entities.OrderStatus]int
}

// Margin returns total profit as a percentage of total revenue
func (t Totals) Margin() decimal.Decimal {
	return margin(t.Profit, t.Revenue)
}

// Summarize adds up revenue, profit, losses and order outcomes over all days
func Summarize(stats []DayStatistics) Totals {
	totals := Totals{
		Days:     len(stats),
		Revenue:  decimal.Zero,
		Profit:   decimal.Zero,
		Losses:   decimal.Zero,
		ByStatus: make(map[entities.OrderStatus]int),
	}
	for _, day := range stats {
		totals.Revenue = totals.Revenue.Add(day.Revenue)
		totals.Profit = totals.Profit.Add(day.Profit)
		totals.Losses = totals.Losses.Add(day.Losses)
		totals.Orders += len(day.Orders)
		for status, n := range day.CountByStatus() {
			totals.ByStatus[status] += n
		}
	}
	return totals
}

func margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}
