package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType represents how an order was created
type OrderType int

const (
	Regular OrderType = iota
	Random
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case Regular:
		return "Regular"
	case Random:
		return "Random"
	default:
		return "Unknown"
	}
}

// OrderStatus represents the delivery outcome of an order
type OrderStatus int

const (
	// NoCourier is the initial status; it stays final for orders dropped for lack of couriers
	NoCourier OrderStatus = iota
	NoMedicines
	Partially
	Delivered
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case NoCourier:
		return "NoCourier"
	case NoMedicines:
		return "NoMedicines"
	case Partially:
		return "Partially"
	case Delivered:
		return "Delivered"
	default:
		return "Unknown"
	}
}

// OrderStage tracks which write-once results an order already carries
type OrderStage int

const (
	Placed OrderStage = iota
	Fulfilled
	Priced
)

// String method for OrderStage enum
func (s OrderStage) String() string {
	switch s {
	case Placed:
		return "Placed"
	case Fulfilled:
		return "Fulfilled"
	case Priced:
		return "Priced"
	default:
		return "Unknown"
	}
}

// Receipt is the preliminary wholesale result of fulfilling an order
type Receipt struct {
	Count Quantity
	Cost  decimal.Decimal
}

// Order is a customer's request for medicines. The receipt and the summary
// price are set exactly once, in that order.
type Order struct {
	ID       uuid.UUID
	Customer *Customer
	Items    []OrderLine
	Type     OrderType

	status  OrderStatus
	stage   OrderStage
	receipt Receipt
	summary decimal.Decimal
}

// NewOrder creates a validated Order in the Placed stage
func NewOrder(id uuid.UUID, customer *Customer, items []OrderLine, orderType OrderType) (*Order, error) {
	if customer == nil {
		return nil, fmt.Errorf("order customer cannot be nil")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must request at least one medicine")
	}
	for _, line := range items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity of %s must be positive, got %d", line.Medicine.Name, line.Quantity)
		}
	}

	lines := make([]OrderLine, len(items))
	copy(lines, items)

	return &Order{
		ID:       id,
		Customer: customer,
		Items:    lines,
		Type:     orderType,
		status:   NoCourier,
		stage:    Placed,
	}, nil
}

// NewRegularOrder creates an order from a regular customer's template
func NewRegularOrder(id uuid.UUID, customer *Customer) (*Order, error) {
	if customer == nil || !customer.IsRegular() {
		return nil, fmt.Errorf("%w: regular order requires a regular customer", ErrConfiguration)
	}
	return NewOrder(id, customer, customer.RegularItems, Regular)
}

// Status returns the delivery status
func (o *Order) Status() OrderStatus {
	return o.status
}

// Stage returns how far the order has been processed
func (o *Order) Stage() OrderStage {
	return o.stage
}

// IsDelivered reports whether at least part of the order reached the customer
func (o *Order) IsDelivered() bool {
	return o.status == Delivered || o.status == Partially
}

// IsRegular reports whether the order came from a regular customer's template
func (o *Order) IsRegular() bool {
	return o.Type == Regular
}

// Fulfill records the warehouse outcome. It can be called once, and only with
// one of the attempted statuses.
func (o *Order) Fulfill(status OrderStatus, receipt Receipt) (*FulfilledOrder, error) {
	if o.stage != Placed {
		return nil, fmt.Errorf("%w: order %s already fulfilled", ErrPrecondition, o.ID)
	}
	if status == NoCourier {
		return nil, fmt.Errorf("%w: fulfilled order cannot have status %s", ErrPrecondition, status)
	}

	o.status = status
	o.receipt = receipt
	o.stage = Fulfilled
	return &FulfilledOrder{order: o}, nil
}

// Fulfillment returns the fulfilled view of the order, or ErrPrecondition if
// the warehouse never processed it.
func (o *Order) Fulfillment() (*FulfilledOrder, error) {
	if o.stage == Placed {
		return nil, fmt.Errorf("%w: order %s was not processed by the warehouse", ErrPrecondition, o.ID)
	}
	return &FulfilledOrder{order: o}, nil
}

// Receipt returns the preliminary receipt if the order was fulfilled
func (o *Order) Receipt() (Receipt, bool) {
	return o.receipt, o.stage != Placed
}

// Summary returns the retail price of a priced order
func (o *Order) Summary() (decimal.Decimal, error) {
	if o.stage != Priced {
		return decimal.Zero, fmt.Errorf("%w: order %s has no summary yet", ErrPrecondition, o.ID)
	}
	return o.summary, nil
}

// FulfilledOrder is an order that carries a receipt. Only Order.Fulfill and
// Order.Fulfillment produce one, so pricing cannot see an unprocessed order.
type FulfilledOrder struct {
	order *Order
}

// Order returns the underlying order
func (f *FulfilledOrder) Order() *Order {
	return f.order
}

// Receipt returns the preliminary receipt
func (f *FulfilledOrder) Receipt() Receipt {
	return f.order.receipt
}

// SetSummary stores the retail price; a second call fails
func (f *FulfilledOrder) SetSummary(summary decimal.Decimal) error {
	if f.order.stage == Priced {
		return fmt.Errorf("%w: order %s already priced", ErrPrecondition, f.order.ID)
	}
	f.order.summary = summary
	f.order.stage = Priced
	return nil
}

// MarshalText encodes the order type by name
func (o OrderType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// MarshalText encodes the status by name
func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
