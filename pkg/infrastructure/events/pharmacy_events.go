package events

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

const (
	OrderDeliveredEvent   = "order.delivered"
	OrderPartiallyEvent   = "order.partially"
	OrderNoMedicinesEvent = "order.no_medicines"
	OrderNoCourierEvent   = "order.no_courier"

	DayClosedEvent = "day.closed"
)

// DaysStream holds one DayClosed event per simulated day
const DaysStream = "days"

// OrderOutcome is the payload of an order.* event
type OrderOutcome struct {
	OrderID   uuid.UUID            `json:"order_id"`
	Customer  string               `json:"customer"`
	Type      entities.OrderType   `json:"type"`
	Status    entities.OrderStatus `json:"status"`
	Fulfilled entities.Quantity    `json:"fulfilled"`
	Cost      decimal.Decimal      `json:"cost"`
	Summary   decimal.Decimal      `json:"summary"`
}

// DayClosed is the payload of a day.closed event
type DayClosed struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Losses  decimal.Decimal `json:"losses"`
}

// OrderEventType maps a delivery status to its event type
func OrderEventType(status entities.OrderStatus) string {
	switch status {
	case entities.Delivered:
		return OrderDeliveredEvent
	case entities.Partially:
		return OrderPartiallyEvent
	case entities.NoMedicines:
		return OrderNoMedicinesEvent
	default:
		return OrderNoCourierEvent
	}
}

// CustomerStream is the stream holding every order outcome of one customer
func CustomerStream(name string) string {
	return "customer:" + name
}

// Journal records order outcomes and day closings of a run into an event store
type Journal struct {
	store  EventStore
	logger *zap.Logger
}

// NewJournal creates a journal appending to store
func NewJournal(store EventStore, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{store: store, logger: logger}
}

// ObserveDay appends one event per order, in delivery order, then the day closing
func (j *Journal) ObserveDay(stats dto.DayStatistics) {
	for _, o := range stats.Orders {
		outcome := OrderOutcome{
			OrderID:   o.ID,
			Customer:  o.CustomerName,
			Type:      o.Type,
			Status:    o.Status,
			Fulfilled: o.Fulfilled,
			Cost:      o.Cost,
			Summary:   o.Summary,
		}
		stream := CustomerStream(o.CustomerName)
		j.append(stream, NewEvent(OrderEventType(o.Status), stream, stats.Day, outcome))
	}

	closed := DayClosed{
		Orders:  len(stats.Orders),
		Revenue: stats.Revenue,
		Profit:  stats.Profit,
		Losses:  stats.Losses,
	}
	j.append(DaysStream, NewEvent(DayClosedEvent, DaysStream, stats.Day, closed))
}

func (j *Journal) append(stream string, event Event) {
	if err := j.store.AppendEvent(stream, event); err != nil {
		j.logger.Warn("journal append failed",
			zap.String("stream", stream),
			zap.String("type", event.Type()),
			zap.Error(err),
		)
	}
}

// WriteJSONLines writes every journal event as one JSON object per line
func (j *Journal) WriteJSONLines(w io.Writer) error {
	all, err := j.store.ReadAllEvents(0)
	if err != nil {
		return err
	}
	return writeLines(w, all)
}

// WriteCustomerHistory writes the order outcomes of one customer as JSON lines.
// An unknown customer yields no output.
func (j *Journal) WriteCustomerHistory(w io.Writer, customer string) error {
	history, err := j.store.ReadEvents(CustomerStream(customer), 1)
	if err != nil {
		return err
	}
	return writeLines(w, history)
}

func writeLines(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode %s event: %w", e.Type(), err)
		}
	}
	return nil
}
