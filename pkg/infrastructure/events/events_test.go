package events

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

func TestInMemoryEventStore_VersionsPerStream(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent("a", NewEvent("x", "a", 1, nil)))
	require.NoError(t, store.AppendEvent("b", NewEvent("x", "b", 1, nil)))
	require.NoError(t, store.AppendEvent("a", NewEvent("y", "a", 2, nil)))

	streamA, err := store.ReadEvents("a", 0)
	require.NoError(t, err)
	require.Len(t, streamA, 2)
	assert.Equal(t, 1, streamA[0].Version())
	assert.Equal(t, 2, streamA[1].Version())
	assert.Equal(t, 2, streamA[1].Day())

	fromSecond, err := store.ReadEvents("a", 2)
	require.NoError(t, err)
	require.Len(t, fromSecond, 1)
	assert.Equal(t, "y", fromSecond[0].Type())

	missing, err := store.ReadEvents("c", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].StreamID())
}

func TestOrderEventType(t *testing.T) {
	assert.Equal(t, OrderDeliveredEvent, OrderEventType(entities.Delivered))
	assert.Equal(t, OrderPartiallyEvent, OrderEventType(entities.Partially))
	assert.Equal(t, OrderNoMedicinesEvent, OrderEventType(entities.NoMedicines))
	assert.Equal(t, OrderNoCourierEvent, OrderEventType(entities.NoCourier))
}

func TestJournal_ObserveDay(t *testing.T) {
	store := NewInMemoryEventStore()
	journal := NewJournal(store, nil)

	stats := dto.DayStatistics{
		Day:     3,
		Revenue: decimal.NewFromInt(125),
		Profit:  decimal.NewFromInt(25),
		Losses:  decimal.Zero,
		Orders: []dto.OrderView{
			{ID: uuid.New(), CustomerName: "Иванов", Type: entities.Regular, Status: entities.Delivered,
				Fulfilled: 1, Cost: decimal.NewFromInt(100), Summary: decimal.NewFromInt(125), Priced: true},
			{ID: uuid.New(), CustomerName: "Клиент 5", Type: entities.Random, Status: entities.NoCourier},
		},
	}
	journal.ObserveDay(stats)

	history, err := store.ReadEvents(CustomerStream("Иванов"), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, OrderDeliveredEvent, history[0].Type())
	assert.Equal(t, 3, history[0].Day())
	outcome := history[0].Data().(OrderOutcome)
	assert.True(t, outcome.Summary.Equal(decimal.NewFromInt(125)))

	days, err := store.ReadEvents(DaysStream, 1)
	require.NoError(t, err)
	require.Len(t, days, 1)
	closed := days[0].Data().(DayClosed)
	assert.Equal(t, 2, closed.Orders)
	assert.True(t, closed.Profit.Equal(decimal.NewFromInt(25)))

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, OrderNoCourierEvent, all[1].Type())
	assert.Equal(t, DayClosedEvent, all[2].Type(), "day closing comes after its orders")
}

func TestJournal_WriteJSONLines(t *testing.T) {
	journal := NewJournal(NewInMemoryEventStore(), nil)
	journal.ObserveDay(dto.DayStatistics{Day: 1, Revenue: decimal.Zero, Profit: decimal.Zero, Losses: decimal.Zero})
	journal.ObserveDay(dto.DayStatistics{Day: 2, Revenue: decimal.Zero, Profit: decimal.Zero, Losses: decimal.NewFromInt(7)})

	var buf bytes.Buffer
	require.NoError(t, journal.WriteJSONLines(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, DayClosedEvent, second["type"])
	assert.Equal(t, float64(2), second["day"])
	assert.Equal(t, float64(2), second["version"])
	assert.Equal(t, "7", second["data"].(map[string]any)["losses"])
}

func TestJournal_WriteCustomerHistory(t *testing.T) {
	journal := NewJournal(NewInMemoryEventStore(), nil)
	for day := 1; day <= 3; day++ {
		journal.ObserveDay(dto.DayStatistics{
			Day:     day,
			Revenue: decimal.Zero,
			Profit:  decimal.Zero,
			Losses:  decimal.Zero,
			Orders: []dto.OrderView{
				{CustomerName: "Иванов", Type: entities.Regular, Status: entities.Delivered},
				{CustomerName: "Петров", Type: entities.Random, Status: entities.NoCourier},
			},
		})
	}

	testCases := []struct {
		name     string
		customer string
		expected []string
	}{
		{"regular customer", "Иванов", []string{OrderDeliveredEvent, OrderDeliveredEvent, OrderDeliveredEvent}},
		{"random customer", "Петров", []string{OrderNoCourierEvent, OrderNoCourierEvent, OrderNoCourierEvent}},
		{"unknown customer", "Сидоров", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, journal.WriteCustomerHistory(&buf, tc.customer))

			var types []string
			var days []float64
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var event map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &event))
				assert.Equal(t, CustomerStream(tc.customer), event["stream"])
				types = append(types, event["type"].(string))
				days = append(days, event["day"].(float64))
			}
			assert.Equal(t, tc.expected, types)
			if tc.expected != nil {
				assert.Equal(t, []float64{1, 2, 3}, days)
			}
		})
	}
}
