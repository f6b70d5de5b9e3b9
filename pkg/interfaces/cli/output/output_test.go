package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

func sampleStats() []dto.DayStatistics {
	aspirin := entities.Medicine{Name: "Аспирин", MinQuantity: 5, PurchaseQuantity: 20}
	return []dto.DayStatistics{
		{
			Day:     1,
			Revenue: decimal.NewFromInt(1250),
			Profit:  decimal.NewFromInt(250),
			Losses:  decimal.Zero,
			Orders: []dto.OrderView{
				{
					CustomerName:    "Иванов",
					CustomerAddress: "ул. Ленина, 5",
					Type:            entities.Regular,
					Items:           []dto.ItemView{{Medicine: "Аспирин", Quantity: 10}},
					Fulfilled:       10,
					Cost:            decimal.NewFromInt(1000),
					Summary:         decimal.NewFromInt(1250),
					Priced:          true,
					Status:          entities.Delivered,
				},
				{CustomerName: "Клиент 7", Type: entities.Random, Status: entities.NoCourier},
			},
			Warehouse: entities.WarehouseSnapshot{SKUs: []entities.SKUSnapshot{{
				Medicine:         aspirin,
				Batches:          []entities.BatchSnapshot{{Count: 3, ShelfLifeDays: 39}},
				Pending:          &entities.PendingSnapshot{Count: 20, LeadTimeDays: 2},
				Count:            3,
				MinQuantity:      5,
				PurchaseQuantity: 20,
			}}},
		},
		{
			Day:     2,
			Revenue: decimal.Zero,
			Profit:  decimal.NewFromInt(-30),
			Losses:  decimal.NewFromInt(30),
		},
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(sampleStats(), Config{Format: "text", DetailDay: 1, Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Days: 2")
	assert.Contains(t, out, "Orders: 2")
	assert.Contains(t, out, "Revenue: 1250.00")
	assert.Contains(t, out, "Profit: 220.00")
	assert.Contains(t, out, "Losses: 30.00")
	assert.Contains(t, out, "Orders of day 1")
	assert.Contains(t, out, "Аспирин: 10")
	assert.Contains(t, out, "Warehouse at end of day 1")
	assert.Contains(t, out, "3: 39 d")
	assert.Contains(t, out, "20: 2 d")
}

func TestGenerate_TextRejectsDayOutsideHorizon(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(sampleStats(), Config{Format: "text", DetailDay: 3, Writer: &buf})
	assert.Error(t, err)
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleStats(), Config{Format: "csv", Writer: &buf}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "day,orders,revenue,profit,losses,margin,delivered,partially,nomedicines,nocourier", lines[0])
	assert.Equal(t, "1,2,1250.00,250.00,0.00,20.00,1,0,0,1", lines[1])
	assert.Equal(t, "2,0,0.00,-30.00,30.00,0.00,0,0,0,0", lines[2])
}

func TestGenerate_JSONToDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleStats(), Config{Format: "json", OutputDir: dir, Writer: &bytes.Buffer{}}))

	data, err := os.ReadFile(filepath.Join(dir, "statistics.json"))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "1250", decoded[0]["revenue"])

	orders := decoded[0]["orders"].([]any)
	first := orders[0].(map[string]any)
	assert.Equal(t, "Regular", first["type"])
	assert.Equal(t, "Delivered", first["status"])
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleStats(), Config{Format: "xml", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestGenerate_XLSX(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	err := Generate(sampleStats(), Config{Format: "xlsx", OutputDir: dir, Writer: &buf})
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "statistics.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Days", "Orders"}, f.GetSheetList())

	days, err := f.GetRows("Days")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"Day", "Orders", "Revenue", "Profit", "Losses", "Margin %", "Delivered", "Partially", "NoMedicines", "NoCourier"}, days[0])
	assert.Equal(t, []string{"1", "2", "1250", "250", "0", "20", "1", "0", "0", "1"}, days[1])

	orders, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "Иванов", orders[1][1])
	assert.Equal(t, "Аспирин: 10", orders[1][4])
	assert.Equal(t, "1250", orders[1][7])
	assert.Equal(t, "", orders[2][7])
}
