package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/pharmsim/pkg/application/dto"
	"github.com/vsinha/pharmsim/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputDir   string
	Verbose     bool
	DetailDay   int
	ElapsedTime time.Duration
	Writer      io.Writer
}

// statusOrder fixes the column order of status counts
var statusOrder = []entities.OrderStatus{
	entities.Delivered,
	entities.Partially,
	entities.NoMedicines,
	entities.NoCourier,
}

// Generate writes the simulation statistics in the configured format
func Generate(stats []dto.DayStatistics, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(stats, config)
	case "json":
		return generateJSONOutput(stats, config)
	case "csv":
		return generateCSVOutput(stats, config)
	case "xlsx":
		return generateXLSXOutput(stats, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(stats []dto.DayStatistics, config Config) error {
	w := config.Writer
	totals := dto.Summarize(stats)

	fmt.Fprintf(w, "📊 Pharmacy Simulation Summary\n")
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "Days: %d\n", totals.Days)
	fmt.Fprintf(w, "Orders: %d\n", totals.Orders)
	for _, status := range statusOrder {
		fmt.Fprintf(w, "  %-12s %d\n", status.String()+":", totals.ByStatus[status])
	}
	fmt.Fprintf(w, "Revenue: %s\n", totals.Revenue.StringFixed(2))
	fmt.Fprintf(w, "Profit: %s\n", totals.Profit.StringFixed(2))
	fmt.Fprintf(w, "Losses: %s\n", totals.Losses.StringFixed(2))
	fmt.Fprintf(w, "Margin: %s%%\n", totals.Margin().StringFixed(2))
	if config.ElapsedTime > 0 {
		fmt.Fprintf(w, "Simulation Time: %v\n", config.ElapsedTime)
	}
	fmt.Fprintln(w)

	if len(stats) > 0 {
		fmt.Fprintf(w, "📅 Days:\n")
		fmt.Fprintf(w, "%-5s %-8s %-12s %-12s %-12s %-9s\n",
			"Day", "Orders", "Revenue", "Profit", "Losses", "Margin %")
		fmt.Fprintf(w, "%-5s %-8s %-12s %-12s %-12s %-9s\n",
			"-----", "--------", "------------", "------------", "------------", "---------")

		for _, day := range stats {
			fmt.Fprintf(w, "%-5d %-8d %-12s %-12s %-12s %-9s\n",
				day.Day,
				len(day.Orders),
				day.Revenue.StringFixed(2),
				day.Profit.StringFixed(2),
				day.Losses.StringFixed(2),
				day.Margin().StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	if config.DetailDay > 0 {
		if config.DetailDay > len(stats) {
			return fmt.Errorf("day %d is outside the simulated horizon of %d days", config.DetailDay, len(stats))
		}
		writeDayDetails(w, stats[config.DetailDay-1])
	}

	return nil
}

// writeDayDetails prints the orders and the end-of-day warehouse of one day
func writeDayDetails(w io.Writer, day dto.DayStatistics) {
	fmt.Fprintf(w, "🧾 Orders of day %d:\n", day.Day)
	fmt.Fprintf(w, "%-16s %-22s %-8s %-40s %-10s %-12s\n",
		"Customer", "Address", "Type", "Items", "Summary", "Status")
	fmt.Fprintf(w, "%-16s %-22s %-8s %-40s %-10s %-12s\n",
		"----------------", "----------------------", "--------",
		"----------------------------------------", "----------", "------------")

	for _, order := range day.Orders {
		summary := "-"
		if order.Priced {
			summary = order.Summary.StringFixed(2)
		}
		fmt.Fprintf(w, "%-16s %-22s %-8s %-40s %-10s %-12s\n",
			order.CustomerName,
			order.CustomerAddress,
			order.Type.String(),
			formatItems(order.Items),
			summary,
			order.Status.String())
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "📦 Warehouse at end of day %d:\n", day.Day)
	fmt.Fprintf(w, "%-20s %-8s %-30s %-12s %-6s %-8s\n",
		"Medicine", "Count", "Batches", "Pending", "Min", "Reorder")
	fmt.Fprintf(w, "%-20s %-8s %-30s %-12s %-6s %-8s\n",
		"--------------------", "--------", "------------------------------",
		"------------", "------", "--------")

	for _, sku := range day.Warehouse.SKUs {
		pending := ""
		if sku.Pending != nil {
			pending = fmt.Sprintf("%d: %d d", sku.Pending.Count, sku.Pending.LeadTimeDays)
		}
		fmt.Fprintf(w, "%-20s %-8d %-30s %-12s %-6d %-8d\n",
			sku.Medicine.Name,
			sku.Count,
			formatBatches(sku.Batches),
			pending,
			sku.MinQuantity,
			sku.PurchaseQuantity)
	}
	fmt.Fprintln(w)
}

func formatItems(items []dto.ItemView) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s: %d", item.Medicine, item.Quantity)
	}
	return strings.Join(parts, ", ")
}

func formatBatches(batches []entities.BatchSnapshot) string {
	parts := make([]string, len(batches))
	for i, b := range batches {
		parts[i] = fmt.Sprintf("%d: %d d", b.Count, b.ShelfLifeDays)
	}
	return strings.Join(parts, ", ")
}

// generateJSONOutput creates JSON output
func generateJSONOutput(stats []dto.DayStatistics, config Config) error {
	jsonData, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Writer, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "statistics.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one row per day
func generateCSVOutput(stats []dto.DayStatistics, config Config) error {
	w := config.Writer
	var file *os.File

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		var err error
		file, err = os.Create(filepath.Join(config.OutputDir, "days.csv"))
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := writeDaysCSV(w, stats); err != nil {
		return fmt.Errorf("failed to write days CSV: %w", err)
	}

	if file != nil && config.Verbose {
		fmt.Fprintf(config.Writer, "💾 CSV results saved to: %s\n", file.Name())
	}
	return nil
}

func writeDaysCSV(w io.Writer, stats []dto.DayStatistics) error {
	writer := csv.NewWriter(w)

	header := []string{"day", "orders", "revenue", "profit", "losses", "margin"}
	for _, status := range statusOrder {
		header = append(header, strings.ToLower(status.String()))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, day := range stats {
		counts := day.CountByStatus()
		record := []string{
			strconv.Itoa(day.Day),
			strconv.Itoa(len(day.Orders)),
			day.Revenue.StringFixed(2),
			day.Profit.StringFixed(2),
			day.Losses.StringFixed(2),
			day.Margin().StringFixed(2),
		}
		for _, status := range statusOrder {
			record = append(record, strconv.Itoa(counts[status]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
