package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/pharmsim/pkg/application/dto"
)

const (
	daysSheet   = "Days"
	ordersSheet = "Orders"
)

var ordersHeader = []string{"Day", "Customer", "Address", "Type", "Items", "Fulfilled", "Cost", "Summary", "Status"}

// generateXLSXOutput writes a workbook with one row per day and one row per order.
// Without an output directory the workbook is streamed to the writer.
func generateXLSXOutput(stats []dto.DayStatistics, config Config) error {
	f, err := buildWorkbook(stats)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	if config.OutputDir == "" {
		return f.Write(config.Writer)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "statistics.xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}

func buildWorkbook(stats []dto.DayStatistics) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", daysSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	daysHeader := []string{"Day", "Orders", "Revenue", "Profit", "Losses", "Margin %"}
	for _, status := range statusOrder {
		daysHeader = append(daysHeader, status.String())
	}
	if err := writeHeader(f, daysSheet, daysHeader, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, ordersSheet, ordersHeader, headerStyle); err != nil {
		return nil, err
	}

	orderRow := 2
	for i, day := range stats {
		counts := day.CountByStatus()
		values := []interface{}{
			day.Day,
			len(day.Orders),
			day.Revenue.InexactFloat64(),
			day.Profit.InexactFloat64(),
			day.Losses.InexactFloat64(),
			day.Margin().Round(2).InexactFloat64(),
		}
		for _, status := range statusOrder {
			values = append(values, counts[status])
		}
		if err := f.SetSheetRow(daysSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, err
		}

		for _, order := range day.Orders {
			items := make([]string, len(order.Items))
			for j, item := range order.Items {
				items[j] = fmt.Sprintf("%s: %d", item.Medicine, item.Quantity)
			}
			row := []interface{}{
				day.Day,
				order.CustomerName,
				order.CustomerAddress,
				order.Type.String(),
				strings.Join(items, ", "),
				int(order.Fulfilled),
				order.Cost.InexactFloat64(),
			}
			if order.Priced {
				row = append(row, order.Summary.InexactFloat64())
			} else {
				row = append(row, nil)
			}
			row = append(row, order.Status.String())
			if err := f.SetSheetRow(ordersSheet, fmt.Sprintf("A%d", orderRow), &row); err != nil {
				return nil, err
			}
			orderRow++
		}
	}

	colWidths := []float64{6, 18, 24, 10, 40, 10, 12, 12, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ordersSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
