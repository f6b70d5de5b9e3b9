package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/pharmsim/pkg/domain/entities"
	"github.com/vsinha/pharmsim/pkg/infrastructure/repositories/memory"
)

const (
	catalogColumns  = 9
	customerColumns = 6
)

var (
	catalogHeaders = [][]string{
		{"название", "количество", "дозировка", "тип", "срок годности", "оптовая цена", "группа", "закупочное количество", "минимальное количество"},
		{"name", "count", "dosage", "type", "expiration_days", "wholesale", "group", "purchase_quantity", "min_quantity"},
	}
	customerHeaders = [][]string{
		{"имя", "телефон", "адрес", "дисконтная карта", "регулярные заказы", "периодичность"},
		{"name", "phone", "address", "discount_card", "regular_order", "regularity"},
	}
)

// Loader reads catalog and customer seed rows from CSV files. Files have no
// header; a first row matching a known header is skipped.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadCatalogRows reads raw catalog rows from a CSV file
func (l *Loader) LoadCatalogRows(filename string) ([][]string, error) {
	return l.loadRows(filename, "catalog", catalogColumns, catalogHeaders)
}

// LoadCustomerRows reads raw customer rows from a CSV file
func (l *Loader) LoadCustomerRows(filename string) ([][]string, error) {
	return l.loadRows(filename, "customers", customerColumns, customerHeaders)
}

func (l *Loader) loadRows(filename, kind string, columns int, headers [][]string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) > 0 && matchesAnyHeader(records[0], headers) {
		records = records[1:]
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ParseCatalog converts catalog rows into warehouse stock entries. Columns:
// name, initial count, dosage, type, expiration days, wholesale price, group,
// purchase quantity, min quantity.
func ParseCatalog(rows [][]string) ([]memory.StockEntry, error) {
	entries := make([]memory.StockEntry, 0, len(rows))
	names := make(map[string]bool, len(rows))

	for i, record := range rows {
		if len(record) != catalogColumns {
			return nil, fmt.Errorf("%w: catalog row %d: expected %d columns, got %d",
				entities.ErrConfiguration, i+1, catalogColumns, len(record))
		}

		entry, err := parseStockEntry(trimAll(record))
		if err != nil {
			return nil, fmt.Errorf("%w: catalog row %d: %v", entities.ErrConfiguration, i+1, err)
		}
		if names[entry.Medicine.Name] {
			return nil, fmt.Errorf("%w: catalog row %d: duplicate medicine %s",
				entities.ErrConfiguration, i+1, entry.Medicine.Name)
		}
		names[entry.Medicine.Name] = true

		entries = append(entries, entry)
	}

	return entries, nil
}

// ParseCustomers converts customer rows into customers. Columns: name, phone,
// address, discount card ("Да"/"Нет"), regular order ("name:qty, name:qty"),
// regularity in days. Medicines are resolved by name against the catalog.
func ParseCustomers(rows [][]string, catalog []entities.Medicine) ([]*entities.Customer, error) {
	byName := make(map[string]entities.Medicine, len(catalog))
	for _, m := range catalog {
		byName[m.Name] = m
	}

	customers := make([]*entities.Customer, 0, len(rows))
	for i, record := range rows {
		if len(record) != customerColumns {
			return nil, fmt.Errorf("%w: customer row %d: expected %d columns, got %d",
				entities.ErrConfiguration, i+1, customerColumns, len(record))
		}

		customer, err := parseCustomer(trimAll(record), byName)
		if err != nil {
			return nil, fmt.Errorf("customer row %d: %w", i+1, err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

// Helper functions for parsing CSV records

func matchesAnyHeader(record []string, headers [][]string) bool {
	for _, h := range headers {
		if validateHeader(record, h) {
			return true
		}
	}
	return false
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.TrimSpace(field)
	}
	return out
}

func parseStockEntry(record []string) (memory.StockEntry, error) {
	name := record[0]

	count, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return memory.StockEntry{}, fmt.Errorf("invalid count: %s", record[1])
	}
	if count < 0 {
		return memory.StockEntry{}, fmt.Errorf("count cannot be negative, got %d", count)
	}

	dosage, err := strconv.Atoi(record[2])
	if err != nil {
		return memory.StockEntry{}, fmt.Errorf("invalid dosage: %s", record[2])
	}

	medicineType, err := entities.ParseMedicineType(record[3])
	if err != nil {
		return memory.StockEntry{}, err
	}

	expirationDays, err := strconv.Atoi(record[4])
	if err != nil {
		return memory.StockEntry{}, fmt.Errorf("invalid expiration days: %s", record[4])
	}

	wholesale, err := strconv.ParseFloat(strings.Replace(record[5], ",", ".", 1), 64)
	if err != nil || !entities.IsFiniteNumber(wholesale) {
		return memory.StockEntry{}, fmt.Errorf("invalid wholesale price: %s", record[5])
	}

	group, err := entities.ParseMedicineGroup(record[6])
	if err != nil {
		return memory.StockEntry{}, err
	}

	purchaseQty, err := strconv.ParseInt(record[7], 10, 64)
	if err != nil {
		return memory.StockEntry{}, fmt.Errorf("invalid purchase quantity: %s", record[7])
	}

	minQty, err := strconv.ParseInt(record[8], 10, 64)
	if err != nil {
		return memory.StockEntry{}, fmt.Errorf("invalid min quantity: %s", record[8])
	}

	medicine, err := entities.NewMedicine(
		name,
		dosage,
		medicineType,
		group,
		wholesale,
		expirationDays,
		entities.Quantity(purchaseQty),
		entities.Quantity(minQty),
	)
	if err != nil {
		return memory.StockEntry{}, err
	}

	return memory.StockEntry{Medicine: *medicine, Count: entities.Quantity(count)}, nil
}

func parseCustomer(record []string, catalog map[string]entities.Medicine) (*entities.Customer, error) {
	discountCard, err := parseDiscountCard(record[3])
	if err != nil {
		return nil, err
	}

	items, err := ParseRegularOrder(record[4], catalog)
	if err != nil {
		return nil, err
	}

	regularity := 0
	if record[5] != "" {
		regularity, err = strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid regularity: %s", entities.ErrConfiguration, record[5])
		}
	}

	return entities.NewCustomer(record[0], record[1], record[2], discountCard, items, regularity)
}

func parseDiscountCard(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "да", "yes", "true", "1":
		return true, nil
	case "нет", "no", "false", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid discount card flag: %s (expected Да or Нет)", entities.ErrConfiguration, s)
	}
}

// ParseRegularOrder parses a "name:qty, name:qty" template. A medicine named
// twice keeps its first position and its last quantity.
func ParseRegularOrder(s string, catalog map[string]entities.Medicine) ([]entities.OrderLine, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var lines []entities.OrderLine
	position := make(map[string]int)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		sep := strings.LastIndex(part, ":")
		if sep < 0 {
			return nil, fmt.Errorf("%w: invalid regular order item %q (expected name:qty)", entities.ErrConfiguration, part)
		}
		name := strings.TrimSpace(part[:sep])
		qty, err := strconv.ParseInt(strings.TrimSpace(part[sep+1:]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid quantity in regular order item %q", entities.ErrConfiguration, part)
		}

		medicine, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("%w: regular order references %w %q", entities.ErrConfiguration, entities.ErrUnknownMedicine, name)
		}

		if idx, seen := position[name]; seen {
			lines[idx].Quantity = entities.Quantity(qty)
			continue
		}
		position[name] = len(lines)
		lines = append(lines, entities.OrderLine{Medicine: medicine, Quantity: entities.Quantity(qty)})
	}

	return lines, nil
}
