package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/application/services/simulation"
	"github.com/vsinha/pharmsim/pkg/infrastructure/events"
	"github.com/vsinha/pharmsim/pkg/infrastructure/metrics"
	"github.com/vsinha/pharmsim/pkg/infrastructure/random"
	"github.com/vsinha/pharmsim/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/pharmsim/pkg/interfaces/cli/config"
	"github.com/vsinha/pharmsim/pkg/interfaces/cli/output"
)

// Config holds configuration for the simulate command
type Config struct {
	ConfigFile    string
	CatalogFile   string
	CustomersFile string
	Medicines     int
	Regulars      int
	OutputDir     string
	Format        string
	DetailDay     int
	Metrics       bool
	Events        bool
	Customer      string
	Dump          bool
	Verbose       bool
	Help          bool
}

// SimulateCommand loads seed data, runs the simulation and reports the results
type SimulateCommand struct {
	config Config
	logger *zap.Logger
}

// NewSimulateCommand creates a new simulate command with the given configuration
func NewSimulateCommand(config Config, logger *zap.Logger) *SimulateCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulateCommand{
		config: config,
		logger: logger,
	}
}

// Execute runs the simulate command
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	params, err := config.LoadParams(c.config.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading parameters: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(params)
	}

	catalogRows, customerRows, err := c.loadSeedRows(params.Seed)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("✅ Seed data loaded:\n")
		fmt.Printf("  Medicines: %d\n", len(catalogRows))
		fmt.Printf("  Regular customers: %d\n", len(customerRows))
		fmt.Println()
	}

	registry := metrics.NewRegistry()
	journal := events.NewJournal(events.NewInMemoryEventStore(), c.logger)
	sim, err := simulation.NewSimulation(
		params,
		catalogRows,
		customerRows,
		simulation.WithLogger(c.logger),
		simulation.WithRecorder(registry),
		simulation.WithRecorder(journal),
	)
	if err != nil {
		return fmt.Errorf("error creating simulation: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("🔄 Simulating %d days...\n", params.Days)
	}

	startTime := time.Now()
	stats, err := sim.Run(ctx)
	elapsed := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error running simulation: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Simulation completed in %v\n\n", elapsed)
	}

	outputConfig := output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		DetailDay:   c.config.DetailDay,
		ElapsedTime: elapsed,
		Writer:      os.Stdout,
	}
	if err := output.Generate(stats, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Metrics {
		if err := registry.WriteText(os.Stdout); err != nil {
			return fmt.Errorf("error writing metrics: %w", err)
		}
	}

	if c.config.Events {
		if err := c.writeJournal(journal); err != nil {
			return fmt.Errorf("error writing events: %w", err)
		}
	}

	if c.config.Dump && len(stats) > 0 {
		spew.Fdump(os.Stdout, stats[len(stats)-1])
	}

	return nil
}

// writeJournal writes the event journal, or one customer's order history when
// -customer is set, to events.jsonl in the output directory or to stdout
func (c *SimulateCommand) writeJournal(journal *events.Journal) error {
	write := journal.WriteJSONLines
	if c.config.Customer != "" {
		write = func(w io.Writer) error {
			return journal.WriteCustomerHistory(w, c.config.Customer)
		}
	}

	if c.config.OutputDir == "" {
		return write(os.Stdout)
	}

	if err := os.MkdirAll(c.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(c.config.OutputDir, "events.jsonl")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := write(file); err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Printf("💾 Events saved to: %s\n", filename)
	}
	return nil
}

// validateInputs validates the command configuration
func (c *SimulateCommand) validateInputs() error {
	if c.config.CatalogFile == "" && c.config.Medicines <= 0 {
		return fmt.Errorf("must specify either -catalog file or -medicines count")
	}
	if c.config.CustomersFile != "" && c.config.Regulars > 0 {
		return fmt.Errorf("-customers and -regulars are mutually exclusive")
	}
	if c.config.Customer != "" && !c.config.Events {
		return fmt.Errorf("-customer requires -events")
	}
	if c.config.DetailDay < 0 {
		return fmt.Errorf("-day must not be negative, got %d", c.config.DetailDay)
	}
	return nil
}

// loadSeedRows reads catalog and customer rows from files, or generates them.
// Generated rows use their own source so that the run itself stays a pure
// function of the seed and the rows.
func (c *SimulateCommand) loadSeedRows(seed uint64) ([][]string, [][]string, error) {
	loader := csv.NewLoader()
	seedSource := random.NewSource(seed ^ 0x5eed)

	var catalogRows [][]string
	if c.config.CatalogFile != "" {
		rows, err := loader.LoadCatalogRows(c.config.CatalogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading catalog: %w", err)
		}
		catalogRows = rows
	} else {
		catalogRows = simulation.GenerateCatalogRows(seedSource, c.config.Medicines)
	}

	var customerRows [][]string
	switch {
	case c.config.CustomersFile != "":
		rows, err := loader.LoadCustomerRows(c.config.CustomersFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading customers: %w", err)
		}
		customerRows = rows
	case c.config.Regulars > 0:
		names := make([]string, 0, len(catalogRows))
		for _, row := range catalogRows {
			if len(row) > 0 {
				names = append(names, row[0])
			}
		}
		customerRows = simulation.GenerateCustomerRows(seedSource, names, c.config.Regulars)
	}

	return catalogRows, customerRows, nil
}

// printHeader prints the command header information
func (c *SimulateCommand) printHeader(params simulation.Params) {
	fmt.Printf("🚀 Pharmacy Simulator CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Catalog: %s\n", orGenerated(c.config.CatalogFile))
	fmt.Printf("  Customers: %s\n", orGenerated(c.config.CustomersFile))
	fmt.Printf("Parameters:\n")
	fmt.Printf("  Days: %d\n", params.Days)
	fmt.Printf("  Couriers: %d\n", params.Couriers)
	fmt.Printf("  Retail margin: %v\n", params.RetailMargin)
	fmt.Printf("  Card discount: %v\n", params.CardDiscount)
	fmt.Printf("  Base orders: %d\n", params.BaseOrders)
	fmt.Printf("  Sensitivity: %v\n", params.Sensitivity)
	fmt.Printf("  Order intensity: %.3f\n", params.OrderIntensity())
	fmt.Printf("  Seed: %d\n", params.Seed)
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

func orGenerated(path string) string {
	if path == "" {
		return "(generated)"
	}
	return path
}

// showHelp displays the help message
func (c *SimulateCommand) showHelp() {
	fmt.Printf(`Pharmacy Simulator CLI - daily operations of a pharmacy with expiring stock

USAGE:
    pharmsim -catalog <file> [-customers <file>]    # Use seed CSV files
    pharmsim -medicines <n> [-regulars <n>]         # Use generated seed data
    pharmsim generate -medicines <n> -output <dir>  # Write seed CSV files

OPTIONS:
    -config <file>      Simulation parameters (yaml, json or toml)
    -catalog <file>     Path to medicines CSV file
    -customers <file>   Path to regular customers CSV file
    -medicines <n>      Generate n random medicines instead of -catalog
    -regulars <n>       Generate n random regular customers instead of -customers
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv, xlsx (default: text)
    -day <n>            Print orders and warehouse of day n (text format)
    -metrics            Print prometheus metrics after the run
    -events             Write the order and day event journal (JSON lines)
    -customer <name>    With -events, write only this customer's order history
    -dump               Dump the raw statistics of the last day
    -verbose            Enable verbose output
    -help               Show this help message

PARAMETERS (config file keys, or PHARMSIM_<KEY> environment variables):
    days, couriers, retail_margin, card_discount, base_orders, sensitivity,
    seed, max_orders_per_courier

CSV FILE FORMATS (no header required):

medicines.csv:
    name,count,dosage,type,expiration_days,wholesale,group,purchase_quantity,min_quantity
    Амоксициллин,120,500,Таблетки,90,45.50,Антибиотики,50,10

customers.csv:
    name,phone,address,discount_card,regular_order,regularity
    Иванов,+79001234567,"ул. Ленина, 5",Да,"Амоксициллин:2, Нурофен:1",7

EXAMPLES:
    # Run with seed files
    pharmsim -catalog data/medicines.csv -customers data/customers.csv -verbose

    # Run generated data and inspect day 10
    pharmsim -medicines 20 -regulars 5 -day 10

    # Override parameters from the environment
    PHARMSIM_DAYS=30 PHARMSIM_RETAIL_MARGIN=0.4 pharmsim -medicines 20 -format csv
`)
}
