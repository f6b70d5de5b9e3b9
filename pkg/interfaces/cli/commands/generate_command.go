package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/application/services/simulation"
	"github.com/vsinha/pharmsim/pkg/infrastructure/random"
)

var (
	catalogHeader  = []string{"name", "count", "dosage", "type", "expiration_days", "wholesale", "group", "purchase_quantity", "min_quantity"}
	customerHeader = []string{"name", "phone", "address", "discount_card", "regular_order", "regularity"}
)

// GenerateConfig holds configuration for seed data generation
type GenerateConfig struct {
	Medicines int    // Number of catalog rows to generate
	Regulars  int    // Number of regular customers to generate
	OutputDir string // Output directory for generated files
	Seed      uint64 // Random seed for reproducible generation
	Help      bool   // Show help
	Verbose   bool   // Verbose output
}

// GenerateCommand writes random medicines.csv and customers.csv seed files
type GenerateCommand struct {
	config GenerateConfig
	rng    *random.Source
	logger *zap.Logger
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, logger *zap.Logger) *GenerateCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateCommand{
		config: config,
		rng:    random.NewSource(config.Seed),
		logger: logger,
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if cmd.config.Medicines <= 0 {
		return fmt.Errorf("validation error: -medicines must be positive, got %d", cmd.config.Medicines)
	}
	if cmd.config.Regulars < 0 {
		return fmt.Errorf("validation error: -regulars cannot be negative, got %d", cmd.config.Regulars)
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("validation error: -output directory is required")
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating %d medicines and %d regular customers\n", cmd.config.Medicines, cmd.config.Regulars)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	catalog := simulation.GenerateCatalogRows(cmd.rng, cmd.config.Medicines)
	if err := cmd.writeRows("medicines.csv", catalogHeader, catalog); err != nil {
		return fmt.Errorf("failed to generate medicines: %w", err)
	}

	names := make([]string, len(catalog))
	for i, row := range catalog {
		names[i] = row[0]
	}
	customers := simulation.GenerateCustomerRows(cmd.rng, names, cmd.config.Regulars)
	if err := cmd.writeRows("customers.csv", customerHeader, customers); err != nil {
		return fmt.Errorf("failed to generate customers: %w", err)
	}

	cmd.logger.Info("seed data generated",
		zap.String("dir", cmd.config.OutputDir),
		zap.Int("medicines", len(catalog)),
		zap.Int("customers", len(customers)),
	)

	if cmd.config.Verbose {
		fmt.Printf("✅ Seed data generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) writeRows(name string, header []string, rows [][]string) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Sync()
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Println(`Pharmacy Seed Data Generator

USAGE:
    pharmsim generate [OPTIONS]

OPTIONS:
    -medicines <N>      Number of medicines to generate (required)
    -regulars <N>       Number of regular customers to generate (default: 0)
    -output <DIR>       Output directory for medicines.csv and customers.csv (required)
    -seed <N>           Random seed for reproducible generation (default: 1)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small catalog with a few regular customers
    pharmsim generate -medicines 20 -regulars 5 -output ./seed

    # Simulate it
    pharmsim -catalog ./seed/medicines.csv -customers ./seed/customers.csv`)
}
