package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vsinha/pharmsim/pkg/interfaces/cli/commands"
)

func main() {
	// PHARMSIM_* parameters may also come from a .env file in the working directory
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var err error
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		err = runGenerate(ctx, os.Args[2:])
	} else {
		err = runSimulate(ctx, os.Args[1:])
	}
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSimulate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("pharmsim", flag.ExitOnError)

	// Command line flags
	var (
		configFile    = flags.String("config", "", "Path to simulation parameters file (yaml, json, toml)")
		catalogFile   = flags.String("catalog", "", "Path to medicines CSV file")
		customersFile = flags.String("customers", "", "Path to regular customers CSV file")
		medicines     = flags.Int("medicines", 0, "Generate this many random medicines instead of -catalog")
		regulars      = flags.Int("regulars", 0, "Generate this many random regular customers instead of -customers")
		outputDir     = flags.String("output", "", "Output directory for results (optional)")
		format        = flags.String("format", "text", "Output format: text, json, csv, xlsx")
		detailDay     = flags.Int("day", 0, "Print orders and warehouse of this day")
		showMetrics   = flags.Bool("metrics", false, "Print prometheus metrics after the run")
		showEvents    = flags.Bool("events", false, "Write the order and day event journal")
		customer      = flags.String("customer", "", "With -events, write only this customer's order history")
		dump          = flags.Bool("dump", false, "Dump the raw statistics of the last day")
		verbose       = flags.Bool("verbose", false, "Enable verbose output")
		help          = flags.Bool("help", false, "Show help message")
	)

	flags.Parse(args)

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	config := commands.Config{
		ConfigFile:    *configFile,
		CatalogFile:   *catalogFile,
		CustomersFile: *customersFile,
		Medicines:     *medicines,
		Regulars:      *regulars,
		OutputDir:     *outputDir,
		Format:        *format,
		DetailDay:     *detailDay,
		Metrics:       *showMetrics,
		Events:        *showEvents,
		Customer:      *customer,
		Dump:          *dump,
		Verbose:       *verbose,
		Help:          *help,
	}

	cmd := commands.NewSimulateCommand(config, logger)
	if err := cmd.Execute(ctx); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return err
	}
	return nil
}

func runGenerate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("pharmsim generate", flag.ExitOnError)

	var (
		medicines = flags.Int("medicines", 0, "Number of medicines to generate")
		regulars  = flags.Int("regulars", 0, "Number of regular customers to generate")
		outputDir = flags.String("output", "", "Output directory for generated files")
		seed      = flags.Uint64("seed", 1, "Random seed for reproducible generation")
		verbose   = flags.Bool("verbose", false, "Enable verbose output")
		help      = flags.Bool("help", false, "Show help message")
	)

	flags.Parse(args)

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Medicines: *medicines,
		Regulars:  *regulars,
		OutputDir: *outputDir,
		Seed:      *seed,
		Help:      *help,
		Verbose:   *verbose,
	}, logger)
	return cmd.Execute(ctx)
}

// newLogger logs day-level diagnostics to stderr in verbose mode and only
// warnings otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
