package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/op/go-logging"

	"github.com/vsinha/eventquote/pkg/application/services/orchestration"
	"github.com/vsinha/eventquote/pkg/application/services/pricing"
	"github.com/vsinha/eventquote/pkg/infrastructure/config"
	quotelog "github.com/vsinha/eventquote/pkg/infrastructure/logging"
	"github.com/vsinha/eventquote/pkg/infrastructure/quotefile"
	"github.com/vsinha/eventquote/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/eventquote/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/eventquote/pkg/interfaces/cli/output"
)

var log = logging.MustGetLogger("quote")

// Config holds configuration for the quote command
type Config struct {
	QuoteFile  string
	ZonesFile  string
	ConfigFile string
	OutputDir  string
	Format     string
	LogLevel   string
	Verbose    bool
	Help       bool
	// Writer receives the rendered quote and validation errors, os.Stdout when nil
	Writer io.Writer
}

// QuoteCommand prices a quote request from the command line
type QuoteCommand struct {
	config Config
}

// NewQuoteCommand creates a new quote command with the given configuration
func NewQuoteCommand(config Config) *QuoteCommand {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	return &QuoteCommand{
		config: config,
	}
}

// Execute runs the quote command
func (c *QuoteCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	// Validate inputs
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := cfg.LogLevel
	if c.config.LogLevel != "" {
		logLevel = c.config.LogLevel
	}
	if err := quotelog.InitLoggerWithWriter(os.Stderr, logLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	engine, err := pricing.NewEngineWithPolicy(cfg.Policy)
	if err != nil {
		return fmt.Errorf("failed to create pricing engine: %w", err)
	}

	// Load zone catalog
	zoneRepo := memory.NewZoneRepository(0)
	if c.config.ZonesFile != "" {
		zones, err := csv.NewLoader().LoadZones(c.config.ZonesFile)
		if err != nil {
			return fmt.Errorf("error loading zones: %w", err)
		}
		if err := zoneRepo.LoadZones(zones); err != nil {
			return fmt.Errorf("failed to load zones into repository: %w", err)
		}
		log.Infof("Loaded %d transport zones from %s", zoneRepo.Count(), c.config.ZonesFile)
	}

	input, err := quotefile.NewLoader().LoadQuote(c.config.QuoteFile)
	if err != nil {
		return fmt.Errorf("error loading quote: %w", err)
	}
	log.Infof("Loaded quote %s: %d employees, %d products, %d transport zones",
		input.ID, len(input.Employees), len(input.Products), len(input.TransportZones))

	if err := ctx.Err(); err != nil {
		return err
	}

	orchestrator := orchestration.NewQuoteOrchestrator(engine, zoneRepo)

	startTime := time.Now()
	outcome, err := orchestrator.PriceQuote(input)
	priceTime := time.Since(startTime)

	if err != nil {
		var validationErr *pricing.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(c.config.Writer, "❌ Quote %s is invalid:\n", input.ID)
			for _, message := range validationErr.Errors {
				fmt.Fprintf(c.config.Writer, "  - %s\n", message)
			}
		}
		return fmt.Errorf("error pricing quote: %w", err)
	}
	log.Infof("Priced quote %s in %v: total %s", input.ID, priceTime, outcome.Result.TotalCost)

	// Generate output
	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		PriceTime: priceTime,
		Writer:    c.config.Writer,
	}

	if err := output.Generate(outcome.Result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *QuoteCommand) validateInputs() error {
	if c.config.QuoteFile == "" {
		return fmt.Errorf("must specify a -quote file")
	}

	files := map[string]string{
		"Quote":  c.config.QuoteFile,
		"Zones":  c.config.ZonesFile,
		"Config": c.config.ConfigFile,
	}
	for name, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return nil
}

// showHelp displays the help message
func (c *QuoteCommand) showHelp() {
	fmt.Fprintf(c.config.Writer, `Event Quote CLI - Pricing engine for event service quotes

USAGE:
    quote -quote <file> [-zones <file>] [-config <file>]

OPTIONS:
    -quote <file>       Path to the quote request JSON file
    -zones <file>       Path to the transport zones CSV file (optional)
    -config <file>      Path to the pricing policy JSON file (optional)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -log-level <level>  Log level: DEBUG, INFO, WARNING, ERROR
    -verbose            Include pricing time and transport detail
    -help               Show this help message

ENVIRONMENT:
    QUOTE_LOG_LEVEL, QUOTE_RETENTION_PERCENTAGE, QUOTE_ADVANCE_THRESHOLD and
    the other policy keys override the config file. A .env file in the
    working directory is read first.

ZONES CSV FORMAT:
    id,name,base_cost,additional_equipment_cost,estimated_travel_time_minutes
    Z1,Centro,30000,6000,20

EXAMPLES:
    quote -quote quotes/boda.json -zones data/zones.csv
    quote -quote quotes/boda.json -format json -output results/
`)
}
