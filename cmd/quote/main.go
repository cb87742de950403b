package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/eventquote/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		quoteFile  = flag.String("quote", "", "Path to quote request JSON file")
		zonesFile  = flag.String("zones", "", "Path to transport zones CSV file")
		configFile = flag.String("config", "", "Path to pricing policy JSON file")
		outputDir  = flag.String("output", "", "Output directory for results (optional)")
		format     = flag.String("format", "text", "Output format: text, json, csv")
		logLevel   = flag.String("log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		QuoteFile:  *quoteFile,
		ZonesFile:  *zonesFile,
		ConfigFile: *configFile,
		OutputDir:  *outputDir,
		Format:     *format,
		LogLevel:   *logLevel,
		Verbose:    *verbose,
		Help:       *help,
	}

	// Create and execute command
	cmd := commands.NewQuoteCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
