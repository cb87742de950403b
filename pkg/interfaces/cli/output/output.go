package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/eventquote/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	PriceTime time.Duration
	// Writer receives the output when OutputDir is empty, os.Stdout when nil
	Writer io.Writer
}

// Generate renders the quote in the configured format and writes it to the
// configured writer or to a file under OutputDir
func Generate(result *dto.QuotePricingResult, config Config) error {
	var buf bytes.Buffer
	var ext string

	switch config.Format {
	case "text", "":
		writeText(&buf, result, config)
		ext = "txt"
	case "json":
		if err := writeJSON(&buf, result); err != nil {
			return err
		}
		ext = "json"
	case "csv":
		if err := writeCSV(&buf, result); err != nil {
			return err
		}
		ext = "csv"
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	w := config.Writer
	if w == nil {
		w = os.Stdout
	}

	if config.OutputDir == "" {
		_, err := buf.WriteTo(w)
		return err
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, fmt.Sprintf("quote_%s.%s", result.QuoteID, ext))
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", config.Format, err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 Quote saved to: %s\n", filename)
	}
	return nil
}

// writeText creates the human-readable quote
func writeText(w io.Writer, result *dto.QuotePricingResult, config Config) {
	fmt.Fprintf(w, "🧾 %s\n", result.Title)
	fmt.Fprintf(w, "======================\n\n")

	fmt.Fprintf(w, "Quote: %s\n", result.QuoteID)
	fmt.Fprintf(w, "Client Type: %s\n", result.ClientType)
	fmt.Fprintf(w, "Event Hours: %s", FormatHours(result.EventHours))
	if result.MultiDay {
		fmt.Fprintf(w, " (multi-day)")
	}
	fmt.Fprintln(w)
	if config.Verbose {
		fmt.Fprintf(w, "Pricing Time: %v\n", config.PriceTime)
	}
	fmt.Fprintln(w)

	if len(result.Lines) > 0 {
		fmt.Fprintf(w, "📋 Line Items:\n")
		fmt.Fprintf(w, "%-18s %-30s %-10s %-14s %-14s\n",
			"Category", "Description", "Qty", "Unit Price", "Total")
		fmt.Fprintf(w, "%-18s %-30s %-10s %-14s %-14s\n",
			"------------------", "------------------------------", "----------", "--------------", "--------------")

		for _, line := range result.Lines {
			fmt.Fprintf(w, "%-18s %-30s %-10s %-14s %-14s\n",
				line.Category,
				truncate(line.Description, 30),
				line.Quantity.String(),
				FormatCOP(line.UnitPrice),
				FormatCOP(line.TotalCost))
		}
		fmt.Fprintln(w)
	}

	if config.Verbose && len(result.Transport.Zones) > 0 {
		fmt.Fprintf(w, "🚚 Transport:\n")
		for _, zone := range result.Transport.Zones {
			fmt.Fprintf(w, "  %s x%s (%s): %s\n",
				zone.Name, zone.TransportCount.String(), zone.Mode, FormatCOP(zone.ZoneTotal))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "💰 Totals:\n")
	fmt.Fprintf(w, "  %-24s %s\n", "Subtotal:", FormatCOP(result.Subtotal))
	fmt.Fprintf(w, "  %-24s %s\n", fmt.Sprintf("Margin (%s%%):", result.MarginPercentage.String()), FormatCOP(result.MarginAmount))
	if result.TaxRetentionAmount.IsPositive() {
		fmt.Fprintf(w, "  %-24s -%s\n", fmt.Sprintf("Retention (%s%%):", result.TaxRetentionPercentage.String()), FormatCOP(result.TaxRetentionAmount))
	}
	fmt.Fprintf(w, "  %-24s %s\n\n", "Total:", FormatCOP(result.TotalCost))

	fmt.Fprintf(w, "Payment Terms: %d days", result.PaymentTerms.Days)
	if result.PaymentTerms.RequiresAdvance {
		fmt.Fprintf(w, ", %s%% advance required", result.PaymentTerms.AdvancePercentage.String())
	}
	fmt.Fprintln(w)

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\n⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

// writeJSON creates the JSON quote
func writeJSON(w io.Writer, result *dto.QuotePricingResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = w.Write(append(jsonData, '\n'))
	return err
}

// writeCSV creates one CSV row per line item followed by the totals
func writeCSV(w io.Writer, result *dto.QuotePricingResult) error {
	writer := csv.NewWriter(w)

	rows := [][]string{{"category", "reference_id", "description", "quantity", "unit_price", "total_cost"}}
	for _, line := range result.Lines {
		rows = append(rows, []string{
			string(line.Category),
			line.ReferenceID,
			line.Description,
			line.Quantity.String(),
			line.UnitPrice.String(),
			line.TotalCost.String(),
		})
	}
	rows = append(rows,
		[]string{"subtotal", "", "", "", "", result.Subtotal.String()},
		[]string{"margin", "", "", result.MarginPercentage.String(), "", result.MarginAmount.String()},
		[]string{"retention", "", "", result.TaxRetentionPercentage.String(), "", result.TaxRetentionAmount.String()},
		[]string{"total", "", "", "", "", result.TotalCost.String()},
	)

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
