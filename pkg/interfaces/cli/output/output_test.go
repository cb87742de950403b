package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/application/dto"
	"github.com/vsinha/eventquote/pkg/domain/entities"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "$0"},
		{decimal.NewFromInt(950), "$950"},
		{decimal.NewFromInt(12500), "$12.500"},
		{decimal.NewFromInt(1234567), "$1.234.567"},
		{decimal.NewFromInt(100000), "$100.000"},
		{decimal.NewFromInt(-64000), "-$64.000"},
		{decimal.NewFromFloat(1499.5), "$1.500"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatCOP(tt.amount); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func sampleResult() *dto.QuotePricingResult {
	return &dto.QuotePricingResult{
		QuoteID:    "Q-1",
		Title:      "Servicio de bebidas - Acme SAS - 2026-10-15",
		ClientType: entities.ClientCorporate,
		EventHours: decimal.NewFromInt(8),
		Lines: []dto.LineItem{
			{
				Category:    dto.CategoryEmployees,
				ReferenceID: "E1",
				Description: "Ana",
				Quantity:    decimal.NewFromInt(8),
				UnitPrice:   decimal.NewFromInt(8000),
				TotalCost:   decimal.NewFromInt(64000),
			},
			{
				Category:    dto.CategoryTransport,
				Description: dto.TransportLineDescription,
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(36000),
				TotalCost:   decimal.NewFromInt(36000),
			},
		},
		Subtotal:               decimal.NewFromInt(100000),
		MarginPercentage:       decimal.NewFromInt(30),
		MarginAmount:           decimal.NewFromInt(30000),
		TaxRetentionPercentage: decimal.NewFromInt(4),
		TaxRetentionAmount:     decimal.NewFromInt(4000),
		TotalCost:              decimal.NewFromInt(126000),
		PaymentTerms:           dto.PaymentTerms{Days: 30},
		Warnings:               []string{"measurement inferred for Frappe"},
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "text", Writer: &buf}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := buf.String()
	expected := []string{
		"Servicio de bebidas - Acme SAS",
		"$64.000",
		dto.TransportLineDescription,
		"$126.000",
		"-$4.000",
		"Payment Terms: 30 days",
		"measurement inferred for Frappe",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected text output to contain %q", want)
		}
	}
	if strings.Contains(out, "advance required") {
		t.Error("Expected no advance line when none is required")
	}
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "json", Writer: &buf}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var decoded dto.QuotePricingResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if !decoded.TotalCost.Equal(decimal.NewFromInt(126000)) {
		t.Errorf("Expected total 126000, got %s", decoded.TotalCost)
	}
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "csv", Writer: &buf}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV output: %v", err)
	}
	// header + 2 lines + 4 totals
	if len(records) != 7 {
		t.Fatalf("Expected 7 records, got %d", len(records))
	}
	if records[1][0] != "employees" || records[1][5] != "64000" {
		t.Errorf("Unexpected employee row: %v", records[1])
	}
	if last := records[len(records)-1]; last[0] != "total" || last[5] != "126000" {
		t.Errorf("Unexpected total row: %v", last)
	}
}

func TestGenerate_OutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := Generate(sampleResult(), Config{Format: "json", OutputDir: dir}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "quote_Q-1.json")); err != nil {
		t.Errorf("Expected quote file to be written: %v", err)
	}
}

func TestGenerate_OutputDirNoticeUsesWriter(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := Generate(sampleResult(), Config{Format: "csv", OutputDir: dir, Verbose: true, Writer: &buf}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := filepath.Join(dir, "quote_Q-1.csv")
	if !strings.Contains(buf.String(), "Quote saved to: "+want) {
		t.Errorf("Expected saved notice for %s on the writer, got %q", want, buf.String())
	}
	if strings.Contains(buf.String(), "subtotal") {
		t.Error("Expected the quote itself to go to the file, not the writer")
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleResult(), Config{Format: "pdf", Writer: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}
