package orchestration

import (
	"errors"
	"strings"
	"testing"

	"github.com/vsinha/eventquote/pkg/application/services/pricing"
	testhelpers "github.com/vsinha/eventquote/pkg/application/services/testing"
	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/infrastructure/repositories/memory"
)

func setupOrchestrator(t *testing.T) *QuoteOrchestrator {
	t.Helper()
	repo := memory.NewZoneRepository(2)
	err := repo.LoadZones([]*entities.TransportZone{
		testhelpers.Zone("Z1", "30000", "6000"),
		testhelpers.Zone("Z2", "50000", "10000"),
	})
	if err != nil {
		t.Fatalf("Failed to load zones: %v", err)
	}
	return NewQuoteOrchestrator(pricing.NewEngine(), repo)
}

func TestQuoteOrchestrator_PriceQuote(t *testing.T) {
	orchestrator := setupOrchestrator(t)

	input := testhelpers.BuildSimpleQuote()
	input.TransportZones = []entities.TransportZoneAssignment{
		{ZoneID: "Z1", TransportCount: testhelpers.Dec("1")},
		{ZoneID: "Z2", TransportCount: testhelpers.Dec("1"), IncludeEquipment: true},
	}

	outcome, err := orchestrator.PriceQuote(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// both zones folded into the single product: 30000 + 60000
	if !outcome.Result.Transport.TotalCost.Equal(testhelpers.Dec("90000")) {
		t.Errorf("Expected transport 90000, got %s", outcome.Result.Transport.TotalCost)
	}
	if !outcome.Result.Products[0].TransportCost.Equal(testhelpers.Dec("90000")) {
		t.Errorf("Expected product to carry 90000, got %s", outcome.Result.Products[0].TransportCost)
	}
	if outcome.Input.TransportZones[0].Zone == nil {
		t.Error("Expected resolved zone on the outcome input")
	}
}

func TestQuoteOrchestrator_ResolveZonesDoesNotMutate(t *testing.T) {
	orchestrator := setupOrchestrator(t)

	input := testhelpers.BuildSimpleQuote()
	input.TransportZones = []entities.TransportZoneAssignment{{ZoneID: "Z1", TransportCount: testhelpers.Dec("1")}}

	resolved := orchestrator.ResolveZones(input)
	if resolved.TransportZones[0].Zone == nil {
		t.Fatal("Expected zone to be resolved")
	}
	if input.TransportZones[0].Zone != nil {
		t.Error("Expected original input to be left untouched")
	}
}

func TestQuoteOrchestrator_ZoneNotFound(t *testing.T) {
	orchestrator := setupOrchestrator(t)

	input := testhelpers.BuildSimpleQuote()
	input.TransportZones = []entities.TransportZoneAssignment{{ZoneID: "Z404", TransportCount: testhelpers.Dec("1")}}

	_, err := orchestrator.PriceQuote(input)

	var validationErr *pricing.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if !strings.Contains(strings.Join(validationErr.Errors, ";"), "Zone not found: Z404") {
		t.Errorf("Expected zone not found message, got %v", validationErr.Errors)
	}
	if !strings.Contains(err.Error(), "failed to price quote Q-001") {
		t.Errorf("Expected wrapped error, got %q", err.Error())
	}
}

func TestQuoteOrchestrator_NilInput(t *testing.T) {
	if _, err := setupOrchestrator(t).PriceQuote(nil); err == nil {
		t.Error("Expected error for nil input")
	}
}
