package pricing

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/vsinha/eventquote/pkg/application/dto"
	testhelpers "github.com/vsinha/eventquote/pkg/application/services/testing"
	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// Scenario D
func TestEngine_Price_MarginAndRetention(t *testing.T) {
	engine := NewEngine()

	input := testhelpers.BuildSimpleQuote()
	input.Products[0] = entities.ProductAssignment{
		Product:  testhelpers.UnitProduct("P-1", "Montaje", "936000"),
		Quantity: dec("1"),
	}
	input.MarginPercentage = testhelpers.NullDec("30")
	input.EnableRetention = true

	result, err := engine.Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := map[string]struct{ got, want string }{
		"subtotal":  {result.Subtotal.String(), "1000000"},
		"margin":    {result.MarginAmount.String(), "300000"},
		"retention": {result.TaxRetentionAmount.String(), "52000"},
		"total":     {result.TotalCost.String(), "1248000"},
	}
	for name, v := range expected {
		if !dec(v.got).Equal(dec(v.want)) {
			t.Errorf("Expected %s %s, got %s", name, v.want, v.got)
		}
	}

	if !result.PaymentTerms.RequiresAdvance || !result.PaymentTerms.AdvancePercentage.Equal(dec("50")) {
		t.Errorf("Expected 50%% advance above the threshold, got %+v", result.PaymentTerms)
	}
	if result.PaymentTerms.Days != 30 {
		t.Errorf("Expected 30 day terms for corporate client, got %d", result.PaymentTerms.Days)
	}
}

func TestEngine_Price_Defaults(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name          string
		client        *entities.Client
		retention     bool
		storedPct     string
		wantMargin    string
		wantRetention string
		wantDays      int
	}{
		{"corporate default margin", testhelpers.CorporateClient(), false, "", "30", "0", 30},
		{"social default margin", testhelpers.SocialClient(), false, "", "25", "0", 15},
		{"retention at default rate", testhelpers.SocialClient(), true, "", "25", "4", 15},
		{"retention at custom rate", testhelpers.SocialClient(), true, "2.5", "25", "2.5", 15},
		{"disabled retention ignores stored rate", testhelpers.CorporateClient(), false, "11", "30", "0", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testhelpers.BuildSimpleQuote()
			input.Client = tt.client
			input.EnableRetention = tt.retention
			if tt.storedPct != "" {
				input.RetentionPercentage = testhelpers.NullDec(tt.storedPct)
			}

			result, err := engine.Price(input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !result.MarginPercentage.Equal(dec(tt.wantMargin)) {
				t.Errorf("Expected margin %s, got %s", tt.wantMargin, result.MarginPercentage)
			}
			if !result.TaxRetentionPercentage.Equal(dec(tt.wantRetention)) {
				t.Errorf("Expected retention %s, got %s", tt.wantRetention, result.TaxRetentionPercentage)
			}
			if !tt.retention && !result.TaxRetentionAmount.IsZero() {
				t.Errorf("Expected no retention amount, got %s", result.TaxRetentionAmount)
			}
			if result.PaymentTerms.Days != tt.wantDays {
				t.Errorf("Expected %d day terms, got %d", tt.wantDays, result.PaymentTerms.Days)
			}

			identity := result.Subtotal.Add(result.MarginAmount).Sub(result.TaxRetentionAmount)
			if !result.TotalCost.Equal(identity) {
				t.Errorf("Expected total %s to equal subtotal + margin - retention %s", result.TotalCost, identity)
			}
		})
	}
}

func TestEngine_Price_SimpleQuote(t *testing.T) {
	result, err := NewEngine().Price(testhelpers.BuildSimpleQuote())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 8h at 8000 + 2 x 50000
	if !result.Subtotal.Equal(dec("164000")) {
		t.Errorf("Expected subtotal 164000, got %s", result.Subtotal)
	}
	if !result.SubtotalFor(dto.CategoryEmployees).Equal(dec("64000")) {
		t.Errorf("Expected employee subtotal 64000, got %s", result.SubtotalFor(dto.CategoryEmployees))
	}
	if !result.SubtotalFor(dto.CategoryTransport).IsZero() {
		t.Errorf("Expected no transport, got %s", result.SubtotalFor(dto.CategoryTransport))
	}
	if len(result.Lines) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(result.Lines))
	}
	if !result.EventHours.Equal(dec("8")) {
		t.Errorf("Expected 8 event hours, got %s", result.EventHours)
	}
	if result.PaymentTerms.RequiresAdvance {
		t.Error("Expected no advance below the threshold")
	}
	if result.Title != "Servicio de bebidas - Acme SAS - 2026-10-15" {
		t.Errorf("Unexpected title %q", result.Title)
	}
}

func TestEngine_Price_NotReady(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		mutate func(input *entities.QuotePricingInput)
	}{
		{"missing client", func(input *entities.QuotePricingInput) { input.Client = nil }},
		{"missing start date", func(input *entities.QuotePricingInput) { input.Window.StartDate = "" }},
		{"missing times", func(input *entities.QuotePricingInput) { input.Window.EndTime = "" }},
		{"multi-day without schedules", func(input *entities.QuotePricingInput) { input.Window.EndDate = "2026-10-17" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testhelpers.BuildSimpleQuote()
			tt.mutate(input)

			if engine.IsReady(input) {
				t.Error("Expected IsReady to be false")
			}
			_, err := engine.Price(input)
			if !errors.Is(err, ErrNotReady) {
				t.Errorf("Expected ErrNotReady, got %v", err)
			}
		})
	}
}

func TestEngine_Price_ValidationError(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.Employees[0].Hours = dec("0")
	input.Products[0].Quantity = dec("-1")

	result, err := NewEngine().Price(input)
	if result != nil {
		t.Error("Expected no partial result")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(validationErr.Errors) != 2 {
		t.Errorf("Expected 2 validation errors, got %v", validationErr.Errors)
	}
}

func TestEngine_Price_TransportFoldedIntoProducts(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.Products = append(input.Products,
		entities.ProductAssignment{Product: testhelpers.UnitProduct("P-2", "Barra de jugos", "40000"), Quantity: dec("1")},
		// same product on a second line only gets transport once
		entities.ProductAssignment{Product: testhelpers.UnitProduct("P-2", "Barra de jugos", "40000"), Quantity: dec("1")},
	)
	input.TransportZones = []entities.TransportZoneAssignment{{
		ZoneID:               "Z1",
		Zone:                 testhelpers.Zone("Z1", "50000", "10000"),
		TransportCount:       dec("2"),
		IncludeEquipment:     true,
		UseFlexibleTransport: true,
	}}

	result, err := NewEngine().Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Products[0].TransportCost.Equal(dec("60000")) {
		t.Errorf("Expected P-1 to carry 60000, got %s", result.Products[0].TransportCost)
	}
	if !result.Products[1].TransportCost.Equal(dec("60000")) {
		t.Errorf("Expected first P-2 line to carry 60000, got %s", result.Products[1].TransportCost)
	}
	if !result.Products[2].TransportCost.IsZero() {
		t.Errorf("Expected second P-2 line to carry nothing, got %s", result.Products[2].TransportCost)
	}
	// 64000 staff + 100000 + 40000 + 40000 products + 120000 transport
	if !result.Subtotal.Equal(dec("364000")) {
		t.Errorf("Expected subtotal 364000, got %s", result.Subtotal)
	}
	if !result.SubtotalFor(dto.CategoryTransport).IsZero() {
		t.Errorf("Expected no separate transport line, got %s", result.SubtotalFor(dto.CategoryTransport))
	}
}

func TestEngine_Price_LegacyTransportLine(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.TransportZones = []entities.TransportZoneAssignment{{
		ZoneID:         "Z1",
		Zone:           testhelpers.Zone("Z1", "30000", "6000"),
		TransportCount: dec("1"),
	}}

	result, err := NewEngine().Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	last := result.Lines[len(result.Lines)-1]
	if last.Category != dto.CategoryTransport || last.Description != dto.TransportLineDescription {
		t.Errorf("Expected the transport line last, got %+v", last)
	}
	if !result.SubtotalFor(dto.CategoryTransport).Equal(dec("30000")) {
		t.Errorf("Expected transport subtotal 30000, got %s", result.SubtotalFor(dto.CategoryTransport))
	}
}

func TestEngine_Price_MultiDay(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.Window = testhelpers.MultiDayWindow(
		[2]string{"08:00", "20:00"},
		[2]string{"08:00", "20:00"},
		[2]string{"08:00", "09:00"},
	)
	input.Employees[0].Hours = dec("25")

	result, err := NewEngine().Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.MultiDay || !result.EventHours.Equal(dec("25")) {
		t.Errorf("Expected 25 multi-day hours, got %s (multi-day=%v)", result.EventHours, result.MultiDay)
	}
	// 12h at 6000 twice plus 1h at 10000
	if !result.Employees[0].TotalCost.Equal(dec("154000")) {
		t.Errorf("Expected employee cost 154000, got %s", result.Employees[0].TotalCost)
	}
	if !strings.HasSuffix(result.Title, "2026-10-15 al 2026-10-17") {
		t.Errorf("Expected date range in title, got %q", result.Title)
	}
}

func TestEngine_Price_Warnings(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.Products = append(input.Products, entities.ProductAssignment{
		Product:  testhelpers.MeasurementProduct("P-2", "Granizado de maracuyá", "Bebidas", "25", "ml"),
		Quantity: dec("40"),
	})
	input.Employees[0].AssociatedProductIDs = []string{"P-2"}

	result, err := NewEngine().Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// inferred measurement plus P-1 left without an associated employee
	if len(result.Warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "approximated as 420 ml") {
		t.Errorf("Unexpected inference warning %q", result.Warnings[0])
	}
	if !result.Products[1].TotalCost.Equal(dec("420000")) {
		t.Errorf("Expected 25 x 40 x 420 = 420000, got %s", result.Products[1].TotalCost)
	}
}

func TestEngine_MachineryDefaultsToEventHours(t *testing.T) {
	input := testhelpers.BuildSimpleQuote()
	input.Machinery = []entities.MachineryAssignment{{
		Machinery: &entities.Machinery{ID: "M1", Name: "Cafetera", HourlyRate: dec("5000"), DailyRate: dec("30000")},
	}}

	result, err := NewEngine().Price(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Machinery[0].Hours.Equal(dec("8")) || !result.Machinery[0].UsesDailyRate {
		t.Errorf("Expected 8 event hours at the daily rate, got %+v", result.Machinery[0])
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Price(testhelpers.BuildSimpleQuote()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewEngineWithPolicy_Invalid(t *testing.T) {
	policy := DefaultPolicy()
	policy.MinimumHours = dec("0")

	if _, err := NewEngineWithPolicy(policy); err == nil {
		t.Error("Expected error for non-positive minimum hours")
	}
}
