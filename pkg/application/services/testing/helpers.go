package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// Dec parses a decimal literal - panics on malformed input
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// NullDec returns a valid NullDecimal for the literal
func NullDec(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(Dec(value))
}

// mustTieredRates is a helper for tests - panics on validation error
func mustTieredRates(tiers []entities.RateTier) entities.RateTable {
	table, err := entities.NewTieredRateTable(tiers)
	if err != nil {
		panic(err)
	}
	return table
}

// StandardRates returns the 0-4h 10000, 4-8h 8000, 8h+ 6000 tier table
func StandardRates() entities.RateTable {
	return mustTieredRates([]entities.RateTier{
		{MinHours: Dec("0"), MaxHours: NullDec("4"), Rate: Dec("10000")},
		{MinHours: Dec("4"), MaxHours: NullDec("8"), Rate: Dec("8000")},
		{MinHours: Dec("8"), Rate: Dec("6000")},
	})
}

// LegacyRates returns a legacy bucket table with the same values as StandardRates
func LegacyRates() entities.RateTable {
	table, err := entities.NewLegacyRateTable(entities.LegacyBuckets{
		UpTo4: Dec("10000"),
		UpTo8: Dec("8000"),
		Over8: Dec("6000"),
	})
	if err != nil {
		panic(err)
	}
	return table
}

// NewEmployee returns an employee on the standard tier table
func NewEmployee(id, name string) *entities.Employee {
	return &entities.Employee{ID: id, Name: name, Type: "operario", Rates: StandardRates()}
}

// CorporateClient returns a corporativo client
func CorporateClient() *entities.Client {
	return &entities.Client{ID: "CLI-001", Name: "Acme SAS", Type: entities.ClientCorporate}
}

// SocialClient returns a social client
func SocialClient() *entities.Client {
	return &entities.Client{ID: "CLI-002", Name: "Familia Pérez", Type: entities.ClientSocial}
}

// SingleDayWindow returns a one-day window between the given times
func SingleDayWindow(startTime, endTime string) entities.EventWindow {
	return entities.EventWindow{
		StartDate: "2026-10-15",
		EndDate:   "2026-10-15",
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// MultiDayWindow returns a window starting 2026-10-15 with one schedule per
// pair of times
func MultiDayWindow(times ...[2]string) entities.EventWindow {
	start, _ := entities.ParseDate("2026-10-15")
	window := entities.EventWindow{StartDate: "2026-10-15"}
	for i, t := range times {
		date := start.AddDate(0, 0, i).Format(entities.DateLayout)
		window.DailySchedules = append(window.DailySchedules, entities.DailySchedule{
			Date:      date,
			StartTime: t[0],
			EndTime:   t[1],
		})
		window.EndDate = date
	}
	return window
}

// UnitProduct returns a unit priced product
func UnitProduct(id, name, price string) *entities.Product {
	return &entities.Product{
		ID:          id,
		Name:        name,
		Category:    "general",
		PricingType: entities.PricingUnit,
		BasePrice:   Dec(price),
		CostPrice:   Dec("0"),
		Unit:        "unidad",
	}
}

// MeasurementProduct returns a product priced per measurement unit
func MeasurementProduct(id, name, category, price, unit string) *entities.Product {
	return &entities.Product{
		ID:          id,
		Name:        name,
		Category:    category,
		PricingType: entities.PricingMeasurement,
		BasePrice:   Dec(price),
		CostPrice:   Dec("0"),
		Unit:        unit,
	}
}

// Zone returns a transport zone
func Zone(id, baseCost, equipmentCost string) *entities.TransportZone {
	return &entities.TransportZone{
		ID:                         id,
		Name:                       "Zona " + id,
		BaseCost:                   Dec(baseCost),
		AdditionalEquipmentCost:    Dec(equipmentCost),
		EstimatedTravelTimeMinutes: 45,
	}
}

// BuildSimpleQuote returns a valid single-day quote with one 8h employee and
// one unit product for a corporativo client
func BuildSimpleQuote() *entities.QuotePricingInput {
	return &entities.QuotePricingInput{
		ID:     "Q-001",
		Client: CorporateClient(),
		Window: SingleDayWindow("08:00", "16:00"),
		Employees: []entities.EmployeeAssignment{
			{Employee: NewEmployee("EMP-1", "Ana"), Hours: Dec("8"), ExtraCost: Dec("0")},
		},
		Products: []entities.ProductAssignment{
			{Product: UnitProduct("P-1", "Estación de café", "50000"), Quantity: Dec("2")},
		},
	}
}
