package entities

import "github.com/shopspring/decimal"

// TransportZone represents a geographic delivery zone
type TransportZone struct {
	ID                         string
	Name                       string
	BaseCost                   decimal.Decimal
	AdditionalEquipmentCost    decimal.Decimal
	EstimatedTravelTimeMinutes int
}

// TransportAllocation assigns a number of transports of a zone to a product
type TransportAllocation struct {
	ProductID string
	Quantity  decimal.Decimal
}

// TransportZoneAssignment references a zone on the quote. Zone is nil until
// resolved from the zone catalog.
type TransportZoneAssignment struct {
	ZoneID               string
	Zone                 *TransportZone
	TransportCount       decimal.Decimal
	IncludeEquipment     bool
	UseFlexibleTransport bool
	Allocations          []TransportAllocation
	EligibleProductIDs   []string
}

// IsManual reports whether the zone cost is allocated per product by hand
func (a TransportZoneAssignment) IsManual() bool {
	return a.UseFlexibleTransport && len(a.Allocations) > 0
}
