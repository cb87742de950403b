package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTableKind identifies which shape of rate data an employee carries
type RateTableKind int

const (
	NoRates RateTableKind = iota
	TieredRates
	LegacyRates
)

// String method for RateTableKind enum
func (k RateTableKind) String() string {
	switch k {
	case NoRates:
		return "NoRates"
	case TieredRates:
		return "TieredRates"
	case LegacyRates:
		return "LegacyRates"
	default:
		return "Unknown"
	}
}

// Legacy bucket keys as stored by older employee records
const (
	LegacyBucketUpTo4   = "1-4h"
	LegacyBucketUpTo8   = "4-8h"
	LegacyBucketOver8   = "8h+"
	legacyFirstCeiling  = 4
	legacySecondCeiling = 8
)

// RateTier is an hours range with its hourly rate. An invalid MaxHours means
// the tier is open-ended.
type RateTier struct {
	MinHours decimal.Decimal
	MaxHours decimal.NullDecimal
	Rate     decimal.Decimal
}

// Contains reports whether hours fall within the tier. Both bounds are
// inclusive so that a value sitting on a boundary resolves to the lower tier
// when tiers are scanned in order.
func (t RateTier) Contains(hours decimal.Decimal) bool {
	if hours.LessThan(t.MinHours) {
		return false
	}
	return !t.MaxHours.Valid || hours.LessThanOrEqual(t.MaxHours.Decimal)
}

// LegacyBuckets is the fixed three-bucket rate map
type LegacyBuckets struct {
	UpTo4 decimal.Decimal
	UpTo8 decimal.Decimal
	Over8 decimal.Decimal
}

// RateTable is either an ordered list of tiers or a legacy bucket map.
// The zero value carries no rates.
type RateTable struct {
	kind   RateTableKind
	tiers  []RateTier
	legacy LegacyBuckets
}

// NewTieredRateTable creates a validated tiered RateTable. Tiers must be
// ordered, contiguous and non-overlapping, and only the last may be open-ended.
func NewTieredRateTable(tiers []RateTier) (RateTable, error) {
	if len(tiers) == 0 {
		return RateTable{}, fmt.Errorf("rate tiers cannot be empty")
	}

	for i, tier := range tiers {
		if tier.MinHours.IsNegative() {
			return RateTable{}, fmt.Errorf("tier %d: minimum hours cannot be negative, got %s", i, tier.MinHours)
		}
		if tier.Rate.IsNegative() {
			return RateTable{}, fmt.Errorf("tier %d: rate cannot be negative, got %s", i, tier.Rate)
		}
		last := i == len(tiers)-1
		if !tier.MaxHours.Valid {
			if !last {
				return RateTable{}, fmt.Errorf("tier %d: only the last tier can be open-ended", i)
			}
			continue
		}
		if last {
			return RateTable{}, fmt.Errorf("tier %d: last tier must be open-ended", i)
		}
		if tier.MaxHours.Decimal.LessThanOrEqual(tier.MinHours) {
			return RateTable{}, fmt.Errorf("tier %d: maximum hours (%s) must exceed minimum hours (%s)",
				i, tier.MaxHours.Decimal, tier.MinHours)
		}
		if next := tiers[i+1]; !next.MinHours.Equal(tier.MaxHours.Decimal) {
			return RateTable{}, fmt.Errorf("tier %d: starts at %s but previous tier ends at %s",
				i+1, next.MinHours, tier.MaxHours.Decimal)
		}
	}

	copied := make([]RateTier, len(tiers))
	copy(copied, tiers)
	return RateTable{kind: TieredRates, tiers: copied}, nil
}

// NewLegacyRateTable creates a RateTable from the three legacy buckets
func NewLegacyRateTable(buckets LegacyBuckets) (RateTable, error) {
	if buckets.UpTo4.IsNegative() || buckets.UpTo8.IsNegative() || buckets.Over8.IsNegative() {
		return RateTable{}, fmt.Errorf("legacy rates cannot be negative")
	}
	return RateTable{kind: LegacyRates, legacy: buckets}, nil
}

// Kind returns the shape of the table
func (t RateTable) Kind() RateTableKind {
	return t.kind
}

// HasRates reports whether the table carries any rate data
func (t RateTable) HasRates() bool {
	return t.kind != NoRates
}

// Tiers returns a copy of the tiers of a tiered table
func (t RateTable) Tiers() []RateTier {
	tiers := make([]RateTier, len(t.tiers))
	copy(tiers, t.tiers)
	return tiers
}

// Legacy returns the buckets of a legacy table
func (t RateTable) Legacy() LegacyBuckets {
	return t.legacy
}

// RateFor resolves the hourly rate for the given hours. Tiers are scanned in
// order and the first containing tier wins; hours below the first tier use
// the first tier and hours past a closed table use the last one. Legacy
// buckets break at 4h and 8h inclusive.
func (t RateTable) RateFor(hours decimal.Decimal) (decimal.Decimal, error) {
	switch t.kind {
	case TieredRates:
		for _, tier := range t.tiers {
			if tier.Contains(hours) {
				return tier.Rate, nil
			}
		}
		if hours.LessThan(t.tiers[0].MinHours) {
			return t.tiers[0].Rate, nil
		}
		return t.tiers[len(t.tiers)-1].Rate, nil
	case LegacyRates:
		switch {
		case hours.LessThanOrEqual(decimal.NewFromInt(legacyFirstCeiling)):
			return t.legacy.UpTo4, nil
		case hours.LessThanOrEqual(decimal.NewFromInt(legacySecondCeiling)):
			return t.legacy.UpTo8, nil
		default:
			return t.legacy.Over8, nil
		}
	default:
		return decimal.Zero, fmt.Errorf("no rate data available")
	}
}

// Employee represents a staff member that can be billed on a quote
type Employee struct {
	ID    string
	Name  string
	Type  string
	Rates RateTable
}

// EmployeeAssignment places an employee on the event
type EmployeeAssignment struct {
	Employee *Employee
	// Hours prices single-day events. On multi-day events cost comes from
	// the daily schedules and Hours is only bounds-checked.
	Hours                decimal.Decimal
	ExtraCost            decimal.Decimal
	ExtraCostReason      string
	AssociatedProductIDs []string
}
