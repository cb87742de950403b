package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/services"
)

// Policy holds the commercial defaults the engine applies. It is passed in
// explicitly so that changing a default never touches calculation code.
type Policy struct {
	// DefaultMargins is the margin percentage per client type when the quote sets none
	DefaultMargins map[entities.ClientType]decimal.Decimal
	// FallbackMargin applies to client types missing from DefaultMargins
	FallbackMargin decimal.Decimal

	DefaultRetentionPercentage decimal.Decimal

	PaymentTermDays        map[entities.ClientType]int
	DefaultPaymentTermDays int
	// AdvanceThreshold is the total above which an advance payment is required
	AdvanceThreshold  decimal.Decimal
	AdvancePercentage decimal.Decimal

	// CurrencyPlaces is the number of decimals kept on aggregated amounts
	CurrencyPlaces int32
	MinimumHours   decimal.Decimal
	Limits         services.ValidationLimits

	MeasurementRules    []services.MeasurementRule
	QuantityBands       []services.QuantityBand
	FallbackMeasurement decimal.Decimal
}

// DefaultPolicy returns the standard commercial policy: 25% margin for social
// clients and 30% for corporate ones, 4% retention, 15/30 day terms and a 50%
// advance above 500.000
func DefaultPolicy() Policy {
	return Policy{
		DefaultMargins: map[entities.ClientType]decimal.Decimal{
			entities.ClientSocial:    decimal.NewFromInt(25),
			entities.ClientCorporate: decimal.NewFromInt(30),
		},
		FallbackMargin:             decimal.NewFromInt(25),
		DefaultRetentionPercentage: decimal.NewFromInt(4),
		PaymentTermDays: map[entities.ClientType]int{
			entities.ClientSocial:    15,
			entities.ClientCorporate: 30,
		},
		DefaultPaymentTermDays: 15,
		AdvanceThreshold:       decimal.NewFromInt(500000),
		AdvancePercentage:      decimal.NewFromInt(50),
		CurrencyPlaces:         0,
		MinimumHours:           decimal.NewFromFloat(0.5),
		Limits:                 services.DefaultValidationLimits(),
		MeasurementRules:       services.DefaultMeasurementRules(),
		QuantityBands:          services.DefaultQuantityBands(),
		FallbackMeasurement:    decimal.NewFromInt(50),
	}
}

// Validate checks the policy for values the engine cannot work with
func (p Policy) Validate() error {
	for clientType, margin := range p.DefaultMargins {
		if margin.IsNegative() {
			return fmt.Errorf("default margin for %s cannot be negative, got %s", clientType, margin)
		}
	}
	if p.DefaultRetentionPercentage.IsNegative() {
		return fmt.Errorf("default retention percentage cannot be negative, got %s", p.DefaultRetentionPercentage)
	}
	if p.AdvancePercentage.IsNegative() || p.AdvancePercentage.GreaterThan(hundred) {
		return fmt.Errorf("advance percentage must be between 0 and 100, got %s", p.AdvancePercentage)
	}
	if p.CurrencyPlaces < 0 {
		return fmt.Errorf("currency places cannot be negative, got %d", p.CurrencyPlaces)
	}
	if !p.MinimumHours.IsPositive() {
		return fmt.Errorf("minimum hours must be positive, got %s", p.MinimumHours)
	}
	return nil
}

// MarginFor returns the default margin percentage of a client type
func (p Policy) MarginFor(clientType entities.ClientType) decimal.Decimal {
	if margin, ok := p.DefaultMargins[clientType]; ok {
		return margin
	}
	return p.FallbackMargin
}

// PaymentDaysFor returns the payment term in days of a client type
func (p Policy) PaymentDaysFor(clientType entities.ClientType) int {
	if days, ok := p.PaymentTermDays[clientType]; ok {
		return days
	}
	return p.DefaultPaymentTermDays
}
