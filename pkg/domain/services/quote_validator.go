package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// ValidationLimits bounds the values a quote may carry
type ValidationLimits struct {
	MaxSingleDayHours decimal.Decimal
	MaxMultiDayHours  decimal.Decimal
	MinMargin         decimal.Decimal
	MaxMargin         decimal.Decimal
	MaxRetention      decimal.Decimal
}

// DefaultValidationLimits returns 24h per single-day event, 7×24h per
// multi-day event and a margin between 0 and 200 percent
func DefaultValidationLimits() ValidationLimits {
	return ValidationLimits{
		MaxSingleDayHours: decimal.NewFromInt(24),
		MaxMultiDayHours:  decimal.NewFromInt(168),
		MinMargin:         decimal.Zero,
		MaxMargin:         decimal.NewFromInt(200),
		MaxRetention:      decimal.NewFromInt(100),
	}
}

// ValidationResult contains the results of quote validation
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

func (r *ValidationResult) addf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// QuoteValidator runs the pre-flight checks of a pricing request
type QuoteValidator struct {
	limits ValidationLimits
}

// NewQuoteValidator creates a validator with the given limits
func NewQuoteValidator(limits ValidationLimits) *QuoteValidator {
	return &QuoteValidator{limits: limits}
}

// Validate collects every structural defect of the input. It never stops at
// the first error and never corrects missing product measurements.
func (v *QuoteValidator) Validate(input *entities.QuotePricingInput) *ValidationResult {
	result := &ValidationResult{Errors: make([]string, 0)}

	if input.Client != nil && !input.Client.Type.IsValid() {
		result.addf("unknown client type: %q", string(input.Client.Type))
	}
	for _, problem := range input.Window.Check() {
		result.Errors = append(result.Errors, problem)
	}

	v.validateEmployees(input, result)
	productIDs := v.validateProducts(input, result)
	v.validateMachinery(input, result)
	v.validateSupplies(input, result)
	v.validateTransport(input, productIDs, result)
	v.validatePercentages(input, result)

	result.IsValid = len(result.Errors) == 0
	return result
}

func (v *QuoteValidator) validateEmployees(input *entities.QuotePricingInput, result *ValidationResult) {
	if len(input.Employees) == 0 {
		result.addf("at least one employee is required")
		return
	}

	maxHours := v.limits.MaxSingleDayHours
	eventKind := "single-day"
	if input.Window.IsMultiDay() {
		maxHours = v.limits.MaxMultiDayHours
		eventKind = "multi-day"
	}

	for i, assignment := range input.Employees {
		if assignment.Employee == nil {
			result.addf("employee assignment %d: employee reference is missing", i+1)
			continue
		}
		name := assignment.Employee.Name
		if !assignment.Hours.IsPositive() {
			result.addf("employee %s: hours must be positive, got %s", name, assignment.Hours)
		} else if assignment.Hours.GreaterThan(maxHours) {
			result.addf("employee %s: hours cannot exceed %s for a %s event, got %s", name, maxHours, eventKind, assignment.Hours)
		}
		if !assignment.Employee.Rates.HasRates() {
			result.addf("employee %s: no rate data available", name)
		}
		if assignment.ExtraCost.IsNegative() {
			result.addf("employee %s: extra cost cannot be negative, got %s", name, assignment.ExtraCost)
		}
	}
}

func (v *QuoteValidator) validateProducts(input *entities.QuotePricingInput, result *ValidationResult) map[string]bool {
	ids := make(map[string]bool, len(input.Products))

	for i, assignment := range input.Products {
		if assignment.Product == nil {
			result.addf("product assignment %d: product reference is missing", i+1)
			continue
		}
		ids[assignment.Product.ID] = true
		name := assignment.Product.Name
		if !assignment.Quantity.IsPositive() {
			result.addf("product %s: quantity must be positive, got %s", name, assignment.Quantity)
		}
		if assignment.CustomPrice.Valid && assignment.CustomPrice.Decimal.IsNegative() {
			result.addf("product %s: custom price cannot be negative, got %s", name, assignment.CustomPrice.Decimal)
		}
	}

	return ids
}

func (v *QuoteValidator) validateMachinery(input *entities.QuotePricingInput, result *ValidationResult) {
	for i, assignment := range input.Machinery {
		if assignment.Machinery == nil {
			result.addf("machinery assignment %d: machinery reference is missing", i+1)
			continue
		}
		if assignment.Hours.IsNegative() {
			result.addf("machinery %s: hours cannot be negative, got %s", assignment.Machinery.Name, assignment.Hours)
		}
	}

	for i, assignment := range input.MachineryRentals {
		if assignment.Rental == nil {
			result.addf("machinery rental assignment %d: rental reference is missing", i+1)
			continue
		}
		name := assignment.Rental.Name
		if assignment.Hours.IsNegative() {
			result.addf("machinery rental %s: hours cannot be negative, got %s", name, assignment.Hours)
		}
		if assignment.CustomTotalCost.Valid && assignment.CustomTotalCost.Decimal.IsNegative() {
			result.addf("machinery rental %s: custom total cost cannot be negative, got %s", name, assignment.CustomTotalCost.Decimal)
		}
	}
}

func (v *QuoteValidator) validateSupplies(input *entities.QuotePricingInput, result *ValidationResult) {
	for i, assignment := range input.Subcontracts {
		if assignment.Subcontract == nil {
			result.addf("subcontract assignment %d: subcontract reference is missing", i+1)
			continue
		}
		name := assignment.Subcontract.Name
		if assignment.CustomSuePrice.Valid && assignment.CustomSuePrice.Decimal.IsNegative() {
			result.addf("subcontract %s: custom price cannot be negative, got %s", name, assignment.CustomSuePrice.Decimal)
		}
		if assignment.CustomSupplierCost.Valid && assignment.CustomSupplierCost.Decimal.IsNegative() {
			result.addf("subcontract %s: custom supplier cost cannot be negative, got %s", name, assignment.CustomSupplierCost.Decimal)
		}
	}

	for i, assignment := range input.Disposables {
		if assignment.Item == nil {
			result.addf("disposable assignment %d: item reference is missing", i+1)
			continue
		}
		name := assignment.Item.Name
		if !assignment.Quantity.IsPositive() {
			result.addf("disposable %s: quantity must be positive, got %s", name, assignment.Quantity)
		}
		if assignment.CustomPrice.Valid && assignment.CustomPrice.Decimal.IsNegative() {
			result.addf("disposable %s: custom price cannot be negative, got %s", name, assignment.CustomPrice.Decimal)
		}
		if assignment.CustomTotalCost.Valid && assignment.CustomTotalCost.Decimal.IsNegative() {
			result.addf("disposable %s: custom total cost cannot be negative, got %s", name, assignment.CustomTotalCost.Decimal)
		}
	}
}

func (v *QuoteValidator) validateTransport(input *entities.QuotePricingInput, productIDs map[string]bool, result *ValidationResult) {
	for _, assignment := range input.TransportZones {
		if assignment.Zone == nil {
			result.addf("Zone not found: %s", assignment.ZoneID)
			continue
		}
		name := assignment.Zone.Name
		if assignment.TransportCount.IsNegative() {
			result.addf("transport zone %s: transport count cannot be negative, got %s", name, assignment.TransportCount)
		}
		if !assignment.IsManual() {
			continue
		}
		for _, allocation := range assignment.Allocations {
			if !productIDs[allocation.ProductID] {
				result.addf("transport zone %s: allocation references product %s which is not on the quote", name, allocation.ProductID)
			}
			if allocation.Quantity.IsNegative() {
				result.addf("transport zone %s: allocation quantity for product %s cannot be negative", name, allocation.ProductID)
			}
		}
	}
}

func (v *QuoteValidator) validatePercentages(input *entities.QuotePricingInput, result *ValidationResult) {
	if input.MarginPercentage.Valid {
		margin := input.MarginPercentage.Decimal
		if margin.LessThan(v.limits.MinMargin) || margin.GreaterThan(v.limits.MaxMargin) {
			result.addf("margin percentage must be between %s and %s, got %s", v.limits.MinMargin, v.limits.MaxMargin, margin)
		}
	}
	if input.EnableRetention && input.RetentionPercentage.Valid {
		retention := input.RetentionPercentage.Decimal
		if retention.IsNegative() || retention.GreaterThan(v.limits.MaxRetention) {
			result.addf("retention percentage must be between 0 and %s, got %s", v.limits.MaxRetention, retention)
		}
	}
}
