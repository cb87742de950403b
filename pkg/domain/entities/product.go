package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingType represents how a product is priced
type PricingType string

const (
	// PricingUnit prices per discrete product
	PricingUnit PricingType = "unit"
	// PricingMeasurement prices per unit of measure (ml, oz, g) of each product
	PricingMeasurement PricingType = "measurement"
)

// Product represents a catalog product. For measurement products BasePrice and
// CostPrice are per measurement unit, not per product.
type Product struct {
	ID          string
	Name        string
	Category    string
	PricingType PricingType
	BasePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Unit        string
}

// NewProduct creates a validated Product
func NewProduct(id, name, category string, pricingType PricingType, basePrice, costPrice decimal.Decimal, unit string) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if pricingType != PricingUnit && pricingType != PricingMeasurement {
		return nil, fmt.Errorf("unknown pricing type: %q", string(pricingType))
	}
	if basePrice.IsNegative() {
		return nil, fmt.Errorf("base price cannot be negative, got %s", basePrice)
	}
	if costPrice.IsNegative() {
		return nil, fmt.Errorf("cost price cannot be negative, got %s", costPrice)
	}

	return &Product{
		ID:          id,
		Name:        name,
		Category:    category,
		PricingType: pricingType,
		BasePrice:   basePrice,
		CostPrice:   costPrice,
		Unit:        unit,
	}, nil
}

// ProductAssignment places a product on the event. A valid CustomPrice marks
// the line as variable.
type ProductAssignment struct {
	Product            *Product
	Quantity           decimal.Decimal
	MeasurementPerUnit decimal.NullDecimal
	CustomPrice        decimal.NullDecimal
	CustomPriceReason  string
}

// IsVariable reports whether the catalog price was manually overridden
func (a ProductAssignment) IsVariable() bool {
	return a.CustomPrice.Valid
}
