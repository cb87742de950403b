package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// Category identifies a cost category of a quote
type Category string

const (
	CategoryEmployees        Category = "employees"
	CategoryProducts         Category = "products"
	CategoryMachinery        Category = "machinery"
	CategoryMachineryRentals Category = "machinery_rentals"
	CategorySubcontracts     Category = "subcontracts"
	CategoryDisposables      Category = "disposables"
	CategoryTransport        Category = "transport"
)

// TransportLineDescription is the label of the undistributed transport line
const TransportLineDescription = "Transport and logistics"

// LineItem is the category-independent view of one priced line
type LineItem struct {
	Category    Category
	ReferenceID string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalCost   decimal.Decimal
}

// EmployeeDayCost is the cost of one employee on one day of a multi-day event
type EmployeeDayCost struct {
	Date  string
	Hours decimal.Decimal
	Rate  decimal.Decimal
	Cost  decimal.Decimal
}

// EmployeeResult is the priced line of an employee assignment. For multi-day
// events HourlyRate is BaseCost/Hours and is for display only.
type EmployeeResult struct {
	EmployeeID           string
	Name                 string
	Type                 string
	Hours                decimal.Decimal
	HourlyRate           decimal.Decimal
	BaseCost             decimal.Decimal
	ExtraCost            decimal.Decimal
	ExtraCostReason      string
	TotalCost            decimal.Decimal
	DailyBreakdown       []EmployeeDayCost
	AssociatedProductIDs []string
}

// ProductResult is the priced line of a product assignment. BaseTotal
// excludes transport; TotalCost includes the transport folded into the line.
type ProductResult struct {
	ProductID           string
	Name                string
	PricingType         entities.PricingType
	Unit                string
	Quantity            decimal.Decimal
	MeasurementPerUnit  decimal.Decimal
	MeasurementInferred bool
	UnitPrice           decimal.Decimal
	CostPrice           decimal.Decimal
	IsVariable          bool
	CustomPriceReason   string
	MarginPercentage    decimal.Decimal
	BaseTotal           decimal.Decimal
	TransportCost       decimal.Decimal
	TotalCost           decimal.Decimal
}

// MachineryResult is the priced line of owned machinery
type MachineryResult struct {
	MachineryID   string
	Name          string
	Hours         decimal.Decimal
	UsesDailyRate bool
	BaseCost      decimal.Decimal
	OperatorCost  decimal.Decimal
	SetupCost     decimal.Decimal
	TotalCost     decimal.Decimal
}

// MachineryRentalResult is the priced line of rented machinery
type MachineryRentalResult struct {
	RentalID      string
	Name          string
	SupplierName  string
	Hours         decimal.Decimal
	IsCustom      bool
	UsesDailyRate bool
	BaseCost      decimal.Decimal
	OperatorCost  decimal.Decimal
	SetupCost     decimal.Decimal
	DeliveryCost  decimal.Decimal
	PickupCost    decimal.Decimal
	TotalCost     decimal.Decimal
}

// SubcontractResult is the priced line of a subcontracted service. Only
// TotalCost reaches the client; SupplierCost is kept for margin reporting.
type SubcontractResult struct {
	SubcontractID string
	Name          string
	SupplierName  string
	IsCustom      bool
	SuePrice      decimal.Decimal
	SupplierCost  decimal.Decimal
	MarginAmount  decimal.Decimal
	TotalCost     decimal.Decimal
}

// DisposableResult is the priced line of disposable items
type DisposableResult struct {
	ItemID            string
	Name              string
	Unit              string
	RequestedQuantity decimal.Decimal
	ActualQuantity    decimal.Decimal
	UnitPrice         decimal.Decimal
	IsCustomPrice     bool
	IsCustomTotal     bool
	TotalCost         decimal.Decimal
}

// DistributionMode tells how a zone's cost reached the products
type DistributionMode string

const (
	DistributionManual    DistributionMode = "manual"
	DistributionAutomatic DistributionMode = "automatic"
	DistributionSeparate  DistributionMode = "separate"
)

// ProductTransportShare is the part of a zone's cost carried by one product
type ProductTransportShare struct {
	ProductID string
	Quantity  decimal.Decimal
	Cost      decimal.Decimal
}

// ZoneTransportResult is the transport cost of one zone
type ZoneTransportResult struct {
	ZoneID           string
	Name             string
	TransportCount   decimal.Decimal
	IncludeEquipment bool
	UnitCost         decimal.Decimal
	ZoneTotal        decimal.Decimal
	Mode             DistributionMode
	Shares           []ProductTransportShare
}

// TransportResult is the output of the transport distributor
type TransportResult struct {
	Zones []ZoneTransportResult
	// ProductCosts holds the transport folded into each product, by product id
	ProductCosts map[string]decimal.Decimal
	// SeparateLine is the undistributed transport line, nil when every zone
	// was folded into products
	SeparateLine *LineItem
	TotalCost    decimal.Decimal
}

// PaymentTerms are the commercial conditions derived from the total
type PaymentTerms struct {
	Days              int
	RequiresAdvance   bool
	AdvancePercentage decimal.Decimal
}

// QuotePricingResult is the fully itemized quote
type QuotePricingResult struct {
	QuoteID    string
	Title      string
	ClientType entities.ClientType
	EventHours decimal.Decimal
	MultiDay   bool

	Employees        []EmployeeResult
	Products         []ProductResult
	Machinery        []MachineryResult
	MachineryRentals []MachineryRentalResult
	Subcontracts     []SubcontractResult
	Disposables      []DisposableResult
	Transport        TransportResult

	Lines     []LineItem
	Subtotals map[Category]decimal.Decimal

	Subtotal               decimal.Decimal
	MarginPercentage       decimal.Decimal
	MarginAmount           decimal.Decimal
	TaxRetentionPercentage decimal.Decimal
	TaxRetentionAmount     decimal.Decimal
	TotalCost              decimal.Decimal
	PaymentTerms           PaymentTerms

	Warnings []string
}

// SubtotalFor returns the subtotal of one category, zero when absent
func (r *QuotePricingResult) SubtotalFor(category Category) decimal.Decimal {
	if amount, ok := r.Subtotals[category]; ok {
		return amount
	}
	return decimal.Zero
}
