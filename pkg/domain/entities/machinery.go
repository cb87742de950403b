package entities

import "github.com/shopspring/decimal"

// Machinery represents company-owned equipment
type Machinery struct {
	ID                 string
	Name               string
	HourlyRate         decimal.Decimal
	DailyRate          decimal.Decimal
	OperatorHourlyRate decimal.Decimal
	SetupCost          decimal.Decimal
}

// MachineryAssignment places owned machinery on the event
type MachineryAssignment struct {
	Machinery       *Machinery
	Hours           decimal.Decimal
	IncludeOperator bool
	RequiresSetup   bool
}

// MachineryRental represents equipment rented from a supplier
type MachineryRental struct {
	ID                 string
	Name               string
	SupplierName       string
	SupplierHourlyRate decimal.Decimal
	SupplierDailyRate  decimal.Decimal
	OperatorHourlyRate decimal.Decimal
	SetupCost          decimal.Decimal
	DeliveryCost       decimal.Decimal
	PickupCost         decimal.Decimal
}

// MachineryRentalAssignment places rented machinery on the event. A valid
// CustomTotalCost replaces the computed cost entirely.
type MachineryRentalAssignment struct {
	Rental           *MachineryRental
	Hours            decimal.Decimal
	IncludeOperator  bool
	RequiresDelivery bool
	RequiresPickup   bool
	CustomTotalCost  decimal.NullDecimal
}
