package entities

import "github.com/shopspring/decimal"

// EventSubcontract represents a service delivered by a third party
type EventSubcontract struct {
	ID           string
	Name         string
	SupplierName string
	SupplierCost decimal.Decimal
	SuePrice     decimal.Decimal
}

// EventSubcontractAssignment places a subcontracted service on the event
type EventSubcontractAssignment struct {
	Subcontract        *EventSubcontract
	CustomSuePrice     decimal.NullDecimal
	CustomSupplierCost decimal.NullDecimal
}

// DisposableItem represents a consumable sold with a minimum order quantity
type DisposableItem struct {
	ID              string
	Name            string
	Unit            string
	SalePrice       decimal.Decimal
	CostPrice       decimal.Decimal
	MinimumQuantity decimal.Decimal
}

// DisposableAssignment places disposable items on the event
type DisposableAssignment struct {
	Item            *DisposableItem
	Quantity        decimal.Decimal
	CustomPrice     decimal.NullDecimal
	CustomTotalCost decimal.NullDecimal
}
