package entities

import "github.com/shopspring/decimal"

// QuotePricingInput is everything the engine needs to price one quote
type QuotePricingInput struct {
	ID               string
	Client           *Client
	Window           EventWindow
	Employees        []EmployeeAssignment
	Products         []ProductAssignment
	Machinery        []MachineryAssignment
	MachineryRentals []MachineryRentalAssignment
	Subcontracts     []EventSubcontractAssignment
	Disposables      []DisposableAssignment
	TransportZones   []TransportZoneAssignment

	// MarginPercentage falls back to the client type default when not valid
	MarginPercentage    decimal.NullDecimal
	EnableRetention     bool
	RetentionPercentage decimal.NullDecimal
}

// ProductIDs returns the ids of every product on the quote, in order
func (q *QuotePricingInput) ProductIDs() []string {
	ids := make([]string, 0, len(q.Products))
	for _, p := range q.Products {
		if p.Product != nil {
			ids = append(ids, p.Product.ID)
		}
	}
	return ids
}
