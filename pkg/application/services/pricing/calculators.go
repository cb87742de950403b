package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/application/dto"
	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/services"
)

var (
	hundred       = decimal.NewFromInt(100)
	dailyRateFrom = decimal.NewFromInt(8)
)

// CalculateEmployee prices an employee assignment. On multi-day events with
// configured days the rate is resolved per day from that day's hours and the
// day costs are summed; otherwise the assignment hours select a single rate.
func CalculateEmployee(assignment entities.EmployeeAssignment, duration services.Duration) (dto.EmployeeResult, error) {
	employee := assignment.Employee
	result := dto.EmployeeResult{
		EmployeeID:           employee.ID,
		Name:                 employee.Name,
		Type:                 employee.Type,
		ExtraCost:            assignment.ExtraCost,
		ExtraCostReason:      assignment.ExtraCostReason,
		AssociatedProductIDs: assignment.AssociatedProductIDs,
	}

	if duration.MultiDay && len(duration.Days) > 0 {
		hours := decimal.Zero
		base := decimal.Zero
		breakdown := make([]dto.EmployeeDayCost, 0, len(duration.Days))
		for _, day := range duration.Days {
			rate, err := employee.Rates.RateFor(day.Hours)
			if err != nil {
				return dto.EmployeeResult{}, err
			}
			cost := rate.Mul(day.Hours)
			breakdown = append(breakdown, dto.EmployeeDayCost{Date: day.Date, Hours: day.Hours, Rate: rate, Cost: cost})
			hours = hours.Add(day.Hours)
			base = base.Add(cost)
		}

		result.Hours = hours
		result.BaseCost = base
		result.HourlyRate = base.Div(hours).Round(2)
		result.DailyBreakdown = breakdown
		result.TotalCost = base.Add(assignment.ExtraCost)
		return result, nil
	}

	rate, err := employee.Rates.RateFor(assignment.Hours)
	if err != nil {
		return dto.EmployeeResult{}, err
	}

	result.Hours = assignment.Hours
	result.HourlyRate = rate
	result.BaseCost = rate.Mul(assignment.Hours)
	result.TotalCost = result.BaseCost.Add(assignment.ExtraCost)
	return result, nil
}

// CalculateProduct prices a product assignment. Measurement products without a
// usable measurement per unit get one from the table; the returned inference
// is non-nil exactly when that happened.
func CalculateProduct(assignment entities.ProductAssignment, table *services.MeasurementTable) (dto.ProductResult, *services.MeasurementInference) {
	product := assignment.Product
	unitPrice := product.BasePrice
	if assignment.IsVariable() {
		unitPrice = assignment.CustomPrice.Decimal
	}

	result := dto.ProductResult{
		ProductID:         product.ID,
		Name:              product.Name,
		PricingType:       product.PricingType,
		Unit:              product.Unit,
		Quantity:          assignment.Quantity,
		UnitPrice:         unitPrice,
		CostPrice:         product.CostPrice,
		IsVariable:        assignment.IsVariable(),
		CustomPriceReason: assignment.CustomPriceReason,
		MarginPercentage:  informationalMargin(unitPrice, product.CostPrice),
		TransportCost:     decimal.Zero,
	}

	var inference *services.MeasurementInference
	if product.PricingType == entities.PricingMeasurement {
		measurement := assignment.MeasurementPerUnit.Decimal
		if !assignment.MeasurementPerUnit.Valid || !measurement.IsPositive() {
			inferred := table.Infer(product, assignment.Quantity)
			inference = &inferred
			measurement = inferred.Value
			result.MeasurementInferred = true
		}
		result.MeasurementPerUnit = measurement
		result.BaseTotal = unitPrice.Mul(assignment.Quantity).Mul(measurement)
	} else {
		result.MeasurementPerUnit = decimal.NewFromInt(1)
		result.BaseTotal = unitPrice.Mul(assignment.Quantity)
	}

	result.TotalCost = result.BaseTotal
	return result, inference
}

// WithTransport returns the product line with transport folded into its total
func WithTransport(result dto.ProductResult, transport decimal.Decimal) dto.ProductResult {
	result.TransportCost = transport
	result.TotalCost = result.BaseTotal.Add(transport)
	return result
}

// CalculateMachinery prices owned machinery: the daily rate from 8 hours on,
// otherwise hourly, plus optional operator and setup
func CalculateMachinery(assignment entities.MachineryAssignment, hours decimal.Decimal) dto.MachineryResult {
	machinery := assignment.Machinery
	result := dto.MachineryResult{
		MachineryID:  machinery.ID,
		Name:         machinery.Name,
		Hours:        hours,
		OperatorCost: decimal.Zero,
		SetupCost:    decimal.Zero,
	}

	result.BaseCost, result.UsesDailyRate = timeCost(hours, machinery.HourlyRate, machinery.DailyRate)
	if assignment.IncludeOperator {
		result.OperatorCost = machinery.OperatorHourlyRate.Mul(hours)
	}
	if assignment.RequiresSetup {
		result.SetupCost = machinery.SetupCost
	}

	result.TotalCost = result.BaseCost.Add(result.OperatorCost).Add(result.SetupCost)
	return result
}

// CalculateMachineryRental prices rented machinery. A custom total cost is
// the result as-is.
func CalculateMachineryRental(assignment entities.MachineryRentalAssignment, hours decimal.Decimal) dto.MachineryRentalResult {
	rental := assignment.Rental
	result := dto.MachineryRentalResult{
		RentalID:     rental.ID,
		Name:         rental.Name,
		SupplierName: rental.SupplierName,
		Hours:        hours,
		BaseCost:     decimal.Zero,
		OperatorCost: decimal.Zero,
		SetupCost:    decimal.Zero,
		DeliveryCost: decimal.Zero,
		PickupCost:   decimal.Zero,
	}

	if assignment.CustomTotalCost.Valid {
		result.IsCustom = true
		result.TotalCost = assignment.CustomTotalCost.Decimal
		return result
	}

	result.BaseCost, result.UsesDailyRate = timeCost(hours, rental.SupplierHourlyRate, rental.SupplierDailyRate)
	if assignment.IncludeOperator {
		result.OperatorCost = rental.OperatorHourlyRate.Mul(hours)
	}
	result.SetupCost = rental.SetupCost
	if assignment.RequiresDelivery {
		result.DeliveryCost = rental.DeliveryCost
	}
	if assignment.RequiresPickup {
		result.PickupCost = rental.PickupCost
	}

	result.TotalCost = result.BaseCost.
		Add(result.OperatorCost).
		Add(result.SetupCost).
		Add(result.DeliveryCost).
		Add(result.PickupCost)
	return result
}

// CalculateSubcontract prices a subcontracted service at its client price
func CalculateSubcontract(assignment entities.EventSubcontractAssignment) dto.SubcontractResult {
	subcontract := assignment.Subcontract
	price := subcontract.SuePrice
	if assignment.CustomSuePrice.Valid {
		price = assignment.CustomSuePrice.Decimal
	}
	supplierCost := subcontract.SupplierCost
	if assignment.CustomSupplierCost.Valid {
		supplierCost = assignment.CustomSupplierCost.Decimal
	}

	return dto.SubcontractResult{
		SubcontractID: subcontract.ID,
		Name:          subcontract.Name,
		SupplierName:  subcontract.SupplierName,
		IsCustom:      assignment.CustomSuePrice.Valid,
		SuePrice:      price,
		SupplierCost:  supplierCost,
		MarginAmount:  price.Sub(supplierCost),
		TotalCost:     price,
	}
}

// CalculateDisposable prices disposable items, honouring the minimum order
// quantity. A custom total cost is used directly.
func CalculateDisposable(assignment entities.DisposableAssignment) dto.DisposableResult {
	item := assignment.Item
	result := dto.DisposableResult{
		ItemID:            item.ID,
		Name:              item.Name,
		Unit:              item.Unit,
		RequestedQuantity: assignment.Quantity,
	}

	if assignment.CustomTotalCost.Valid {
		result.IsCustomTotal = true
		result.ActualQuantity = assignment.Quantity
		result.TotalCost = assignment.CustomTotalCost.Decimal
		result.UnitPrice = decimal.Zero
		if assignment.Quantity.IsPositive() {
			result.UnitPrice = result.TotalCost.Div(assignment.Quantity)
		}
		return result
	}

	result.UnitPrice = item.SalePrice
	if assignment.CustomPrice.Valid {
		result.IsCustomPrice = true
		result.UnitPrice = assignment.CustomPrice.Decimal
	}
	result.ActualQuantity = decimal.Max(assignment.Quantity, item.MinimumQuantity)
	result.TotalCost = result.UnitPrice.Mul(result.ActualQuantity)
	return result
}

func timeCost(hours, hourlyRate, dailyRate decimal.Decimal) (decimal.Decimal, bool) {
	if hours.GreaterThanOrEqual(dailyRateFrom) {
		return dailyRate, true
	}
	return hourlyRate.Mul(hours), false
}

func informationalMargin(price, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(hundred).Round(2)
}
