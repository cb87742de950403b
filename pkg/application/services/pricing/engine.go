package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/op/go-logging"
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/application/dto"
	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/services"
)

var log = logging.MustGetLogger("pricing")

// ErrNotReady is returned when the client, the event dates or the event times
// are missing and no hours can be derived yet
var ErrNotReady = errors.New("quote is not ready for pricing: client or event dates and times are missing")

// ValidationError carries every validation message of a rejected quote
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("quote validation failed: %s", strings.Join(e.Errors, "; "))
}

// pricingRun is the state of one Price call
type pricingRun struct {
	input     *entities.QuotePricingInput
	duration  services.Duration
	transport dto.TransportResult
	result    *dto.QuotePricingResult
}

func (r *pricingRun) warn(message string) {
	log.Warningf("Quote %s: %s", r.input.ID, message)
	r.result.Warnings = append(r.result.Warnings, message)
}

// categoryPricer prices one cost category and returns its generic lines
type categoryPricer struct {
	category dto.Category
	price    func(run *pricingRun) ([]dto.LineItem, error)
}

// Engine turns a QuotePricingInput into a QuotePricingResult. It holds no
// per-quote state and is safe for concurrent use.
type Engine struct {
	policy       Policy
	duration     *services.DurationCalculator
	validator    *services.QuoteValidator
	measurements *services.MeasurementTable
	titles       *services.TitleGenerator
	categories   []categoryPricer
}

// NewEngine creates an engine with the default policy
func NewEngine() *Engine {
	engine, err := NewEngineWithPolicy(DefaultPolicy())
	if err != nil {
		panic(fmt.Sprintf("default pricing policy: %v", err))
	}
	return engine
}

// NewEngineWithPolicy creates an engine with a custom policy
func NewEngineWithPolicy(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing policy: %w", err)
	}

	measurements, err := services.NewMeasurementTable(policy.MeasurementRules, policy.QuantityBands, policy.FallbackMeasurement)
	if err != nil {
		return nil, fmt.Errorf("invalid measurement table: %w", err)
	}

	e := &Engine{
		policy:       policy,
		duration:     services.NewDurationCalculatorWithMinimum(policy.MinimumHours),
		validator:    services.NewQuoteValidator(policy.Limits),
		measurements: measurements,
		titles:       services.NewTitleGenerator(measurements),
	}

	// Categories are summed in this order; transport comes last because only
	// the undistributed part of it is a line of its own.
	e.categories = []categoryPricer{
		{category: dto.CategoryEmployees, price: e.priceEmployees},
		{category: dto.CategoryProducts, price: e.priceProducts},
		{category: dto.CategoryMachinery, price: e.priceMachinery},
		{category: dto.CategoryMachineryRentals, price: e.priceMachineryRentals},
		{category: dto.CategorySubcontracts, price: e.priceSubcontracts},
		{category: dto.CategoryDisposables, price: e.priceDisposables},
		{category: dto.CategoryTransport, price: e.priceTransportLine},
	}

	return e, nil
}

// Policy returns the policy the engine applies
func (e *Engine) Policy() Policy {
	return e.policy
}

// EventHours returns the billable hours of the input's event window
func (e *Engine) EventHours(input *entities.QuotePricingInput) decimal.Decimal {
	return e.duration.EventHours(input.Window)
}

// IsReady reports whether the input has enough data to be priced
func (e *Engine) IsReady(input *entities.QuotePricingInput) bool {
	return input != nil && input.Client != nil && e.EventHours(input).IsPositive()
}

// Validate runs the pre-flight checks without pricing
func (e *Engine) Validate(input *entities.QuotePricingInput) *services.ValidationResult {
	return e.validator.Validate(input)
}

// GenerateTitle returns a descriptive title for the quote
func (e *Engine) GenerateTitle(input *entities.QuotePricingInput) string {
	return e.titles.Generate(input)
}

// Price runs the pricing pipeline: validate, price every category, fold
// transport into products, sum, then apply margin and retention. It returns
// ErrNotReady or a *ValidationError instead of a partial result.
func (e *Engine) Price(input *entities.QuotePricingInput) (*dto.QuotePricingResult, error) {
	if input == nil {
		return nil, fmt.Errorf("pricing input cannot be nil")
	}

	duration := e.duration.Calculate(input.Window)
	if input.Client == nil || duration.IsZero() {
		return nil, ErrNotReady
	}

	validation := e.validator.Validate(input)
	if !validation.IsValid {
		log.Debugf("Quote %s rejected with %d validation errors", input.ID, len(validation.Errors))
		return nil, &ValidationError{Errors: validation.Errors}
	}

	run := &pricingRun{
		input:    input,
		duration: duration,
		result: &dto.QuotePricingResult{
			QuoteID:    input.ID,
			ClientType: input.Client.Type,
			EventHours: duration.TotalHours,
			MultiDay:   duration.MultiDay,
			Subtotals:  make(map[dto.Category]decimal.Decimal, len(e.categories)),
			Lines:      make([]dto.LineItem, 0),
			Warnings:   make([]string, 0),
		},
	}

	// Step 1: Price transport zones so products can absorb their share
	run.transport = DistributeTransport(input.TransportZones, input.ProductIDs())
	run.result.Transport = run.transport

	// Step 2: Fold every registered category into the subtotal
	subtotal := decimal.Zero
	for _, c := range e.categories {
		lines, err := c.price(run)
		if err != nil {
			return nil, fmt.Errorf("failed to price %s: %w", c.category, err)
		}
		categoryTotal := sumLines(lines)
		run.result.Subtotals[c.category] = categoryTotal
		run.result.Lines = append(run.result.Lines, lines...)
		subtotal = subtotal.Add(categoryTotal)
	}

	// Step 3: Margin, retention and total
	e.applyTotals(run.result, input, subtotal)

	for _, issue := range services.CheckAssociations(input) {
		run.warn(issue.Message)
	}
	run.result.Title = e.titles.Generate(input)

	log.Debugf("Quote %s priced: subtotal=%s margin=%s retention=%s total=%s",
		input.ID, run.result.Subtotal, run.result.MarginAmount, run.result.TaxRetentionAmount, run.result.TotalCost)

	return run.result, nil
}

// applyTotals applies margin and retention. Retention is always computed on
// the margin-inclusive subtotal and total = subtotal + margin - retention.
func (e *Engine) applyTotals(result *dto.QuotePricingResult, input *entities.QuotePricingInput, subtotal decimal.Decimal) {
	places := e.policy.CurrencyPlaces

	marginPercentage := e.policy.MarginFor(input.Client.Type)
	if input.MarginPercentage.Valid {
		marginPercentage = input.MarginPercentage.Decimal
	}

	retentionPercentage := decimal.Zero
	if input.EnableRetention {
		retentionPercentage = e.policy.DefaultRetentionPercentage
		if input.RetentionPercentage.Valid {
			retentionPercentage = input.RetentionPercentage.Decimal
		}
	}

	result.Subtotal = subtotal.Round(places)
	result.MarginPercentage = marginPercentage
	result.MarginAmount = result.Subtotal.Mul(marginPercentage).Div(hundred).Round(places)
	result.TaxRetentionPercentage = retentionPercentage
	result.TaxRetentionAmount = result.Subtotal.Add(result.MarginAmount).Mul(retentionPercentage).Div(hundred).Round(places)
	result.TotalCost = result.Subtotal.Add(result.MarginAmount).Sub(result.TaxRetentionAmount)

	requiresAdvance := result.TotalCost.GreaterThan(e.policy.AdvanceThreshold)
	advance := decimal.Zero
	if requiresAdvance {
		advance = e.policy.AdvancePercentage
	}
	result.PaymentTerms = dto.PaymentTerms{
		Days:              e.policy.PaymentDaysFor(input.Client.Type),
		RequiresAdvance:   requiresAdvance,
		AdvancePercentage: advance,
	}
}

func (e *Engine) priceEmployees(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.Employees))
	for _, assignment := range run.input.Employees {
		employee, err := CalculateEmployee(assignment, run.duration)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", assignment.Employee.Name, err)
		}
		run.result.Employees = append(run.result.Employees, employee)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategoryEmployees,
			ReferenceID: employee.EmployeeID,
			Description: employee.Name,
			Quantity:    employee.Hours,
			UnitPrice:   employee.HourlyRate,
			TotalCost:   employee.TotalCost,
		})
	}
	return lines, nil
}

// priceProducts prices products and folds in their transport share. When a
// product appears on several lines its share goes to the first one.
func (e *Engine) priceProducts(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.Products))
	folded := make(map[string]bool)

	for _, assignment := range run.input.Products {
		product, inference := CalculateProduct(assignment, e.measurements)
		if inference != nil {
			run.warn(inference.Approximation(assignment.Product))
		}
		if share, ok := run.transport.ProductCosts[product.ProductID]; ok && !folded[product.ProductID] {
			product = WithTransport(product, share)
			folded[product.ProductID] = true
		}

		run.result.Products = append(run.result.Products, product)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategoryProducts,
			ReferenceID: product.ProductID,
			Description: product.Name,
			Quantity:    product.Quantity,
			UnitPrice:   product.UnitPrice,
			TotalCost:   product.TotalCost,
		})
	}
	return lines, nil
}

func (e *Engine) priceMachinery(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.Machinery))
	for _, assignment := range run.input.Machinery {
		machinery := CalculateMachinery(assignment, run.hoursOr(assignment.Hours))
		run.result.Machinery = append(run.result.Machinery, machinery)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategoryMachinery,
			ReferenceID: machinery.MachineryID,
			Description: machinery.Name,
			Quantity:    machinery.Hours,
			UnitPrice:   machinery.BaseCost,
			TotalCost:   machinery.TotalCost,
		})
	}
	return lines, nil
}

func (e *Engine) priceMachineryRentals(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.MachineryRentals))
	for _, assignment := range run.input.MachineryRentals {
		rental := CalculateMachineryRental(assignment, run.hoursOr(assignment.Hours))
		run.result.MachineryRentals = append(run.result.MachineryRentals, rental)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategoryMachineryRentals,
			ReferenceID: rental.RentalID,
			Description: rental.Name,
			Quantity:    rental.Hours,
			UnitPrice:   rental.BaseCost,
			TotalCost:   rental.TotalCost,
		})
	}
	return lines, nil
}

func (e *Engine) priceSubcontracts(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.Subcontracts))
	for _, assignment := range run.input.Subcontracts {
		subcontract := CalculateSubcontract(assignment)
		run.result.Subcontracts = append(run.result.Subcontracts, subcontract)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategorySubcontracts,
			ReferenceID: subcontract.SubcontractID,
			Description: subcontract.Name,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   subcontract.TotalCost,
			TotalCost:   subcontract.TotalCost,
		})
	}
	return lines, nil
}

func (e *Engine) priceDisposables(run *pricingRun) ([]dto.LineItem, error) {
	lines := make([]dto.LineItem, 0, len(run.input.Disposables))
	for _, assignment := range run.input.Disposables {
		disposable := CalculateDisposable(assignment)
		run.result.Disposables = append(run.result.Disposables, disposable)
		lines = append(lines, dto.LineItem{
			Category:    dto.CategoryDisposables,
			ReferenceID: disposable.ItemID,
			Description: disposable.Name,
			Quantity:    disposable.ActualQuantity,
			UnitPrice:   disposable.UnitPrice,
			TotalCost:   disposable.TotalCost,
		})
	}
	return lines, nil
}

func (e *Engine) priceTransportLine(run *pricingRun) ([]dto.LineItem, error) {
	if run.transport.SeparateLine == nil {
		return nil, nil
	}
	return []dto.LineItem{*run.transport.SeparateLine}, nil
}

// hoursOr returns hours when positive and the event hours otherwise
func (r *pricingRun) hoursOr(hours decimal.Decimal) decimal.Decimal {
	if hours.IsPositive() {
		return hours
	}
	return r.duration.TotalHours
}

func sumLines(lines []dto.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalCost)
	}
	return total
}
