package quotefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// Loader reads quote requests stored as JSON documents
type Loader struct{}

// NewLoader creates a new quote file loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadQuote reads a quote request from a file
func (l *Loader) LoadQuote(filename string) (*entities.QuotePricingInput, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open quote file %s: %w", filename, err)
	}
	defer file.Close()

	input, err := l.ReadQuote(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote file %s: %w", filename, err)
	}
	return input, nil
}

// ReadQuote decodes a quote request. Quotes without an id are given a new one.
func (l *Loader) ReadQuote(r io.Reader) (*entities.QuotePricingInput, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var doc quoteDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid quote document: %w", err)
	}

	input, err := doc.toInput()
	if err != nil {
		return nil, err
	}
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	return input, nil
}

type quoteDocument struct {
	ID                  string                  `json:"id"`
	Client              *clientDocument         `json:"client"`
	Event               eventDocument           `json:"event"`
	Employees           []employeeAssignment    `json:"employees"`
	Products            []productAssignment     `json:"products"`
	Machinery           []machineryAssignment   `json:"machinery"`
	MachineryRentals    []rentalAssignment      `json:"machinery_rentals"`
	Subcontracts        []subcontractAssignment `json:"subcontracts"`
	Disposables         []disposableAssignment  `json:"disposables"`
	TransportZones      []zoneAssignment        `json:"transport_zones"`
	MarginPercentage    decimal.NullDecimal     `json:"margin_percentage"`
	EnableRetention     bool                    `json:"enable_retention"`
	RetentionPercentage decimal.NullDecimal     `json:"retention_percentage"`
}

type clientDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type eventDocument struct {
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	StartTime      string             `json:"start_time"`
	EndTime        string             `json:"end_time"`
	DailySchedules []scheduleDocument `json:"daily_schedules"`
}

type scheduleDocument struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type employeeDocument struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Rates json.RawMessage `json:"rates"`
}

type tierDocument struct {
	MinHours decimal.Decimal     `json:"min_hours"`
	MaxHours decimal.NullDecimal `json:"max_hours"`
	Rate     decimal.Decimal     `json:"rate"`
}

type legacyDocument struct {
	UpTo4 decimal.NullDecimal `json:"1-4h"`
	UpTo8 decimal.NullDecimal `json:"4-8h"`
	Over8 decimal.NullDecimal `json:"8h+"`
}

type employeeAssignment struct {
	Employee             employeeDocument `json:"employee"`
	Hours                decimal.Decimal  `json:"hours"`
	ExtraCost            decimal.Decimal  `json:"extra_cost"`
	ExtraCostReason      string           `json:"extra_cost_reason"`
	AssociatedProductIDs []string         `json:"associated_product_ids"`
}

type productDocument struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	PricingType string          `json:"pricing_type"`
	BasePrice   decimal.Decimal `json:"base_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Unit        string          `json:"unit"`
}

type productAssignment struct {
	Product            productDocument     `json:"product"`
	Quantity           decimal.Decimal     `json:"quantity"`
	MeasurementPerUnit decimal.NullDecimal `json:"measurement_per_unit"`
	CustomPrice        decimal.NullDecimal `json:"custom_price"`
	CustomPriceReason  string              `json:"custom_price_reason"`
}

type machineryDocument struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	OperatorHourlyRate decimal.Decimal `json:"operator_hourly_rate"`
	SetupCost          decimal.Decimal `json:"setup_cost"`
}

type machineryAssignment struct {
	Machinery       machineryDocument `json:"machinery"`
	Hours           decimal.Decimal   `json:"hours"`
	IncludeOperator bool              `json:"include_operator"`
	RequiresSetup   bool              `json:"requires_setup"`
}

type rentalDocument struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	SupplierName       string          `json:"supplier_name"`
	SupplierHourlyRate decimal.Decimal `json:"supplier_hourly_rate"`
	SupplierDailyRate  decimal.Decimal `json:"supplier_daily_rate"`
	OperatorHourlyRate decimal.Decimal `json:"operator_hourly_rate"`
	SetupCost          decimal.Decimal `json:"setup_cost"`
	DeliveryCost       decimal.Decimal `json:"delivery_cost"`
	PickupCost         decimal.Decimal `json:"pickup_cost"`
}

type rentalAssignment struct {
	Rental           rentalDocument      `json:"rental"`
	Hours            decimal.Decimal     `json:"hours"`
	IncludeOperator  bool                `json:"include_operator"`
	RequiresDelivery bool                `json:"requires_delivery"`
	RequiresPickup   bool                `json:"requires_pickup"`
	CustomTotalCost  decimal.NullDecimal `json:"custom_total_cost"`
}

type subcontractDocument struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SupplierName string          `json:"supplier_name"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
	SuePrice     decimal.Decimal `json:"sue_price"`
}

type subcontractAssignment struct {
	Subcontract        subcontractDocument `json:"subcontract"`
	CustomSuePrice     decimal.NullDecimal `json:"custom_sue_price"`
	CustomSupplierCost decimal.NullDecimal `json:"custom_supplier_cost"`
}

type disposableDocument struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
}

type disposableAssignment struct {
	Item            disposableDocument  `json:"item"`
	Quantity        decimal.Decimal     `json:"quantity"`
	CustomPrice     decimal.NullDecimal `json:"custom_price"`
	CustomTotalCost decimal.NullDecimal `json:"custom_total_cost"`
}

type allocationDocument struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type zoneAssignment struct {
	ZoneID               string               `json:"zone_id"`
	TransportCount       decimal.Decimal      `json:"transport_count"`
	IncludeEquipment     bool                 `json:"include_equipment"`
	UseFlexibleTransport bool                 `json:"use_flexible_transport"`
	Allocations          []allocationDocument `json:"allocations"`
	EligibleProductIDs   []string             `json:"eligible_product_ids"`
}

func (d quoteDocument) toInput() (*entities.QuotePricingInput, error) {
	input := &entities.QuotePricingInput{
		ID: d.ID,
		Window: entities.EventWindow{
			StartDate: d.Event.StartDate,
			EndDate:   d.Event.EndDate,
			StartTime: d.Event.StartTime,
			EndTime:   d.Event.EndTime,
		},
		MarginPercentage:    d.MarginPercentage,
		EnableRetention:     d.EnableRetention,
		RetentionPercentage: d.RetentionPercentage,
	}

	// The client type is carried as-is; the validator reports unknown types
	if d.Client != nil {
		input.Client = &entities.Client{
			ID:   d.Client.ID,
			Name: d.Client.Name,
			Type: entities.ClientType(d.Client.Type),
		}
	}

	for _, day := range d.Event.DailySchedules {
		input.Window.DailySchedules = append(input.Window.DailySchedules, entities.DailySchedule{
			Date:      day.Date,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}

	for i, ea := range d.Employees {
		rates, err := parseRates(ea.Employee.Rates)
		if err != nil {
			return nil, fmt.Errorf("employee %d (%s): %w", i, ea.Employee.ID, err)
		}
		input.Employees = append(input.Employees, entities.EmployeeAssignment{
			Employee: &entities.Employee{
				ID:    ea.Employee.ID,
				Name:  ea.Employee.Name,
				Type:  ea.Employee.Type,
				Rates: rates,
			},
			Hours:                ea.Hours,
			ExtraCost:            ea.ExtraCost,
			ExtraCostReason:      ea.ExtraCostReason,
			AssociatedProductIDs: ea.AssociatedProductIDs,
		})
	}

	for i, pa := range d.Products {
		pricingType := entities.PricingType(pa.Product.PricingType)
		if pricingType == "" {
			pricingType = entities.PricingUnit
		}
		product, err := entities.NewProduct(pa.Product.ID, pa.Product.Name, pa.Product.Category,
			pricingType, pa.Product.BasePrice, pa.Product.CostPrice, pa.Product.Unit)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		input.Products = append(input.Products, entities.ProductAssignment{
			Product:            product,
			Quantity:           pa.Quantity,
			MeasurementPerUnit: pa.MeasurementPerUnit,
			CustomPrice:        pa.CustomPrice,
			CustomPriceReason:  pa.CustomPriceReason,
		})
	}

	for _, ma := range d.Machinery {
		m := ma.Machinery
		input.Machinery = append(input.Machinery, entities.MachineryAssignment{
			Machinery: &entities.Machinery{
				ID:                 m.ID,
				Name:               m.Name,
				HourlyRate:         m.HourlyRate,
				DailyRate:          m.DailyRate,
				OperatorHourlyRate: m.OperatorHourlyRate,
				SetupCost:          m.SetupCost,
			},
			Hours:           ma.Hours,
			IncludeOperator: ma.IncludeOperator,
			RequiresSetup:   ma.RequiresSetup,
		})
	}

	for _, ra := range d.MachineryRentals {
		r := ra.Rental
		input.MachineryRentals = append(input.MachineryRentals, entities.MachineryRentalAssignment{
			Rental: &entities.MachineryRental{
				ID:                 r.ID,
				Name:               r.Name,
				SupplierName:       r.SupplierName,
				SupplierHourlyRate: r.SupplierHourlyRate,
				SupplierDailyRate:  r.SupplierDailyRate,
				OperatorHourlyRate: r.OperatorHourlyRate,
				SetupCost:          r.SetupCost,
				DeliveryCost:       r.DeliveryCost,
				PickupCost:         r.PickupCost,
			},
			Hours:            ra.Hours,
			IncludeOperator:  ra.IncludeOperator,
			RequiresDelivery: ra.RequiresDelivery,
			RequiresPickup:   ra.RequiresPickup,
			CustomTotalCost:  ra.CustomTotalCost,
		})
	}

	for _, sa := range d.Subcontracts {
		s := sa.Subcontract
		input.Subcontracts = append(input.Subcontracts, entities.EventSubcontractAssignment{
			Subcontract: &entities.EventSubcontract{
				ID:           s.ID,
				Name:         s.Name,
				SupplierName: s.SupplierName,
				SupplierCost: s.SupplierCost,
				SuePrice:     s.SuePrice,
			},
			CustomSuePrice:     sa.CustomSuePrice,
			CustomSupplierCost: sa.CustomSupplierCost,
		})
	}

	for _, da := range d.Disposables {
		item := da.Item
		input.Disposables = append(input.Disposables, entities.DisposableAssignment{
			Item: &entities.DisposableItem{
				ID:              item.ID,
				Name:            item.Name,
				Unit:            item.Unit,
				SalePrice:       item.SalePrice,
				CostPrice:       item.CostPrice,
				MinimumQuantity: item.MinimumQuantity,
			},
			Quantity:        da.Quantity,
			CustomPrice:     da.CustomPrice,
			CustomTotalCost: da.CustomTotalCost,
		})
	}

	for _, za := range d.TransportZones {
		assignment := entities.TransportZoneAssignment{
			ZoneID:               za.ZoneID,
			TransportCount:       za.TransportCount,
			IncludeEquipment:     za.IncludeEquipment,
			UseFlexibleTransport: za.UseFlexibleTransport,
			EligibleProductIDs:   za.EligibleProductIDs,
		}
		for _, alloc := range za.Allocations {
			assignment.Allocations = append(assignment.Allocations, entities.TransportAllocation{
				ProductID: alloc.ProductID,
				Quantity:  alloc.Quantity,
			})
		}
		input.TransportZones = append(input.TransportZones, assignment)
	}

	return input, nil
}

// parseRates decides the shape of stored rate data: an array is a tier list,
// an object is the legacy bucket map and null or absent means no rates.
func parseRates(raw json.RawMessage) (entities.RateTable, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return entities.RateTable{}, nil
	}

	switch trimmed[0] {
	case '[':
		var tiers []tierDocument
		if err := json.Unmarshal(trimmed, &tiers); err != nil {
			return entities.RateTable{}, fmt.Errorf("invalid rate tiers: %w", err)
		}
		if len(tiers) == 0 {
			return entities.RateTable{}, nil
		}
		converted := make([]entities.RateTier, 0, len(tiers))
		for _, tier := range tiers {
			converted = append(converted, entities.RateTier{
				MinHours: tier.MinHours,
				MaxHours: tier.MaxHours,
				Rate:     tier.Rate,
			})
		}
		return entities.NewTieredRateTable(converted)
	case '{':
		var legacy legacyDocument
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return entities.RateTable{}, fmt.Errorf("invalid legacy rates: %w", err)
		}
		// a map without any bucket carries no rate data
		if !legacy.UpTo4.Valid && !legacy.UpTo8.Valid && !legacy.Over8.Valid {
			return entities.RateTable{}, nil
		}
		return entities.NewLegacyRateTable(entities.LegacyBuckets{
			UpTo4: legacy.UpTo4.Decimal,
			UpTo8: legacy.UpTo8.Decimal,
			Over8: legacy.Over8.Decimal,
		})
	default:
		return entities.RateTable{}, fmt.Errorf("rates must be a list of tiers or a bucket map")
	}
}
