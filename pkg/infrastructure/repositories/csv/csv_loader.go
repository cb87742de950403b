package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

var zoneHeader = []string{"id", "name", "base_cost", "additional_equipment_cost", "estimated_travel_time_minutes"}

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadZones loads the transport zone catalog from a CSV file
func (l *Loader) LoadZones(filename string) ([]*entities.TransportZone, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open zones file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadZones(file)
}

// ReadZones reads the transport zone catalog from CSV data
func (l *Loader) ReadZones(r io.Reader) ([]*entities.TransportZone, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read zones CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("zones CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, zoneHeader) {
		return nil, fmt.Errorf("zones CSV header mismatch. Expected: %v, Got: %v", zoneHeader, header)
	}

	zones := make([]*entities.TransportZone, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(zoneHeader) {
			return nil, fmt.Errorf("zones CSV row %d: expected %d columns, got %d", i+2, len(zoneHeader), len(record))
		}

		zone, err := parseZone(record)
		if err != nil {
			return nil, fmt.Errorf("zones CSV row %d: %w", i+2, err)
		}

		zones = append(zones, &zone)
	}

	return zones, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseZone(record []string) (entities.TransportZone, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return entities.TransportZone{}, fmt.Errorf("id cannot be empty")
	}

	baseCost, err := parseAmount(record[2])
	if err != nil {
		return entities.TransportZone{}, fmt.Errorf("invalid base_cost: %s", record[2])
	}

	equipmentCost, err := parseAmount(record[3])
	if err != nil {
		return entities.TransportZone{}, fmt.Errorf("invalid additional_equipment_cost: %s", record[3])
	}

	travelMinutes := 0
	if s := strings.TrimSpace(record[4]); s != "" {
		travelMinutes, err = strconv.Atoi(s)
		if err != nil {
			return entities.TransportZone{}, fmt.Errorf("invalid estimated_travel_time_minutes: %s", record[4])
		}
	}

	return entities.TransportZone{
		ID:                         id,
		Name:                       strings.TrimSpace(record[1]),
		BaseCost:                   baseCost,
		AdditionalEquipmentCost:    equipmentCost,
		EstimatedTravelTimeMinutes: travelMinutes,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}
	return amount, nil
}
