package pricing

import (
	"testing"

	"github.com/vsinha/eventquote/pkg/application/dto"
	testhelpers "github.com/vsinha/eventquote/pkg/application/services/testing"
	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// Scenario C
func TestDistributeTransport_AutomaticEvenSplit(t *testing.T) {
	zones := []entities.TransportZoneAssignment{{
		ZoneID:               "Z1",
		Zone:                 testhelpers.Zone("Z1", "50000", "10000"),
		TransportCount:       dec("2"),
		IncludeEquipment:     true,
		UseFlexibleTransport: true,
	}}

	result := DistributeTransport(zones, []string{"P1", "P2"})

	if !result.TotalCost.Equal(dec("120000")) {
		t.Errorf("Expected zone total 120000, got %s", result.TotalCost)
	}
	if result.SeparateLine != nil {
		t.Error("Expected no separate transport line")
	}
	for _, id := range []string{"P1", "P2"} {
		if !result.ProductCosts[id].Equal(dec("60000")) {
			t.Errorf("Expected %s to carry 60000, got %s", id, result.ProductCosts[id])
		}
	}
	if result.Zones[0].Mode != dto.DistributionAutomatic {
		t.Errorf("Expected automatic mode, got %s", result.Zones[0].Mode)
	}
}

func TestDistributeTransport_EvenSplitSumsExactly(t *testing.T) {
	zones := []entities.TransportZoneAssignment{{
		Zone:                 testhelpers.Zone("Z1", "100000", "0"),
		TransportCount:       dec("1"),
		UseFlexibleTransport: true,
	}}

	result := DistributeTransport(zones, []string{"P1", "P2", "P3"})

	sum := dec("0")
	for _, share := range result.Zones[0].Shares {
		sum = sum.Add(share.Cost)
	}
	if !sum.Equal(dec("100000")) {
		t.Errorf("Expected shares to sum to 100000, got %s", sum)
	}
}

func TestDistributeTransport_Manual(t *testing.T) {
	zones := []entities.TransportZoneAssignment{{
		Zone:                 testhelpers.Zone("Z1", "30000", "5000"),
		TransportCount:       dec("3"),
		UseFlexibleTransport: true,
		Allocations: []entities.TransportAllocation{
			{ProductID: "P1", Quantity: dec("2")},
			{ProductID: "P2", Quantity: dec("1")},
		},
	}}

	result := DistributeTransport(zones, []string{"P1", "P2", "P3"})

	if !result.ProductCosts["P1"].Equal(dec("60000")) {
		t.Errorf("Expected P1 to carry 60000, got %s", result.ProductCosts["P1"])
	}
	if !result.ProductCosts["P2"].Equal(dec("30000")) {
		t.Errorf("Expected P2 to carry 30000, got %s", result.ProductCosts["P2"])
	}
	if _, ok := result.ProductCosts["P3"]; ok {
		t.Error("Expected P3 to carry no transport")
	}
	if !result.TotalCost.Equal(dec("90000")) {
		t.Errorf("Expected zone total 90000, got %s", result.TotalCost)
	}
}

func TestDistributeTransport_LegacySingleZone(t *testing.T) {
	zones := []entities.TransportZoneAssignment{{
		Zone:             testhelpers.Zone("Z1", "30000", "6000"),
		TransportCount:   dec("2"),
		IncludeEquipment: true,
	}}

	result := DistributeTransport(zones, []string{"P1"})

	if result.SeparateLine == nil {
		t.Fatal("Expected a separate transport line")
	}
	if result.SeparateLine.Description != dto.TransportLineDescription {
		t.Errorf("Expected %q, got %q", dto.TransportLineDescription, result.SeparateLine.Description)
	}
	if !result.SeparateLine.TotalCost.Equal(dec("72000")) {
		t.Errorf("Expected 72000, got %s", result.SeparateLine.TotalCost)
	}
	if len(result.ProductCosts) != 0 {
		t.Errorf("Expected nothing folded into products, got %v", result.ProductCosts)
	}
}

// A legacy-style zone next to a flexible one is folded like any other zone
func TestDistributeTransport_LegacyZoneAlongsideFlexibleZone(t *testing.T) {
	zones := []entities.TransportZoneAssignment{
		{
			Zone:           testhelpers.Zone("Z1", "40000", "0"),
			TransportCount: dec("1"),
		},
		{
			Zone:                 testhelpers.Zone("Z2", "20000", "0"),
			TransportCount:       dec("1"),
			UseFlexibleTransport: true,
			Allocations:          []entities.TransportAllocation{{ProductID: "P2", Quantity: dec("1")}},
		},
	}

	result := DistributeTransport(zones, []string{"P1", "P2"})

	if result.SeparateLine != nil {
		t.Errorf("Expected no separate line with multiple zones, got %+v", result.SeparateLine)
	}
	if !result.ProductCosts["P1"].Equal(dec("20000")) {
		t.Errorf("Expected P1 to carry 20000, got %s", result.ProductCosts["P1"])
	}
	// 20000 from Z1 plus 20000 allocated from Z2
	if !result.ProductCosts["P2"].Equal(dec("40000")) {
		t.Errorf("Expected P2 to carry 40000, got %s", result.ProductCosts["P2"])
	}
	if !result.TotalCost.Equal(dec("60000")) {
		t.Errorf("Expected total 60000, got %s", result.TotalCost)
	}
}

func TestDistributeTransport_EligibleProducts(t *testing.T) {
	zones := []entities.TransportZoneAssignment{{
		Zone:                 testhelpers.Zone("Z1", "50000", "0"),
		TransportCount:       dec("1"),
		UseFlexibleTransport: true,
		EligibleProductIDs:   []string{"P2", "P-GONE"},
	}}

	result := DistributeTransport(zones, []string{"P1", "P2"})
	if !result.ProductCosts["P2"].Equal(dec("50000")) {
		t.Errorf("Expected P2 to carry the whole zone, got %s", result.ProductCosts["P2"])
	}

	// no eligible product on the quote keeps the cost on its own line
	zones[0].EligibleProductIDs = []string{"P-GONE"}
	result = DistributeTransport(zones, []string{"P1", "P2"})
	if result.SeparateLine == nil || !result.SeparateLine.TotalCost.Equal(dec("50000")) {
		t.Errorf("Expected a 50000 separate line, got %+v", result.SeparateLine)
	}
}

func TestZoneUnitCost(t *testing.T) {
	zone := testhelpers.Zone("Z1", "50000", "10000")

	if got := ZoneUnitCost(entities.TransportZoneAssignment{Zone: zone}); !got.Equal(dec("50000")) {
		t.Errorf("Expected 50000 without equipment, got %s", got)
	}
	if got := ZoneUnitCost(entities.TransportZoneAssignment{Zone: zone, IncludeEquipment: true}); !got.Equal(dec("60000")) {
		t.Errorf("Expected 60000 with equipment, got %s", got)
	}
}
