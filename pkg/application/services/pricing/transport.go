package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/application/dto"
	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// ZoneUnitCost is the cost of one transport to the zone
func ZoneUnitCost(assignment entities.TransportZoneAssignment) decimal.Decimal {
	zone := assignment.Zone
	if assignment.IncludeEquipment {
		return zone.BaseCost.Add(zone.AdditionalEquipmentCost)
	}
	return zone.BaseCost
}

// DistributeTransport prices every zone and folds its cost into products.
//
// A quote with exactly one zone that does not use flexible transport keeps
// the legacy behaviour: the zone becomes one separate transport line. In every
// other case each zone is distributed on its own, manually when it carries
// allocations under flexible transport and evenly across its eligible products
// otherwise. A zone whose eligible set is empty falls back to the separate
// line so its cost is never dropped.
func DistributeTransport(zones []entities.TransportZoneAssignment, productIDs []string) dto.TransportResult {
	result := dto.TransportResult{
		Zones:        make([]dto.ZoneTransportResult, 0, len(zones)),
		ProductCosts: make(map[string]decimal.Decimal),
		TotalCost:    decimal.Zero,
	}

	legacy := len(zones) == 1 && !zones[0].UseFlexibleTransport
	separate := decimal.Zero
	hasSeparate := false

	for _, assignment := range zones {
		if assignment.Zone == nil {
			continue
		}

		unitCost := ZoneUnitCost(assignment)
		zoneResult := dto.ZoneTransportResult{
			ZoneID:           assignment.Zone.ID,
			Name:             assignment.Zone.Name,
			TransportCount:   assignment.TransportCount,
			IncludeEquipment: assignment.IncludeEquipment,
			UnitCost:         unitCost,
			ZoneTotal:        unitCost.Mul(assignment.TransportCount),
		}
		result.TotalCost = result.TotalCost.Add(zoneResult.ZoneTotal)

		switch {
		case legacy:
			zoneResult.Mode = dto.DistributionSeparate
		case assignment.IsManual():
			zoneResult.Mode = dto.DistributionManual
			zoneResult.Shares = manualShares(assignment, unitCost)
		default:
			eligible := eligibleProducts(assignment, productIDs)
			if len(eligible) == 0 {
				zoneResult.Mode = dto.DistributionSeparate
				break
			}
			zoneResult.Mode = dto.DistributionAutomatic
			zoneResult.Shares = evenShares(zoneResult.ZoneTotal, eligible)
		}

		if zoneResult.Mode == dto.DistributionSeparate {
			separate = separate.Add(zoneResult.ZoneTotal)
			hasSeparate = true
		}
		for _, share := range zoneResult.Shares {
			current, ok := result.ProductCosts[share.ProductID]
			if !ok {
				current = decimal.Zero
			}
			result.ProductCosts[share.ProductID] = current.Add(share.Cost)
		}

		result.Zones = append(result.Zones, zoneResult)
	}

	if hasSeparate {
		result.SeparateLine = &dto.LineItem{
			Category:    dto.CategoryTransport,
			Description: dto.TransportLineDescription,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   separate,
			TotalCost:   separate,
		}
	}

	return result
}

func manualShares(assignment entities.TransportZoneAssignment, unitCost decimal.Decimal) []dto.ProductTransportShare {
	shares := make([]dto.ProductTransportShare, 0, len(assignment.Allocations))
	for _, allocation := range assignment.Allocations {
		shares = append(shares, dto.ProductTransportShare{
			ProductID: allocation.ProductID,
			Quantity:  allocation.Quantity,
			Cost:      allocation.Quantity.Mul(unitCost),
		})
	}
	return shares
}

// evenShares splits total into len(productIDs) equal parts. The last share
// absorbs the division remainder so the shares sum to total exactly.
func evenShares(total decimal.Decimal, productIDs []string) []dto.ProductTransportShare {
	perProduct := total.Div(decimal.NewFromInt(int64(len(productIDs))))
	shares := make([]dto.ProductTransportShare, 0, len(productIDs))
	allocated := decimal.Zero
	for i, id := range productIDs {
		cost := perProduct
		if i == len(productIDs)-1 {
			cost = total.Sub(allocated)
		}
		allocated = allocated.Add(cost)
		shares = append(shares, dto.ProductTransportShare{ProductID: id, Cost: cost})
	}
	return shares
}

// eligibleProducts returns the zone's eligible ids that are on the quote, or
// every product when the zone names none
func eligibleProducts(assignment entities.TransportZoneAssignment, productIDs []string) []string {
	if len(assignment.EligibleProductIDs) == 0 {
		return dedupe(productIDs)
	}

	onQuote := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		onQuote[id] = true
	}

	eligible := make([]string, 0, len(assignment.EligibleProductIDs))
	for _, id := range dedupe(assignment.EligibleProductIDs) {
		if onQuote[id] {
			eligible = append(eligible, id)
		}
	}
	return eligible
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
