package orchestration

import (
	"fmt"

	"github.com/vsinha/eventquote/pkg/application/dto"
	"github.com/vsinha/eventquote/pkg/application/services/pricing"
	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/repositories"
)

// QuoteOrchestrator resolves catalog references of a quote and prices it
type QuoteOrchestrator struct {
	engine   *pricing.Engine
	zoneRepo repositories.ZoneRepository
}

// NewQuoteOrchestrator creates a new quote orchestrator
func NewQuoteOrchestrator(engine *pricing.Engine, zoneRepo repositories.ZoneRepository) *QuoteOrchestrator {
	return &QuoteOrchestrator{
		engine:   engine,
		zoneRepo: zoneRepo,
	}
}

// QuoteOutcome is the result of pricing a quote through the orchestrator
type QuoteOutcome struct {
	Input  *entities.QuotePricingInput
	Result *dto.QuotePricingResult
}

// ResolveZones returns a copy of the input whose zone assignments carry the
// zone records from the repository. Zones already set inline are kept; unknown
// ids stay unresolved and are reported by validation as "Zone not found".
func (o *QuoteOrchestrator) ResolveZones(input *entities.QuotePricingInput) *entities.QuotePricingInput {
	resolved := *input
	resolved.TransportZones = make([]entities.TransportZoneAssignment, len(input.TransportZones))

	for i, assignment := range input.TransportZones {
		if assignment.Zone == nil && o.zoneRepo != nil {
			if zone, err := o.zoneRepo.GetZone(assignment.ZoneID); err == nil {
				assignment.Zone = zone
			}
		}
		resolved.TransportZones[i] = assignment
	}

	return &resolved
}

// PriceQuote resolves the quote's zones and runs the pricing engine
func (o *QuoteOrchestrator) PriceQuote(input *entities.QuotePricingInput) (*QuoteOutcome, error) {
	if input == nil {
		return nil, fmt.Errorf("no quote provided for pricing")
	}

	// Step 1: Resolve transport zones from the catalog
	resolved := o.ResolveZones(input)

	// Step 2: Price the quote
	result, err := o.engine.Price(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to price quote %s: %w", input.ID, err)
	}

	return &QuoteOutcome{
		Input:  resolved,
		Result: result,
	}, nil
}
