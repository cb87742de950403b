package services

import (
	"strings"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// TitleGenerator builds a descriptive quote title from its contents
type TitleGenerator struct {
	classifier *MeasurementTable
}

// NewTitleGenerator creates a title generator that classifies products with
// the given measurement table
func NewTitleGenerator(classifier *MeasurementTable) *TitleGenerator {
	return &TitleGenerator{classifier: classifier}
}

// Generate returns "<kind> - <client> - <dates>". The kind comes from the
// products on the quote and falls back to the client segment.
func (g *TitleGenerator) Generate(input *entities.QuotePricingInput) string {
	parts := []string{g.eventKind(input)}

	if input.Client != nil && input.Client.Name != "" {
		parts = append(parts, input.Client.Name)
	}
	if dates := dateLabel(input.Window); dates != "" {
		parts = append(parts, dates)
	}

	return strings.Join(parts, " - ")
}

func (g *TitleGenerator) eventKind(input *entities.QuotePricingInput) string {
	seen := make(map[ProductKind]bool)
	for _, assignment := range input.Products {
		if assignment.Product == nil {
			continue
		}
		switch kind := g.classifier.Classify(assignment.Product); kind {
		case KindBlendedDrink:
			seen[KindBeverage] = true
		case KindOther:
		default:
			seen[kind] = true
		}
	}

	switch {
	case len(seen) > 1:
		return "Servicio de catering"
	case seen[KindBeverage]:
		return "Servicio de bebidas"
	case seen[KindDessert]:
		return "Servicio de postres"
	case seen[KindFood]:
		return "Servicio de alimentos"
	}

	if input.Client != nil && input.Client.Type == entities.ClientCorporate {
		return "Evento corporativo"
	}
	return "Evento social"
}

func dateLabel(window entities.EventWindow) string {
	if window.StartDate == "" {
		return ""
	}
	if window.IsMultiDay() {
		return window.StartDate + " al " + window.EndDate
	}
	return window.StartDate
}
