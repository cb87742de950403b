package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

// ProductKind is the coarse family a product belongs to, derived from its
// name and category
type ProductKind int

const (
	KindOther ProductKind = iota
	KindBlendedDrink
	KindDessert
	KindBeverage
	KindFood
)

// String method for ProductKind enum
func (k ProductKind) String() string {
	switch k {
	case KindBlendedDrink:
		return "BlendedDrink"
	case KindDessert:
		return "Dessert"
	case KindBeverage:
		return "Beverage"
	case KindFood:
		return "Food"
	default:
		return "Other"
	}
}

// ParseProductKind parses a kind name such as "dessert" or "blended-drink"
func ParseProductKind(name string) (ProductKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blended-drink", "blendeddrink":
		return KindBlendedDrink, nil
	case "dessert":
		return KindDessert, nil
	case "beverage":
		return KindBeverage, nil
	case "food":
		return KindFood, nil
	case "other", "":
		return KindOther, nil
	default:
		return KindOther, fmt.Errorf("unknown product kind: %s", name)
	}
}

// MatchField selects which product attribute a rule inspects
type MatchField int

const (
	MatchName MatchField = iota
	MatchCategory
)

// ParseMatchField parses "name" or "category"
func ParseMatchField(name string) (MatchField, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		return MatchName, nil
	case "category":
		return MatchCategory, nil
	default:
		return MatchName, fmt.Errorf("unknown match field: %s", name)
	}
}

// MeasurementRule maps a keyword family to a default measurement per product.
// Values keyed by canonical unit take precedence over Default.
type MeasurementRule struct {
	Kind     ProductKind
	Fields   []MatchField
	Keywords []string
	Values   map[string]decimal.Decimal
	Default  decimal.Decimal
}

// QuantityBand is the last-resort default keyed on how many products are ordered
type QuantityBand struct {
	MaxQuantity decimal.NullDecimal
	Value       decimal.Decimal
}

// MeasurementInference is the outcome of inferring a measurement
type MeasurementInference struct {
	Value  decimal.Decimal
	Kind   ProductKind
	Source string
}

// Approximation is a human readable note about an inferred measurement
func (m MeasurementInference) Approximation(product *entities.Product) string {
	return fmt.Sprintf("measurement per unit for %s approximated as %s %s (%s)",
		product.Name, m.Value.String(), product.Unit, m.Source)
}

// MeasurementTable infers a measurement per product when none was given.
// Rules are evaluated in order and the first keyword hit wins; quantity bands
// are used when no rule matches.
type MeasurementTable struct {
	rules    []compiledRule
	bands    []QuantityBand
	fallback decimal.Decimal
}

type compiledRule struct {
	MeasurementRule
	pattern *regexp.Regexp
}

// NewMeasurementTable compiles the rules of a measurement table
func NewMeasurementTable(rules []MeasurementRule, bands []QuantityBand, fallback decimal.Decimal) (*MeasurementTable, error) {
	table := &MeasurementTable{bands: bands, fallback: fallback}

	for i, rule := range rules {
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("measurement rule %d has no keywords", i)
		}
		quoted := make([]string, len(rule.Keywords))
		for j, keyword := range rule.Keywords {
			quoted[j] = regexp.QuoteMeta(normalizeText(keyword))
		}
		pattern, err := regexp.Compile(`\b(` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("measurement rule %d: %w", i, err)
		}
		if len(rule.Fields) == 0 {
			rule.Fields = []MatchField{MatchName}
		}
		table.rules = append(table.rules, compiledRule{MeasurementRule: rule, pattern: pattern})
	}

	return table, nil
}

// DefaultMeasurementRules returns the built-in keyword families
func DefaultMeasurementRules() []MeasurementRule {
	return []MeasurementRule{
		{
			Kind:     KindBlendedDrink,
			Fields:   []MatchField{MatchName},
			Keywords: []string{"frappe", "frappé", "granizado", "smoothie", "malteada", "milkshake", "batido", "slush", "frozen"},
			Values: map[string]decimal.Decimal{
				"ml": decimal.NewFromInt(420),
				"oz": decimal.NewFromInt(14),
			},
			Default: decimal.NewFromInt(420),
		},
		{
			Kind:     KindDessert,
			Fields:   []MatchField{MatchName},
			Keywords: []string{"torta", "pastel", "cake", "cheesecake", "postre", "brownie", "ponque", "ponqué", "cupcake"},
			Default:  decimal.NewFromInt(135),
		},
		{
			Kind:     KindBeverage,
			Fields:   []MatchField{MatchCategory, MatchName},
			Keywords: []string{"bebida", "bebidas", "beverage", "drink", "drinks", "jugo", "limonada", "gaseosa", "soda", "cafe", "café", "coffee", "te", "té"},
			Default:  decimal.NewFromInt(355),
		},
		{
			Kind:     KindFood,
			Fields:   []MatchField{MatchCategory},
			Keywords: []string{"comida", "alimento", "alimentos", "food", "snack", "snacks", "pasabocas"},
			Default:  decimal.NewFromInt(200),
		},
	}
}

// DefaultQuantityBands returns the quantity banded fallback: up to 5 products
// 500, up to 20 products 200, otherwise 50
func DefaultQuantityBands() []QuantityBand {
	return []QuantityBand{
		{MaxQuantity: decimal.NewNullDecimal(decimal.NewFromInt(5)), Value: decimal.NewFromInt(500)},
		{MaxQuantity: decimal.NewNullDecimal(decimal.NewFromInt(20)), Value: decimal.NewFromInt(200)},
		{Value: decimal.NewFromInt(50)},
	}
}

// NewDefaultMeasurementTable builds the built-in table
func NewDefaultMeasurementTable() *MeasurementTable {
	table, err := NewMeasurementTable(DefaultMeasurementRules(), DefaultQuantityBands(), decimal.NewFromInt(50))
	if err != nil {
		panic(fmt.Sprintf("default measurement table: %v", err))
	}
	return table
}

// Classify returns the kind of the first rule matching the product
func (t *MeasurementTable) Classify(product *entities.Product) ProductKind {
	if rule := t.match(product); rule != nil {
		return rule.Kind
	}
	return KindOther
}

// Infer returns the measurement per product to use when none was supplied.
// It never fails: unmatched products fall through to the quantity bands.
func (t *MeasurementTable) Infer(product *entities.Product, quantity decimal.Decimal) MeasurementInference {
	if rule := t.match(product); rule != nil {
		unit := CanonicalUnit(product.Unit)
		if value, ok := rule.Values[unit]; ok {
			return MeasurementInference{Value: value, Kind: rule.Kind, Source: fmt.Sprintf("%s default for %s", rule.Kind, unit)}
		}
		return MeasurementInference{Value: rule.Default, Kind: rule.Kind, Source: fmt.Sprintf("%s default", rule.Kind)}
	}

	for _, band := range t.bands {
		if !band.MaxQuantity.Valid || quantity.LessThanOrEqual(band.MaxQuantity.Decimal) {
			return MeasurementInference{Value: band.Value, Kind: KindOther, Source: "quantity band default"}
		}
	}

	return MeasurementInference{Value: t.fallback, Kind: KindOther, Source: "fallback default"}
}

func (t *MeasurementTable) match(product *entities.Product) *compiledRule {
	name := normalizeText(product.Name)
	category := normalizeText(product.Category)

	for i := range t.rules {
		rule := &t.rules[i]
		for _, field := range rule.Fields {
			text := name
			if field == MatchCategory {
				text = category
			}
			if text != "" && rule.pattern.MatchString(text) {
				return rule
			}
		}
	}
	return nil
}

var unitAliases = map[string]string{
	"ml": "ml", "mililitro": "ml", "mililitros": "ml", "cc": "ml",
	"oz": "oz", "onza": "oz", "onzas": "oz", "ounce": "oz", "ounces": "oz",
	"g": "g", "gr": "g", "gramo": "g", "gramos": "g", "grams": "g",
}

// CanonicalUnit maps unit labels such as "Onzas" or "mililitros" to a short form
func CanonicalUnit(unit string) string {
	normalized := normalizeText(unit)
	if canonical, ok := unitAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// normalizeText lowercases and strips diacritics so "Frappé" matches "frappe"
func normalizeText(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, value)
	if err != nil {
		stripped = value
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
