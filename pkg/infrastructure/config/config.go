package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vsinha/eventquote/pkg/application/services/pricing"
	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/services"
)

var log = logging.MustGetLogger("config")

const (
	defaultLogLevel = "INFO"
	envPrefix       = "QUOTE"
)

// Config is the runtime configuration of the quoting tool
type Config struct {
	LogLevel string
	Policy   pricing.Policy
}

// fileConfig mirrors the config file. Amounts are read as floats and
// converted to decimals once loaded.
type fileConfig struct {
	LogLevel            string             `mapstructure:"log-level"`
	Margins             map[string]float64 `mapstructure:"margins"`
	RetentionPercentage float64            `mapstructure:"retention-percentage"`
	PaymentTermDays     map[string]int     `mapstructure:"payment-term-days"`
	AdvanceThreshold    float64            `mapstructure:"advance-threshold"`
	AdvancePercentage   float64            `mapstructure:"advance-percentage"`
	CurrencyPlaces      int32              `mapstructure:"currency-places"`
	MinimumHours        float64            `mapstructure:"minimum-hours"`
	MaxSingleDayHours   float64            `mapstructure:"max-single-day-hours"`
	MaxMultiDayHours    float64            `mapstructure:"max-multi-day-hours"`
	MaxMargin           float64            `mapstructure:"max-margin"`
	Measurement         measurementConfig  `mapstructure:"measurement"`
}

type measurementConfig struct {
	Fallback float64      `mapstructure:"fallback"`
	Rules    []ruleConfig `mapstructure:"rules"`
	Bands    []bandConfig `mapstructure:"bands"`
}

type ruleConfig struct {
	Kind     string             `mapstructure:"kind"`
	Fields   []string           `mapstructure:"fields"`
	Keywords []string           `mapstructure:"keywords"`
	Values   map[string]float64 `mapstructure:"values"`
	Default  float64            `mapstructure:"default"`
}

type bandConfig struct {
	MaxQuantity *float64 `mapstructure:"max-quantity"`
	Value       float64  `mapstructure:"value"`
}

// Load reads the configuration. A .env file is loaded first when present,
// then the optional config file, and QUOTE_* environment variables take
// precedence over both. An empty path uses only defaults and environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warningf("could not load .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	policy, err := fc.policy()
	if err != nil {
		return nil, err
	}

	return &Config{LogLevel: fc.LogLevel, Policy: policy}, nil
}

func setDefaults(v *viper.Viper) {
	defaults := pricing.DefaultPolicy()

	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("retention-percentage", defaults.DefaultRetentionPercentage.InexactFloat64())
	v.SetDefault("advance-threshold", defaults.AdvanceThreshold.InexactFloat64())
	v.SetDefault("advance-percentage", defaults.AdvancePercentage.InexactFloat64())
	v.SetDefault("currency-places", defaults.CurrencyPlaces)
	v.SetDefault("minimum-hours", defaults.MinimumHours.InexactFloat64())
	v.SetDefault("max-single-day-hours", defaults.Limits.MaxSingleDayHours.InexactFloat64())
	v.SetDefault("max-multi-day-hours", defaults.Limits.MaxMultiDayHours.InexactFloat64())
	v.SetDefault("max-margin", defaults.Limits.MaxMargin.InexactFloat64())
	v.SetDefault("measurement.fallback", defaults.FallbackMeasurement.InexactFloat64())
}

func (fc fileConfig) policy() (pricing.Policy, error) {
	policy := pricing.DefaultPolicy()

	for clientType, margin := range fc.Margins {
		policy.DefaultMargins[entities.ClientType(clientType)] = decimal.NewFromFloat(margin)
	}
	for clientType, days := range fc.PaymentTermDays {
		policy.PaymentTermDays[entities.ClientType(clientType)] = days
	}

	policy.DefaultRetentionPercentage = decimal.NewFromFloat(fc.RetentionPercentage)
	policy.AdvanceThreshold = decimal.NewFromFloat(fc.AdvanceThreshold)
	policy.AdvancePercentage = decimal.NewFromFloat(fc.AdvancePercentage)
	policy.CurrencyPlaces = fc.CurrencyPlaces
	policy.MinimumHours = decimal.NewFromFloat(fc.MinimumHours)
	policy.Limits.MaxSingleDayHours = decimal.NewFromFloat(fc.MaxSingleDayHours)
	policy.Limits.MaxMultiDayHours = decimal.NewFromFloat(fc.MaxMultiDayHours)
	policy.Limits.MaxMargin = decimal.NewFromFloat(fc.MaxMargin)
	policy.FallbackMeasurement = decimal.NewFromFloat(fc.Measurement.Fallback)

	if len(fc.Measurement.Rules) > 0 {
		rules, err := fc.Measurement.rules()
		if err != nil {
			return pricing.Policy{}, err
		}
		policy.MeasurementRules = rules
	}
	if len(fc.Measurement.Bands) > 0 {
		policy.QuantityBands = fc.Measurement.bands()
	}

	if err := policy.Validate(); err != nil {
		return pricing.Policy{}, fmt.Errorf("invalid policy in config: %w", err)
	}
	return policy, nil
}

func (mc measurementConfig) rules() ([]services.MeasurementRule, error) {
	rules := make([]services.MeasurementRule, 0, len(mc.Rules))
	for i, rc := range mc.Rules {
		kind, err := services.ParseProductKind(rc.Kind)
		if err != nil {
			return nil, fmt.Errorf("measurement rule %d: %w", i, err)
		}

		fields := make([]services.MatchField, 0, len(rc.Fields))
		for _, name := range rc.Fields {
			field, err := services.ParseMatchField(name)
			if err != nil {
				return nil, fmt.Errorf("measurement rule %d: %w", i, err)
			}
			fields = append(fields, field)
		}

		values := make(map[string]decimal.Decimal, len(rc.Values))
		for unit, value := range rc.Values {
			values[services.CanonicalUnit(unit)] = decimal.NewFromFloat(value)
		}

		rules = append(rules, services.MeasurementRule{
			Kind:     kind,
			Fields:   fields,
			Keywords: rc.Keywords,
			Values:   values,
			Default:  decimal.NewFromFloat(rc.Default),
		})
	}
	return rules, nil
}

func (mc measurementConfig) bands() []services.QuantityBand {
	bands := make([]services.QuantityBand, 0, len(mc.Bands))
	for _, bc := range mc.Bands {
		band := services.QuantityBand{Value: decimal.NewFromFloat(bc.Value)}
		if bc.MaxQuantity != nil {
			band.MaxQuantity = decimal.NewNullDecimal(decimal.NewFromFloat(*bc.MaxQuantity))
		}
		bands = append(bands, band)
	}
	return bands
}
