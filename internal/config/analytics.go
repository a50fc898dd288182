package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledger-pulse/internal/analytics"
	"github.com/Veraticus/ledger-pulse/internal/common"
)

// Viper keys for analytics overrides.
const (
	KeyOutlierMultiplier       = "analytics.outlier_multiplier"
	KeySevereOutlierMultiplier = "analytics.severe_outlier_multiplier"
	KeyForecastHorizon         = "analytics.forecast_horizon"
	KeyVarianceThreshold       = "analytics.variance_threshold"
	KeyHighVarianceThreshold   = "analytics.high_variance_threshold"
	KeyDefaultBenchmark        = "analytics.default_benchmark"
	KeyBenchmarks              = "analytics.benchmarks"
	KeyWeeklyReward            = "analytics.challenges.weekly_reward"
	KeyCategoryReward          = "analytics.challenges.category_reward"
)

// LoadAnalytics overlays any analytics settings found in v on the default
// engine configuration and validates the result.
func LoadAnalytics(v *viper.Viper) (analytics.Config, error) {
	cfg := analytics.DefaultConfig()

	if v.IsSet(KeyOutlierMultiplier) {
		cfg.Anomalies.OutlierMultiplier = v.GetFloat64(KeyOutlierMultiplier)
	}
	if v.IsSet(KeySevereOutlierMultiplier) {
		cfg.Anomalies.SevereOutlierMultiplier = v.GetFloat64(KeySevereOutlierMultiplier)
	}
	if v.IsSet(KeyForecastHorizon) {
		cfg.Forecast.Horizon = v.GetInt(KeyForecastHorizon)
	}
	if v.IsSet(KeyVarianceThreshold) {
		cfg.Insights.VarianceThreshold = v.GetFloat64(KeyVarianceThreshold)
	}
	if v.IsSet(KeyHighVarianceThreshold) {
		cfg.Insights.HighVarianceThreshold = v.GetFloat64(KeyHighVarianceThreshold)
	}
	if v.IsSet(KeyDefaultBenchmark) {
		cfg.Insights.DefaultBenchmark = v.GetFloat64(KeyDefaultBenchmark)
	}
	if v.IsSet(KeyWeeklyReward) {
		cfg.Challenges.WeeklyReward = v.GetString(KeyWeeklyReward)
	}
	if v.IsSet(KeyCategoryReward) {
		cfg.Challenges.CategoryReward = v.GetString(KeyCategoryReward)
	}

	// Benchmarks merge into the defaults; a category set here replaces only itself.
	for name, raw := range v.GetStringMap(KeyBenchmarks) {
		share, err := cast.ToFloat64E(raw)
		if err != nil {
			return analytics.Config{}, fmt.Errorf("%w: benchmark %q: %w", common.ErrInvalidConfig, name, err)
		}
		cfg.Insights.Benchmarks[strings.ToLower(name)] = share
	}

	if err := cfg.Validate(); err != nil {
		return analytics.Config{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return cfg, nil
}
