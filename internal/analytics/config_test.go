package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		errMsg  string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "zero outlier multiplier",
			mutate:  func(c *Config) { c.Anomalies.OutlierMultiplier = 0 },
			wantErr: true,
			errMsg:  "outlier multiplier must be positive",
		},
		{
			name:    "severe below regular multiplier",
			mutate:  func(c *Config) { c.Anomalies.SevereOutlierMultiplier = 2 },
			wantErr: true,
			errMsg:  "severe outlier multiplier",
		},
		{
			name:    "zero horizon",
			mutate:  func(c *Config) { c.Forecast.Horizon = 0 },
			wantErr: true,
			errMsg:  "forecast horizon",
		},
		{
			name:    "zero trend window",
			mutate:  func(c *Config) { c.Insights.TrendWindow = 0 },
			wantErr: true,
			errMsg:  "trend windows",
		},
		{
			name:    "inverted score range",
			mutate:  func(c *Config) { c.Scoring.MinScore = 101 },
			wantErr: true,
			errMsg:  "min score exceeds max score",
		},
		{
			name:    "negative benchmark",
			mutate:  func(c *Config) { c.Insights.Benchmarks["rent"] = -0.1 },
			wantErr: true,
			errMsg:  `benchmark for "rent"`,
		},
		{
			name:    "zero weeks per month",
			mutate:  func(c *Config) { c.Challenges.WeeksPerMonth = 0 },
			wantErr: true,
			errMsg:  "weeks per month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig_IndependentBenchmarks(t *testing.T) {
	a := DefaultConfig()
	a.Insights.Benchmarks["rent"] = 0.9

	assert.Equal(t, 0.25, DefaultConfig().Insights.Benchmarks["rent"])
}
