package analytics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid analytics configuration")

// ScoreBand is the effect of landing in one branch of a scoring rule.
type ScoreBand struct {
	Delta    float64 // added to the overall score
	SubScore float64 // reported as the component sub-score
}

// CashFlowRule scores net cash flow relative to earnings.
type CashFlowRule struct {
	StrongMargin     float64 // net above this share of earnings is strong
	DeficitTolerance float64 // net above this share of earnings is a mild deficit
	Strong           ScoreBand
	Positive         ScoreBand
	Deficit          ScoreBand
	Crisis           ScoreBand
}

// EfficiencyRule scores the expense-to-earnings ratio.
type EfficiencyRule struct {
	ExcellentRatio float64
	GoodRatio      float64
	StrainedRatio  float64
	Excellent      ScoreBand
	Good           ScoreBand
	Strained       ScoreBand
	Overspent      ScoreBand
	NoEarnings     float64 // sub-score when there are no earnings
}

// GrowthRule scores the earnings trend over the most recent months.
type GrowthRule struct {
	MinMonths      int
	Window         int
	StrongTrend    float64
	ModerateTrend  float64
	DecliningTrend float64
	Strong         ScoreBand
	Moderate       ScoreBand
	Stable         ScoreBand
	Declining      ScoreBand
	NotEnoughData  float64 // sub-score when history is shorter than MinMonths
}

// StaffRule scores total salary relative to earnings.
type StaffRule struct {
	EfficientRatio float64
	HighRatio      float64
	EfficientDelta float64
	HighDelta      float64
}

// ScoringConfig holds every threshold used by ScoreHealth.
type ScoringConfig struct {
	CashFlow           CashFlowRule
	Efficiency         EfficiencyRule
	Growth             GrowthRule
	Staff              StaffRule
	BaseScore          float64
	MinScore           float64
	MaxScore           float64
	CategoryFocusShare float64 // share of expenses that makes one category the focus
}

// ForecastConfig controls PredictCashFlow.
type ForecastConfig struct {
	Horizon              int
	Window               int
	MinMonths            int
	HighConfidenceMonths int
	MidConfidenceMonths  int
	HighConfidence       float64
	MidConfidence        float64
	LowConfidence        float64
	GrowingEarningsTrend float64
	RisingExpenseTrend   float64
}

// InsightConfig controls GenerateInsights.
type InsightConfig struct {
	Benchmarks            map[string]float64 // fraction of total expenses, keyed by lowercase category
	DefaultBenchmark      float64
	VarianceThreshold     float64 // percent
	HighVarianceThreshold float64 // percent
	TrendWindow           int
	RisingExpenseTrend    float64
	FallingExpenseTrend   float64
}

// ChallengeConfig controls GenerateChallenges.
type ChallengeConfig struct {
	WeeklyReward        string
	CategoryReward      string
	WeeklySavingsRate   float64
	CategorySavingsRate float64
	WeeksPerMonth       float64
	WeeklyDays          int
	CategoryDays        int
}

// AnomalyConfig controls DetectAnomalies.
type AnomalyConfig struct {
	OutlierMultiplier       float64
	SevereOutlierMultiplier float64
}

// Config is the complete set of heuristic constants used by the engine.
type Config struct {
	Insights   InsightConfig
	Challenges ChallengeConfig
	Forecast   ForecastConfig
	Scoring    ScoringConfig
	Anomalies  AnomalyConfig
}

// DefaultBenchmarks returns the expected share of total expenses per category.
func DefaultBenchmarks() map[string]float64 {
	return map[string]float64{
		"food":      0.15,
		"transport": 0.10,
		"utilities": 0.08,
		"rent":      0.25,
		"staff":     0.30,
		"marketing": 0.05,
		"supplies":  0.12,
		"others":    0.10,
	}
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{
		Scoring: ScoringConfig{
			BaseScore:          50,
			MinScore:           0,
			MaxScore:           100,
			CategoryFocusShare: 0.30,
			CashFlow: CashFlowRule{
				StrongMargin:     0.2,
				DeficitTolerance: -0.1,
				Strong:           ScoreBand{Delta: 20, SubScore: 90},
				Positive:         ScoreBand{Delta: 10, SubScore: 70},
				Deficit:          ScoreBand{Delta: -10, SubScore: 40},
				Crisis:           ScoreBand{Delta: -20, SubScore: 20},
			},
			Efficiency: EfficiencyRule{
				ExcellentRatio: 0.6,
				GoodRatio:      0.8,
				StrainedRatio:  1.0,
				Excellent:      ScoreBand{Delta: 15, SubScore: 85},
				Good:           ScoreBand{Delta: 10, SubScore: 75},
				Strained:       ScoreBand{Delta: -5, SubScore: 50},
				Overspent:      ScoreBand{Delta: -15, SubScore: 25},
				NoEarnings:     50,
			},
			Growth: GrowthRule{
				MinMonths:      3,
				Window:         3,
				StrongTrend:    0.10,
				ModerateTrend:  0.05,
				DecliningTrend: -0.05,
				Strong:         ScoreBand{Delta: 15, SubScore: 90},
				Moderate:       ScoreBand{Delta: 10, SubScore: 80},
				Stable:         ScoreBand{Delta: 0, SubScore: 60},
				Declining:      ScoreBand{Delta: -10, SubScore: 40},
				NotEnoughData:  60,
			},
			Staff: StaffRule{
				EfficientRatio: 0.3,
				HighRatio:      0.5,
				EfficientDelta: 10,
				HighDelta:      -10,
			},
		},
		Forecast: ForecastConfig{
			Horizon:              3,
			Window:               3,
			MinMonths:            2,
			HighConfidenceMonths: 6,
			MidConfidenceMonths:  3,
			HighConfidence:       0.8,
			MidConfidence:        0.6,
			LowConfidence:        0.4,
			GrowingEarningsTrend: 0.05,
			RisingExpenseTrend:   0.05,
		},
		Insights: InsightConfig{
			Benchmarks:            DefaultBenchmarks(),
			DefaultBenchmark:      0.10,
			VarianceThreshold:     20,
			HighVarianceThreshold: 50,
			TrendWindow:           3,
			RisingExpenseTrend:    0.15,
			FallingExpenseTrend:   -0.10,
		},
		Challenges: ChallengeConfig{
			WeeklyReward:        "Smart Saver Badge",
			CategoryReward:      "Budget Master Badge",
			WeeklySavingsRate:   0.10,
			CategorySavingsRate: 0.15,
			WeeksPerMonth:       4,
			WeeklyDays:          7,
			CategoryDays:        30,
		},
		Anomalies: AnomalyConfig{
			OutlierMultiplier:       5,
			SevereOutlierMultiplier: 10,
		},
	}
}

// Benchmark returns the expected expense share for a category.
// Names are matched case-insensitively; unknown names get DefaultBenchmark.
func (c InsightConfig) Benchmark(category string) float64 {
	if share, ok := c.Benchmarks[strings.ToLower(strings.TrimSpace(category))]; ok {
		return share
	}
	return c.DefaultBenchmark
}

// Validate checks that the configuration can drive the engine.
func (c Config) Validate() error {
	if c.Anomalies.OutlierMultiplier <= 0 {
		return fmt.Errorf("%w: outlier multiplier must be positive", ErrInvalidConfig)
	}
	if c.Anomalies.SevereOutlierMultiplier < c.Anomalies.OutlierMultiplier {
		return fmt.Errorf("%w: severe outlier multiplier must be at least the outlier multiplier", ErrInvalidConfig)
	}
	if c.Forecast.Horizon <= 0 {
		return fmt.Errorf("%w: forecast horizon must be positive", ErrInvalidConfig)
	}
	if c.Forecast.Window <= 0 || c.Scoring.Growth.Window <= 0 || c.Insights.TrendWindow <= 0 {
		return fmt.Errorf("%w: trend windows must be positive", ErrInvalidConfig)
	}
	if c.Scoring.MinScore > c.Scoring.MaxScore {
		return fmt.Errorf("%w: min score exceeds max score", ErrInvalidConfig)
	}
	if c.Insights.DefaultBenchmark < 0 {
		return fmt.Errorf("%w: default benchmark must be non-negative", ErrInvalidConfig)
	}
	for name, share := range c.Insights.Benchmarks {
		if share < 0 {
			return fmt.Errorf("%w: benchmark for %q must be non-negative", ErrInvalidConfig, name)
		}
	}
	if c.Challenges.WeeksPerMonth <= 0 {
		return fmt.Errorf("%w: weeks per month must be positive", ErrInvalidConfig)
	}
	return nil
}
