package analytics

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// ErrInvalidEntry is returned when an entry falls outside the ledger schema.
var ErrInvalidEntry = errors.New("invalid ledger entry")

// Engine runs the full analytics pipeline. It holds no state between runs
// and is safe for concurrent use.
type Engine struct {
	now func() time.Time
	cfg Config
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock sets the clock used for undated entries and forecast labels.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. It returns an error if cfg fails validation.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run aggregates entries and runs every analysis over the result.
// An empty ledger is valid and produces the documented fallback values.
func (e *Engine) Run(entries []model.LedgerEntry, staff []model.StaffCostRecord) (*Report, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	now := e.now()
	return e.analyze(Aggregate(entries, now), entries, staff, now), nil
}

// Analyze runs the analyses over aggregates computed elsewhere. entries is
// only used for anomaly detection.
func (e *Engine) Analyze(agg Aggregates, entries []model.LedgerEntry, staff []model.StaffCostRecord) (*Report, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	return e.analyze(agg, entries, staff, e.now()), nil
}

func (e *Engine) analyze(agg Aggregates, entries []model.LedgerEntry, staff []model.StaffCostRecord, now time.Time) *Report {
	slog.Debug("Aggregated ledger",
		"entries", agg.EntryCount,
		"months", len(agg.Monthly),
		"categories", len(agg.Categories))

	anomalies := DetectAnomalies(entries, e.cfg.Anomalies)
	slog.Debug("Detected anomalies", "count", len(anomalies))

	health := ScoreHealth(HealthInput{
		TotalEarnings: agg.TotalEarnings,
		TotalExpenses: agg.TotalExpenses,
		Monthly:       agg.Monthly,
		Categories:    agg.Categories,
		Staff:         staff,
	}, e.cfg.Scoring)
	slog.Debug("Scored business health", "score", health.OverallScore)

	forecast := PredictCashFlow(agg.Monthly, staff, now, e.cfg.Forecast)
	insights := GenerateInsights(agg.Categories, agg.TotalExpenses, agg.Monthly, e.cfg.Insights)
	challenges := GenerateChallenges(agg.Monthly, agg.Categories, e.cfg.Challenges)

	slog.Debug("Generated report",
		"predictions", len(forecast),
		"insights", len(insights),
		"challenges", len(challenges))

	return &Report{
		GeneratedAt: now,
		Aggregates:  agg,
		Health:      health,
		Forecast:    nonNil(forecast),
		Insights:    nonNil(insights),
		Anomalies:   nonNil(anomalies),
		Challenges:  nonNil(challenges),
	}
}

func validateEntries(entries []model.LedgerEntry) error {
	for i := range entries {
		e := &entries[i]
		if !e.Direction.IsValid() {
			return fmt.Errorf("%w: entry %d (%s) has direction %q", ErrInvalidEntry, i, e.ID, e.Direction)
		}
		if !model.IsValidAmount(e.Amount) {
			return fmt.Errorf("%w: entry %d (%s) has amount %v", ErrInvalidEntry, i, e.ID, e.Amount)
		}
	}
	return nil
}

// nonNil keeps empty sections as [] rather than null in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
