package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(DefaultConfig(), WithClock(fixedClock))
	require.NoError(t, err)
	return engine
}

// sampleLedger is six months of a small shop with rent, food, and a duplicate.
func sampleLedger() ([]model.LedgerEntry, []model.StaffCostRecord) {
	var entries []model.LedgerEntry
	for m := 0; m < 6; m++ {
		month := day(2024, 1, 1).AddDate(0, m, 0)
		entries = append(entries,
			model.LedgerEntry{ID: fmt.Sprintf("sale-%d", m), Date: month.AddDate(0, 0, 4), Amount: 5000 + float64(m)*250, Direction: model.DirectionIn, Description: "sales"},
			model.LedgerEntry{ID: fmt.Sprintf("rent-%d", m), Date: month, Amount: 1500, Direction: model.DirectionOut, Category: "rent", Description: "shop rent"},
			model.LedgerEntry{ID: fmt.Sprintf("food-%d", m), Date: month.AddDate(0, 0, 9), Amount: 400, Direction: model.DirectionOut, Category: "food", Description: "stock"},
			model.LedgerEntry{ID: fmt.Sprintf("misc-%d", m), Date: month.AddDate(0, 0, 12), Amount: 120, Direction: model.DirectionOut, Description: "misc"},
		)
	}
	entries = append(entries, model.LedgerEntry{
		ID: "food-5-again", Date: day(2024, 6, 10), Amount: 400, Direction: model.DirectionOut, Category: "food", Description: "stock",
	})
	staff := []model.StaffCostRecord{
		{Month: "2024-05", StaffCount: 2, TotalSalary: 800},
		{Month: "2024-06", StaffCount: 2, TotalSalary: 800},
	}
	return entries, staff
}

func TestEngine_Run(t *testing.T) {
	engine := newTestEngine(t)
	entries, staff := sampleLedger()

	report, err := engine.Run(entries, staff)
	require.NoError(t, err)

	assert.Equal(t, fixedClock(), report.GeneratedAt)
	assert.Len(t, report.Aggregates.Monthly, 6)
	assert.Equal(t, len(entries), report.Aggregates.EntryCount)

	assert.GreaterOrEqual(t, report.Health.OverallScore, 0.0)
	assert.LessOrEqual(t, report.Health.OverallScore, 100.0)
	assert.Equal(t, 90.0, report.Health.CashFlowHealth)

	require.Len(t, report.Forecast, 3)
	assert.Equal(t, "Aug 2024", report.Forecast[0].Period)
	assert.Equal(t, 0.8, report.Forecast[0].Confidence)
	assert.Contains(t, report.Forecast[0].Factors, FactorStaffSalaries)

	require.NotEmpty(t, report.Anomalies)
	assert.Equal(t, AnomalyDuplicate, report.Anomalies[0].Kind)
	assert.Equal(t, []string{"food-5", "food-5-again"}, report.Anomalies[0].RelatedEntryIDs)

	require.Len(t, report.Challenges, 2)
	assert.Equal(t, "rent", report.Challenges[1].Category)
}

func TestEngine_RunIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	entries, staff := sampleLedger()

	first, err := engine.Run(entries, staff)
	require.NoError(t, err)
	second, err := engine.Run(entries, staff)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEngine_RunConcurrently(t *testing.T) {
	engine := newTestEngine(t)
	entries, staff := sampleLedger()

	want, err := engine.Run(entries, staff)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Report, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Run(entries, staff)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngine_RunEmptyLedger(t *testing.T) {
	report, err := newTestEngine(t).Run(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 60.0, report.Health.GrowthTrend)
	assert.Equal(t, 50.0, report.Health.ExpenseEfficiency)
	assert.NotNil(t, report.Forecast)
	assert.Empty(t, report.Forecast)
	assert.Empty(t, report.Anomalies)
	assert.Empty(t, report.Insights)
	assert.Empty(t, report.Challenges)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"forecast":[]`)
}

func TestEngine_RunRejectsInvalidEntries(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		errMsg  string
		entries []model.LedgerEntry
	}{
		{
			name:    "unknown direction",
			entries: []model.LedgerEntry{{ID: "x", Amount: 10, Direction: "SIDEWAYS"}},
			errMsg:  `direction "SIDEWAYS"`,
		},
		{
			name:    "missing direction",
			entries: []model.LedgerEntry{{ID: "x", Amount: 10}},
			errMsg:  "entry 0 (x)",
		},
		{
			name: "negative amount",
			entries: []model.LedgerEntry{
				{ID: "ok", Amount: 10, Direction: model.DirectionIn},
				{ID: "neg", Amount: -5, Direction: model.DirectionOut},
			},
			errMsg: "entry 1 (neg) has amount -5",
		},
		{
			name:    "infinite amount",
			entries: []model.LedgerEntry{{ID: "inf", Amount: math.Inf(1), Direction: model.DirectionOut}},
			errMsg:  "entry 0 (inf) has amount +Inf",
		},
		{
			name:    "negative infinite amount",
			entries: []model.LedgerEntry{{ID: "ninf", Amount: math.Inf(-1), Direction: model.DirectionIn}},
			errMsg:  "entry 0 (ninf) has amount -Inf",
		},
		{
			name:    "NaN amount",
			entries: []model.LedgerEntry{{ID: "nan", Amount: math.NaN(), Direction: model.DirectionOut}},
			errMsg:  "entry 0 (nan) has amount NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := engine.Run(tt.entries, nil)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, ErrInvalidEntry)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEngine_Analyze(t *testing.T) {
	engine := newTestEngine(t)
	agg := Aggregates{
		TotalEarnings: 1000,
		TotalExpenses: 700,
		Monthly:       months(300, 300, 400),
		Categories:    []CategoryAggregate{{Category: "rent", Amount: 700}},
	}

	report, err := engine.Analyze(agg, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, agg, report.Aggregates)
	assert.Equal(t, 90.0, report.Health.CashFlowHealth)
	assert.Equal(t, 0.6, report.Forecast[0].Confidence)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forecast.Horizon = 0

	engine, err := New(cfg)
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
