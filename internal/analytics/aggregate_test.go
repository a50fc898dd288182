package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate(t *testing.T) {
	now := day(2024, 6, 15)
	entries := []model.LedgerEntry{
		{ID: "1", Date: day(2024, 3, 2), Amount: 1000, Direction: model.DirectionIn},
		{ID: "2", Date: day(2024, 1, 10), Amount: 400, Direction: model.DirectionIn},
		{ID: "3", Date: day(2024, 1, 11), Amount: 150, Direction: model.DirectionOut, Category: "rent"},
		{ID: "4", Date: day(2024, 3, 5), Amount: 50, Direction: model.DirectionOut, Category: "food"},
		{ID: "5", Date: day(2024, 3, 6), Amount: 25, Direction: model.DirectionOut, Category: ""},
		{ID: "6", Date: day(2024, 3, 7), Amount: 75, Direction: model.DirectionOut, Category: "rent"},
	}

	agg := Aggregate(entries, now)

	assert.Equal(t, 6, agg.EntryCount)
	assert.InDelta(t, 1400, agg.TotalEarnings, 1e-9)
	assert.InDelta(t, 300, agg.TotalExpenses, 1e-9)

	require.Len(t, agg.Monthly, 2)
	assert.Equal(t, MonthlyAggregate{Month: "2024-01", Earnings: 400, Expenses: 150}, agg.Monthly[0])
	assert.Equal(t, MonthlyAggregate{Month: "2024-03", Earnings: 1000, Expenses: 150}, agg.Monthly[1])

	assert.Equal(t, []CategoryAggregate{
		{Category: "rent", Amount: 225},
		{Category: "food", Amount: 50},
		{Category: model.DefaultCategory, Amount: 25},
	}, agg.Categories)
}

func TestAggregate_UndatedEntriesUseCurrentMonth(t *testing.T) {
	now := day(2024, 6, 15)
	entries := []model.LedgerEntry{
		{ID: "1", Date: day(2024, 5, 1), Amount: 10, Direction: model.DirectionIn},
		{ID: "2", Amount: 20, Direction: model.DirectionIn},
	}

	agg := Aggregate(entries, now)

	require.Len(t, agg.Monthly, 2)
	assert.Equal(t, "2024-05", agg.Monthly[0].Month)
	assert.Equal(t, "2024-06", agg.Monthly[1].Month)
	assert.InDelta(t, 20, agg.Monthly[1].Earnings, 1e-9)
}

func TestAggregate_ExactSums(t *testing.T) {
	entries := []model.LedgerEntry{
		{ID: "1", Date: day(2024, 1, 1), Amount: 0.1, Direction: model.DirectionOut},
		{ID: "2", Date: day(2024, 1, 2), Amount: 0.2, Direction: model.DirectionOut},
	}

	agg := Aggregate(entries, day(2024, 1, 31))

	assert.Equal(t, 0.3, agg.TotalExpenses)
	assert.Equal(t, 0.3, agg.Categories[0].Amount)
}

func TestAggregate_SkipsInvalidAmounts(t *testing.T) {
	entries := []model.LedgerEntry{
		{ID: "ok", Date: day(2024, 1, 5), Amount: 100, Direction: model.DirectionIn},
		{ID: "nan", Date: day(2024, 1, 6), Amount: math.NaN(), Direction: model.DirectionOut},
		{ID: "inf", Date: day(2024, 1, 7), Amount: math.Inf(1), Direction: model.DirectionOut},
		{ID: "neg", Date: day(2024, 1, 8), Amount: -20, Direction: model.DirectionOut},
	}

	var agg Aggregates
	require.NotPanics(t, func() { agg = Aggregate(entries, day(2024, 2, 1)) })

	assert.Equal(t, 1, agg.EntryCount)
	assert.Equal(t, 100.0, agg.TotalEarnings)
	assert.Zero(t, agg.TotalExpenses)
	assert.Empty(t, agg.Categories)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, day(2024, 1, 1))

	assert.Empty(t, agg.Monthly)
	assert.Empty(t, agg.Categories)
	assert.Zero(t, agg.TotalEarnings)
	assert.Zero(t, agg.TotalExpenses)
}

func TestTopCategory(t *testing.T) {
	_, ok := TopCategory(nil)
	assert.False(t, ok)

	top, ok := TopCategory([]CategoryAggregate{
		{Category: "food", Amount: 100},
		{Category: "rent", Amount: 300},
		{Category: "staff", Amount: 300},
	})
	require.True(t, ok)
	assert.Equal(t, "rent", top.Category)
}
