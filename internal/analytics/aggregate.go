package analytics

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

type monthTotals struct {
	earnings decimal.Decimal
	expenses decimal.Decimal
}

// Aggregate groups entries by month and by expense category.
//
// Entries without a usable date are counted in now's month instead of being
// dropped. Entries whose amount is negative, NaN or infinite are skipped and
// not counted. Monthly totals come back in ascending month order; categories
// keep the order in which they were first seen.
func Aggregate(entries []model.LedgerEntry, now time.Time) Aggregates {
	months := make(map[string]*monthTotals)
	categoryTotals := make(map[string]decimal.Decimal)
	var categoryOrder []string
	totalIn := decimal.Zero
	totalOut := decimal.Zero
	undated := 0
	counted := 0

	for i := range entries {
		e := &entries[i]
		if !model.IsValidAmount(e.Amount) {
			continue
		}
		counted++

		date := e.Date
		if date.IsZero() {
			date = now
			undated++
		}
		key := date.Format(model.MonthLayout)

		bucket, ok := months[key]
		if !ok {
			bucket = &monthTotals{earnings: decimal.Zero, expenses: decimal.Zero}
			months[key] = bucket
		}

		amount := decimal.NewFromFloat(e.Amount)
		if e.Direction == model.DirectionIn {
			bucket.earnings = bucket.earnings.Add(amount)
			totalIn = totalIn.Add(amount)
			continue
		}

		bucket.expenses = bucket.expenses.Add(amount)
		totalOut = totalOut.Add(amount)

		category := e.CategoryOrDefault()
		if _, seen := categoryTotals[category]; !seen {
			categoryOrder = append(categoryOrder, category)
			categoryTotals[category] = decimal.Zero
		}
		categoryTotals[category] = categoryTotals[category].Add(amount)
	}

	if undated > 0 {
		slog.Debug("Entries without a date counted in current month",
			"count", undated,
			"month", now.Format(model.MonthLayout))
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	monthly := make([]MonthlyAggregate, 0, len(keys))
	for _, k := range keys {
		monthly = append(monthly, MonthlyAggregate{
			Month:    k,
			Earnings: toFloat(months[k].earnings),
			Expenses: toFloat(months[k].expenses),
		})
	}

	categories := make([]CategoryAggregate, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		categories = append(categories, CategoryAggregate{
			Category: name,
			Amount:   toFloat(categoryTotals[name]),
		})
	}

	return Aggregates{
		TotalEarnings: toFloat(totalIn),
		TotalExpenses: toFloat(totalOut),
		Monthly:       monthly,
		Categories:    categories,
		EntryCount:    counted,
	}
}

// TopCategory returns the highest-spend category. Ties go to the one seen first.
func TopCategory(categories []CategoryAggregate) (CategoryAggregate, bool) {
	if len(categories) == 0 {
		return CategoryAggregate{}, false
	}
	top := categories[0]
	for _, c := range categories[1:] {
		if c.Amount > top.Amount {
			top = c
		}
	}
	return top, true
}

// lastMonths returns at most n trailing months.
func lastMonths(monthly []MonthlyAggregate, n int) []MonthlyAggregate {
	if n <= 0 || len(monthly) <= n {
		return monthly
	}
	return monthly[len(monthly)-n:]
}

func earningsOf(monthly []MonthlyAggregate) []float64 {
	values := make([]float64, len(monthly))
	for i, m := range monthly {
		values[i] = m.Earnings
	}
	return values
}

func expensesOf(monthly []MonthlyAggregate) []float64 {
	values := make([]float64, len(monthly))
	for i, m := range monthly {
		values[i] = m.Expenses
	}
	return values
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
