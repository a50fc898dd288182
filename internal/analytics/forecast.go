package analytics

import (
	"time"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Forecast factors.
const (
	FactorGrowingEarnings = "Growing earnings trend"
	FactorRisingExpenses  = "Rising expense trend"
	FactorStaffSalaries   = "Staff salary commitments"
)

// PeriodLayout formats forecast period labels.
const PeriodLayout = "Jan 2006"

// PredictCashFlow extrapolates the net balance of the next cfg.Horizon months
// from the average and trend of the most recent months. It returns nil when
// fewer than cfg.MinMonths months of history exist.
func PredictCashFlow(monthly []MonthlyAggregate, staff []model.StaffCostRecord, now time.Time, cfg ForecastConfig) []CashFlowPrediction {
	if len(monthly) < cfg.MinMonths {
		return nil
	}

	window := lastMonths(monthly, cfg.Window)
	earnings := earningsOf(window)
	expenses := expensesOf(window)

	avgEarnings := mean(earnings)
	avgExpenses := mean(expenses)
	earningsTrend := Trend(earnings)
	expensesTrend := Trend(expenses)

	confidence := confidenceFor(len(monthly), cfg)

	var factors []string
	if earningsTrend > cfg.GrowingEarningsTrend {
		factors = append(factors, FactorGrowingEarnings)
	}
	if expensesTrend > cfg.RisingExpenseTrend {
		factors = append(factors, FactorRisingExpenses)
	}
	if len(staff) > 0 {
		factors = append(factors, FactorStaffSalaries)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	predictions := make([]CashFlowPrediction, 0, cfg.Horizon)
	for i := 1; i <= cfg.Horizon; i++ {
		step := float64(i)
		predictedEarnings := avgEarnings * (1 + earningsTrend*step)
		predictedExpenses := avgExpenses * (1 + expensesTrend*step)

		stepFactors := make([]string, len(factors))
		copy(stepFactors, factors)

		predictions = append(predictions, CashFlowPrediction{
			Period:           monthStart.AddDate(0, i, 0).Format(PeriodLayout),
			PredictedBalance: predictedEarnings - predictedExpenses,
			Confidence:       confidence,
			Factors:          stepFactors,
		})
	}
	return predictions
}

// confidenceFor maps the number of months of history to a confidence tier.
func confidenceFor(months int, cfg ForecastConfig) float64 {
	switch {
	case months >= cfg.HighConfidenceMonths:
		return cfg.HighConfidence
	case months >= cfg.MidConfidenceMonths:
		return cfg.MidConfidence
	default:
		return cfg.LowConfidence
	}
}
