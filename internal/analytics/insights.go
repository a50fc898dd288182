package analytics

import (
	"fmt"
	"math"
)

// GenerateInsights compares category spend with benchmarks and looks for a
// sharp change in the expense trend.
func GenerateInsights(categories []CategoryAggregate, totalExpenses float64, monthly []MonthlyAggregate, cfg InsightConfig) []Insight {
	insights := benchmarkInsights(categories, totalExpenses, cfg)
	if trendInsight, ok := expenseTrendInsight(monthly, cfg); ok {
		insights = append(insights, trendInsight)
	}
	return insights
}

func benchmarkInsights(categories []CategoryAggregate, totalExpenses float64, cfg InsightConfig) []Insight {
	var insights []Insight
	for _, c := range categories {
		benchmark := cfg.Benchmark(c.Category) * totalExpenses
		if benchmark == 0 {
			continue
		}

		variance := (c.Amount - benchmark) * 100 / benchmark
		if math.Abs(variance) <= cfg.VarianceThreshold {
			continue
		}

		priority := PriorityMedium
		if math.Abs(variance) > cfg.HighVarianceThreshold {
			priority = PriorityHigh
		}

		if variance > 0 {
			insights = append(insights, Insight{
				Title: fmt.Sprintf("High %s Spending", c.Category),
				Description: fmt.Sprintf("You spent %.2f on %s, %.0f%% above the typical %.2f for a business like yours",
					c.Amount, c.Category, variance, benchmark),
				Type:       InsightWarning,
				Priority:   priority,
				Actionable: true,
				Action:     fmt.Sprintf("Review %s spending for costs you can cut or renegotiate", c.Category),
			})
			continue
		}

		insights = append(insights, Insight{
			Title: fmt.Sprintf("Efficient %s Spending", c.Category),
			Description: fmt.Sprintf("Your %s spending of %.2f is %.0f%% below the typical %.2f",
				c.Category, c.Amount, -variance, benchmark),
			Type:     InsightPositive,
			Priority: priority,
		})
	}
	return insights
}

func expenseTrendInsight(monthly []MonthlyAggregate, cfg InsightConfig) (Insight, bool) {
	if len(monthly) < cfg.TrendWindow {
		return Insight{}, false
	}
	trend := Trend(expensesOf(lastMonths(monthly, cfg.TrendWindow)))

	switch {
	case trend > cfg.RisingExpenseTrend:
		return Insight{
			Title:       "Rising Expenses Alert",
			Description: fmt.Sprintf("Expenses have been climbing over the last %d months", cfg.TrendWindow),
			Type:        InsightAlert,
			Priority:    PriorityHigh,
			Actionable:  true,
			Action:      "Identify which costs are growing and set a monthly spending cap",
		}, true
	case trend < cfg.FallingExpenseTrend:
		return Insight{
			Title:       "Expense Control Success",
			Description: fmt.Sprintf("Expenses have been falling over the last %d months", cfg.TrendWindow),
			Type:        InsightPositive,
			Priority:    PriorityLow,
		}, true
	}
	return Insight{}, false
}
