package analytics

import (
	"fmt"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Risk and opportunity notes produced by ScoreHealth.
const (
	RiskNegativeCashFlow = "Negative cash flow detected"
	RiskSevereCashFlow   = "Severe cash flow crisis"
	RiskHighExpenseRatio = "High expense ratio - expenses are close to earnings"
	RiskExpensesExceed   = "Expenses exceed earnings"
	RiskDecliningTrend   = "Declining earnings trend"
	RiskHighStaffCosts   = "High staff costs relative to earnings"

	OpportunityExpenseManagement = "Excellent expense management - keep costs at this level"
	OpportunityStrongGrowth      = "Strong growth trend - consider reinvesting in the business"
	OpportunityStaffUtilization  = "Efficient staff utilization"
)

// HealthInput is everything ScoreHealth looks at.
type HealthInput struct {
	Monthly       []MonthlyAggregate
	Categories    []CategoryAggregate
	Staff         []model.StaffCostRecord
	TotalEarnings float64
	TotalExpenses float64
}

type healthScore struct {
	metrics HealthMetrics
	score   float64
}

func (h *healthScore) apply(band ScoreBand) float64 {
	h.score += band.Delta
	return band.SubScore
}

func (h *healthScore) risk(note string) {
	h.metrics.RiskFactors = append(h.metrics.RiskFactors, note)
}

func (h *healthScore) opportunity(note string) {
	h.metrics.Opportunities = append(h.metrics.Opportunities, note)
}

// ScoreHealth combines cash flow, expense efficiency, growth, and staff cost
// into one score. Each rule adds to or subtracts from the base score
// independently; the total is clamped to [MinScore, MaxScore].
func ScoreHealth(in HealthInput, cfg ScoringConfig) HealthMetrics {
	h := &healthScore{
		score: cfg.BaseScore,
		metrics: HealthMetrics{
			RiskFactors:   []string{},
			Opportunities: []string{},
		},
	}

	h.metrics.CashFlowHealth = h.scoreCashFlow(in.TotalEarnings, in.TotalExpenses, cfg.CashFlow)
	h.metrics.ExpenseEfficiency = h.scoreEfficiency(in.TotalEarnings, in.TotalExpenses, cfg.Efficiency)
	h.metrics.GrowthTrend = h.scoreGrowth(in.Monthly, cfg.Growth)
	h.scoreStaff(in.Staff, in.TotalEarnings, cfg.Staff)

	if top, ok := TopCategory(in.Categories); ok && top.Amount > in.TotalExpenses*cfg.CategoryFocusShare {
		h.opportunity(fmt.Sprintf("Focus on optimizing %s expenses for maximum impact", top.Category))
	}

	h.metrics.OverallScore = clamp(h.score, cfg.MinScore, cfg.MaxScore)
	return h.metrics
}

func (h *healthScore) scoreCashFlow(earnings, expenses float64, rule CashFlowRule) float64 {
	net := earnings - expenses
	switch {
	case net > rule.StrongMargin*earnings:
		return h.apply(rule.Strong)
	case net > 0:
		return h.apply(rule.Positive)
	case net > rule.DeficitTolerance*earnings:
		h.risk(RiskNegativeCashFlow)
		return h.apply(rule.Deficit)
	default:
		h.risk(RiskSevereCashFlow)
		return h.apply(rule.Crisis)
	}
}

func (h *healthScore) scoreEfficiency(earnings, expenses float64, rule EfficiencyRule) float64 {
	if earnings <= 0 {
		return rule.NoEarnings
	}
	ratio := expenses / earnings
	switch {
	case ratio < rule.ExcellentRatio:
		h.opportunity(OpportunityExpenseManagement)
		return h.apply(rule.Excellent)
	case ratio < rule.GoodRatio:
		return h.apply(rule.Good)
	case ratio < rule.StrainedRatio:
		h.risk(RiskHighExpenseRatio)
		return h.apply(rule.Strained)
	default:
		h.risk(RiskExpensesExceed)
		return h.apply(rule.Overspent)
	}
}

func (h *healthScore) scoreGrowth(monthly []MonthlyAggregate, rule GrowthRule) float64 {
	if len(monthly) < rule.MinMonths {
		return rule.NotEnoughData
	}
	trend := Trend(earningsOf(lastMonths(monthly, rule.Window)))
	switch {
	case trend > rule.StrongTrend:
		h.opportunity(OpportunityStrongGrowth)
		return h.apply(rule.Strong)
	case trend > rule.ModerateTrend:
		return h.apply(rule.Moderate)
	case trend > rule.DecliningTrend:
		return h.apply(rule.Stable)
	default:
		h.risk(RiskDecliningTrend)
		return h.apply(rule.Declining)
	}
}

func (h *healthScore) scoreStaff(staff []model.StaffCostRecord, earnings float64, rule StaffRule) {
	if len(staff) == 0 {
		return
	}
	ratio := 0.0
	if earnings != 0 {
		var salaries float64
		for _, s := range staff {
			salaries += s.TotalSalary
		}
		ratio = salaries / earnings
	}
	switch {
	case ratio < rule.EfficientRatio:
		h.score += rule.EfficientDelta
		h.opportunity(OpportunityStaffUtilization)
	case ratio > rule.HighRatio:
		h.score += rule.HighDelta
		h.risk(RiskHighStaffCosts)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
