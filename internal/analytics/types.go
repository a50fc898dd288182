// Package analytics turns an already-loaded merchant ledger into a health
// score, a short cash-flow forecast, anomaly flags, insights, and savings
// challenges. Every function here is a pure function of its arguments.
package analytics

import "time"

// AnomalyKind identifies how an anomaly was detected.
type AnomalyKind string

const (
	// AnomalyDuplicate marks entries that share amount, day, and description.
	AnomalyDuplicate AnomalyKind = "DUPLICATE"
	// AnomalyOutlier marks an entry whose amount is far above the ledger mean.
	AnomalyOutlier AnomalyKind = "OUTLIER"
)

// Severity ranks how urgently an anomaly should be reviewed.
type Severity string

const (
	// SeverityLow is informational.
	SeverityLow Severity = "LOW"
	// SeverityMedium should be reviewed soon.
	SeverityMedium Severity = "MEDIUM"
	// SeverityHigh should be reviewed now.
	SeverityHigh Severity = "HIGH"
)

// InsightType classifies the tone of an insight.
type InsightType string

const (
	// InsightWarning flags spending above expectations.
	InsightWarning InsightType = "WARNING"
	// InsightPositive reports something going well.
	InsightPositive InsightType = "POSITIVE"
	// InsightAlert flags a trend that needs attention.
	InsightAlert InsightType = "ALERT"
	// InsightInfo is neutral information.
	InsightInfo InsightType = "INFO"
)

// Priority orders insights for display.
type Priority string

const (
	// PriorityLow can wait.
	PriorityLow Priority = "LOW"
	// PriorityMedium is worth a look.
	PriorityMedium Priority = "MEDIUM"
	// PriorityHigh needs attention.
	PriorityHigh Priority = "HIGH"
)

// Order returns the numeric rank of a priority (lower is more urgent).
func (p Priority) Order() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Difficulty rates how hard a savings challenge is expected to be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// MonthlyAggregate holds the cash in and out for one calendar month.
type MonthlyAggregate struct {
	Month    string  `json:"month"`
	Earnings float64 `json:"earnings"`
	Expenses float64 `json:"expenses"`
}

// Net returns earnings minus expenses.
func (m MonthlyAggregate) Net() float64 {
	return m.Earnings - m.Expenses
}

// CategoryAggregate is the total cash out recorded against one category.
type CategoryAggregate struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Aggregates is the Aggregator output consumed by every later stage.
type Aggregates struct {
	Monthly       []MonthlyAggregate  `json:"monthly"`
	Categories    []CategoryAggregate `json:"categories"`
	TotalEarnings float64             `json:"total_earnings"`
	TotalExpenses float64             `json:"total_expenses"`
	EntryCount    int                 `json:"entry_count"`
}

// HealthMetrics is the composite business health result.
type HealthMetrics struct {
	RiskFactors       []string `json:"risk_factors"`
	Opportunities     []string `json:"opportunities"`
	OverallScore      float64  `json:"overall_score"`
	CashFlowHealth    float64  `json:"cash_flow_health"`
	ExpenseEfficiency float64  `json:"expense_efficiency"`
	GrowthTrend       float64  `json:"growth_trend"`
}

// CashFlowPrediction is the forecast for one future month.
type CashFlowPrediction struct {
	Period           string   `json:"period"`
	Factors          []string `json:"factors"`
	PredictedBalance float64  `json:"predicted_balance"`
	Confidence       float64  `json:"confidence"`
}

// Anomaly is a suspicious entry or group of entries.
type Anomaly struct {
	ID              string      `json:"id"`
	Kind            AnomalyKind `json:"kind"`
	Severity        Severity    `json:"severity"`
	Description     string      `json:"description"`
	SuggestedAction string      `json:"suggested_action"`
	RelatedEntryIDs []string    `json:"related_entry_ids"`
	AffectedAmount  float64     `json:"affected_amount"`
}

// Insight is a human-readable observation about the ledger.
type Insight struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        InsightType `json:"type"`
	Priority    Priority    `json:"priority"`
	Action      string      `json:"action,omitempty"`
	Actionable  bool        `json:"actionable"`
}

// SavingsChallenge is a suggested short-term savings target.
type SavingsChallenge struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Reward          string     `json:"reward"`
	Difficulty      Difficulty `json:"difficulty"`
	Category        string     `json:"category,omitempty"`
	TargetAmount    float64    `json:"target_amount"`
	CurrentProgress float64    `json:"current_progress"`
	DaysRemaining   int        `json:"days_remaining"`
}

// Report bundles the output of one full pipeline run.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Forecast    []CashFlowPrediction `json:"forecast"`
	Insights    []Insight            `json:"insights"`
	Anomalies   []Anomaly            `json:"anomalies"`
	Challenges  []SavingsChallenge   `json:"challenges"`
	Aggregates  Aggregates           `json:"aggregates"`
	Health      HealthMetrics        `json:"health"`
}
