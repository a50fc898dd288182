package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/ledger-pulse/internal/analytics"
	"github.com/Veraticus/ledger-pulse/internal/model"
)

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth returns a formatter whose boxes fit a terminal of the given width.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width)}
}

// Format renders the full analytics report.
func (f *CLIFormatter) Format(report *analytics.Report) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}

	sections := []string{
		f.formatHeader(report),
		f.formatHealth(report.Health),
		f.formatMonthly(report.Aggregates),
	}

	if len(report.Health.RiskFactors) > 0 || len(report.Health.Opportunities) > 0 {
		sections = append(sections, f.formatNotes(report.Health))
	}
	if len(report.Forecast) > 0 {
		sections = append(sections, f.formatForecast(report.Forecast))
	}
	sections = append(sections, f.formatAnomalies(report.Anomalies))
	if len(report.Insights) > 0 {
		sections = append(sections, f.formatInsights(report.Insights))
	}
	if len(report.Challenges) > 0 {
		sections = append(sections, f.formatChallenges(report.Challenges))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatHeader(report *analytics.Report) string {
	title := f.styles.Title.Render("📈 Business Health Report")

	agg := report.Aggregates
	summary := fmt.Sprintf("%d entries | earnings %s | expenses %s",
		agg.EntryCount, money(agg.TotalEarnings), money(agg.TotalExpenses))

	generated := f.styles.Subtle.Render("Generated: " + report.GeneratedAt.Format(time.RFC3339))

	return fmt.Sprintf("%s\n%s\n%s", title, f.styles.Subtitle.Render(summary), generated)
}

func (f *CLIFormatter) formatHealth(h analytics.HealthMetrics) string {
	style := f.styles.ForScore(h.OverallScore)
	score := style.Render(fmt.Sprintf("Health Score: %.0f/100", h.OverallScore))
	bar := style.Render(RenderBar(h.OverallScore, 30))

	lines := []string{score, bar}
	for _, sub := range []struct {
		name  string
		value float64
	}{
		{"Cash flow", h.CashFlowHealth},
		{"Expense efficiency", h.ExpenseEfficiency},
		{"Growth trend", h.GrowthTrend},
	} {
		lines = append(lines, fmt.Sprintf("  %-20s %s",
			sub.name,
			f.styles.ForScore(sub.value).Render(fmt.Sprintf("%3.0f", sub.value))))
	}

	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatMonthly(agg analytics.Aggregates) string {
	title := f.styles.Subtitle.Render("Monthly Cash Flow:")
	if len(agg.Monthly) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No entries recorded")
	}

	header := fmt.Sprintf("%-10s %14s %14s %14s", "Month", "Earnings", "Expenses", "Net")
	rows := []string{
		f.styles.Subtle.Bold(true).Render(header),
		f.styles.Subtle.Render(strings.Repeat("─", len(header))),
	}
	for _, m := range agg.Monthly {
		net := fmt.Sprintf("%14s", money(m.Net()))
		if m.Net() < 0 {
			net = f.styles.Error.Render(net)
		}
		rows = append(rows, fmt.Sprintf("%-10s %14s %14s %s",
			m.Month, money(m.Earnings), money(m.Expenses), net))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *CLIFormatter) formatNotes(h analytics.HealthMetrics) string {
	var lines []string
	if len(h.RiskFactors) > 0 {
		lines = append(lines, f.styles.Subtitle.Render("Risk Factors:"))
		for _, r := range h.RiskFactors {
			lines = append(lines, f.styles.Error.Render("  ⚠ ")+r)
		}
	}
	if len(h.Opportunities) > 0 {
		lines = append(lines, f.styles.Subtitle.Render("Opportunities:"))
		for _, o := range h.Opportunities {
			lines = append(lines, f.styles.Success.Render("  ✓ ")+o)
		}
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatForecast(forecast []analytics.CashFlowPrediction) string {
	title := f.styles.Subtitle.Render("🔮 Cash Flow Forecast:")

	lines := make([]string, 0, len(forecast))
	for _, p := range forecast {
		balance := money(p.PredictedBalance)
		if p.PredictedBalance < 0 {
			balance = f.styles.Error.Render(balance)
		} else {
			balance = f.styles.Success.Render(balance)
		}
		line := fmt.Sprintf("  %-9s %s %s",
			p.Period, balance,
			f.styles.Subtle.Render(fmt.Sprintf("(%.0f%% confidence)", p.Confidence*100)))
		if len(p.Factors) > 0 {
			line += "\n" + f.styles.Subtle.Render("            "+strings.Join(p.Factors, ", "))
		}
		lines = append(lines, line)
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatAnomalies(anomalies []analytics.Anomaly) string {
	title := f.styles.Subtitle.Render("🔍 Anomalies:")
	if len(anomalies) == 0 {
		return title + "\n" + f.styles.Success.Render("✅ No anomalies found!")
	}

	lines := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		header := f.styles.ForSeverity(a.Severity).Render(fmt.Sprintf("[%s] %s", a.Severity, a.Kind))
		lines = append(lines,
			fmt.Sprintf("%s %s (%s)", header, a.Description, money(a.AffectedAmount)),
			f.styles.Subtle.Render("  → "+a.SuggestedAction))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatInsights(insights []analytics.Insight) string {
	sorted := slices.Clone(insights)
	slices.SortStableFunc(sorted, func(a, b analytics.Insight) int {
		return a.Priority.Order() - b.Priority.Order()
	})

	lines := []string{f.styles.Info.Bold(true).Render("💡 Key Insights")}
	for _, in := range sorted {
		bullet := f.styles.ForPriority(in.Priority).Render("•")
		lines = append(lines, fmt.Sprintf("%s %s", bullet, f.styles.Normal.Bold(true).Render(in.Title)))
		lines = append(lines, "  "+in.Description)
		if in.Action != "" {
			lines = append(lines, f.styles.Info.Render("  → "+in.Action))
		}
	}
	return f.styles.InsightBox.Render(strings.Join(lines, "\n"))
}

func (f *CLIFormatter) formatChallenges(challenges []analytics.SavingsChallenge) string {
	lines := []string{f.styles.Info.Bold(true).Render("🏆 Savings Challenges")}
	for _, c := range challenges {
		lines = append(lines,
			fmt.Sprintf("%s %s", f.styles.Title.Render("•"), c.Title),
			f.styles.Subtle.Render(fmt.Sprintf("  target %s | %d days | %s | reward: %s",
				money(c.TargetAmount), c.DaysRemaining, strings.ToLower(string(c.Difficulty)), c.Reward)))
	}
	return f.styles.Box.Render(strings.Join(lines, "\n"))
}

// FormatEntries renders a ledger listing.
func (f *CLIFormatter) FormatEntries(entries []model.LedgerEntry) string {
	if len(entries) == 0 {
		return f.styles.Subtle.Render("No entries found")
	}

	header := fmt.Sprintf("%-10s %-4s %12s  %-16s %s", "Date", "Dir", "Amount", "Category", "Description")
	rows := []string{
		f.styles.Subtle.Bold(true).Render(header),
		f.styles.Subtle.Render(strings.Repeat("─", len(header))),
	}
	for i := range entries {
		e := &entries[i]
		day := e.Day()
		if day == "" {
			day = "unknown"
		}
		amount := fmt.Sprintf("%12s", money(e.Amount))
		if e.Direction == model.DirectionIn {
			amount = f.styles.Success.Render(amount)
		}
		rows = append(rows, fmt.Sprintf("%-10s %-4s %s  %-16s %s",
			day, e.Direction, amount, truncate(e.CategoryOrDefault(), 16), e.Description))
	}
	return strings.Join(rows, "\n")
}

// FormatStaffCosts renders monthly staff cost records.
func (f *CLIFormatter) FormatStaffCosts(records []model.StaffCostRecord) string {
	if len(records) == 0 {
		return f.styles.Subtle.Render("No staff costs recorded")
	}

	header := fmt.Sprintf("%-8s %6s %14s", "Month", "Staff", "Salary")
	rows := []string{
		f.styles.Subtle.Bold(true).Render(header),
		f.styles.Subtle.Render(strings.Repeat("─", len(header))),
	}
	for _, r := range records {
		rows = append(rows, fmt.Sprintf("%-8s %6d %14s", r.Month, r.StaffCount, money(r.TotalSalary)))
	}
	return strings.Join(rows, "\n")
}

// money formats an amount with two decimals and thousands separators.
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
