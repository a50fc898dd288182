// Package report renders analytics reports and ledger listings for the
// terminal, and as JSON.
package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/ledger-pulse/internal/analytics"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#FF6B6B")
	// SuccessColor indicates healthy values.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates values that need watching.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates unhealthy values.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational text.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666") // Gray
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box        lipgloss.Style
	InsightBox lipgloss.Style
	High       lipgloss.Style
	Medium     lipgloss.Style
	Low        lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(SubtleColor),
		Success: lipgloss.NewStyle().Foreground(SuccessColor),
		Warning: lipgloss.NewStyle().Foreground(WarningColor),
		Error:   lipgloss.NewStyle().Foreground(ErrorColor),
		Info:    lipgloss.NewStyle().Foreground(InfoColor),
		Subtle:  lipgloss.NewStyle().Foreground(SubtleColor),
		Normal:  lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)

	s.InsightBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(InfoColor).
		Padding(0, 1)

	s.High = lipgloss.NewStyle().
		Bold(true).
		Foreground(ErrorColor)

	s.Medium = lipgloss.NewStyle().
		Foreground(WarningColor)

	s.Low = lipgloss.NewStyle().
		Foreground(SubtleColor)

	return s
}

// WithWidth returns a copy of the styles with boxes fitted to width.
func (s *Styles) WithWidth(width int) *Styles {
	adjusted := *s
	if width > 0 && width < 100 {
		adjusted.Box = s.Box.Width(width - 4)
		adjusted.InsightBox = s.InsightBox.Width(width - 4)
	}
	return &adjusted
}

// ForSeverity returns the style for an anomaly severity.
func (s *Styles) ForSeverity(severity analytics.Severity) lipgloss.Style {
	switch severity {
	case analytics.SeverityHigh:
		return s.High
	case analytics.SeverityMedium:
		return s.Medium
	case analytics.SeverityLow:
		return s.Low
	default:
		return s.Normal
	}
}

// ForPriority returns the style for an insight priority.
func (s *Styles) ForPriority(priority analytics.Priority) lipgloss.Style {
	switch priority {
	case analytics.PriorityHigh:
		return s.High
	case analytics.PriorityMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// ForScore returns the style for a 0-100 score.
func (s *Styles) ForScore(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return s.Success
	case score >= 40:
		return s.Warning
	default:
		return s.Error
	}
}

// RenderBar draws an unstyled bar for a 0-100 score.
func RenderBar(score float64, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := int(float64(width) * score / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
