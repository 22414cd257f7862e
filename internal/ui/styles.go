// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"htmljudge/internal/judge"
	"htmljudge/internal/reconcile"
)

var (
	// Colors
	Cyan    = lipgloss.Color("#00FFFF")
	Green   = lipgloss.Color("#00FF00")
	Yellow  = lipgloss.Color("#FFD700")
	Orange  = lipgloss.Color("#FFA500")
	Red     = lipgloss.Color("#FF6B6B")
	SkyBlue = lipgloss.Color("#87CEEB")
	Dim     = lipgloss.Color("#555555")
	White   = lipgloss.Color("#FFFFFF")

	// Box styles
	ActiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan)

	InactiveBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Dim)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	UserStyle = lipgloss.NewStyle().
			Foreground(SkyBlue).
			Bold(true)

	JudgeStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	// Score tier styles
	TierHighStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	TierMidStyle  = lipgloss.NewStyle().Foreground(Orange).Bold(true)
	TierLowStyle  = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Trace severity styles
	SeverityWarnStyle = lipgloss.NewStyle().Foreground(Orange)
	SeverityCritStyle = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Tab styles
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Dim)
)

// TierStyle returns the style for a score tier.
func TierStyle(t reconcile.Tier) lipgloss.Style {
	switch t {
	case reconcile.TierHigh:
		return TierHighStyle
	case reconcile.TierMid:
		return TierMidStyle
	default:
		return TierLowStyle
	}
}

// SeverityStyle returns the style for a trace severity.
func SeverityStyle(s judge.Severity) lipgloss.Style {
	switch s {
	case judge.SeverityCritical:
		return SeverityCritStyle
	case judge.SeverityWarn:
		return SeverityWarnStyle
	default:
		return DimStyle
	}
}
