package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Title bar
	TitleBar   lipgloss.Style
	Title      lipgloss.Style
	OfflineTag lipgloss.Style

	// Day header
	ViewTitle lipgloss.Style
	Subtitle  lipgloss.Style

	// Goal progress
	MetricName   lipgloss.Style
	MetricValue  lipgloss.Style
	MetricOver   lipgloss.Style
	BarFill      string
	BarOver      string
	BarEmpty     string
	CalorieLine  lipgloss.Style
	CalorieCount lipgloss.Style

	// Meal sections
	SectionTitle  lipgloss.Style
	SectionTotals lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryTime     lipgloss.Style
	EntryName     lipgloss.Style
	EntryCalories lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the styles of the default theme.
func DefaultStyles() Styles {
	return NewThemeProvider(DefaultTheme).Styles()
}

// newStyles maps a palette onto semantic UI elements:
// - Primary: titles, section names
// - Secondary: times, keys
// - Accent: calories
// - Muted: labels, inactive elements
// - Success/Warning/Error: status messages and over-goal metrics
func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TitleBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		Title: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 1),
		OfflineTag: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true).
			Padding(0, 1),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted).
			MarginBottom(1),

		MetricName: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(10),
		MetricValue: lipgloss.NewStyle().
			Foreground(p.fg),
		MetricOver: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		BarFill:  p.barFill,
		BarOver:  p.barOver,
		BarEmpty: p.barEmpty,
		CalorieLine: lipgloss.NewStyle().
			MarginBottom(1),
		CalorieCount: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		SectionTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Width(20),
		SectionTotals: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryTime: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(7),
		EntryName: lipgloss.NewStyle().
			Foreground(p.fg),
		EntryCalories: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(10).
			Align(lipgloss.Right),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
