package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Theme names accepted by the theme config setting.
const (
	DefaultTheme = "default"
	MonoTheme    = "mono"
)

// defaultTintID is the bubbletint palette behind the default theme.
const defaultTintID = "dracula"

var themeNames = []string{DefaultTheme, MonoTheme}

// palette maps semantic roles to colors. Progress bar colors are strings
// because bubbles/progress takes them that way.
type palette struct {
	primary    lipgloss.TerminalColor
	secondary  lipgloss.TerminalColor
	accent     lipgloss.TerminalColor
	muted      lipgloss.TerminalColor
	success    lipgloss.TerminalColor
	warning    lipgloss.TerminalColor
	errorColor lipgloss.TerminalColor
	fg         lipgloss.TerminalColor
	bg         lipgloss.TerminalColor

	barFill  string
	barOver  string
	barEmpty string
}

var monoPalette = palette{
	primary:    lipgloss.Color("255"),
	secondary:  lipgloss.Color("250"),
	accent:     lipgloss.Color("252"),
	muted:      lipgloss.Color("242"),
	success:    lipgloss.Color("255"),
	warning:    lipgloss.Color("250"),
	errorColor: lipgloss.Color("255"),
	fg:         lipgloss.Color("252"),
	bg:         lipgloss.Color("236"),
	barFill:    "250",
	barOver:    "255",
	barEmpty:   "238",
}

// ThemeProvider manages the TUI palettes. The default theme takes its
// colors from a bubbletint registry.
type ThemeProvider struct {
	registry *tint.Registry
	current  string
}

// NewThemeProvider creates a ThemeProvider set to name, or to DefaultTheme
// when name is not a known theme.
func NewThemeProvider(name string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var base tint.Tint
	for _, t := range allTints {
		if t.ID() == defaultTintID {
			base = t
			break
		}
	}
	if base == nil && len(allTints) > 0 {
		base = allTints[0]
	}

	tp := &ThemeProvider{
		registry: tint.NewRegistry(base, allTints...),
		current:  DefaultTheme,
	}
	tp.SetTheme(name)
	return tp
}

// SetTheme sets the current theme by name.
// Returns true if the theme was found and set, false otherwise.
func (tp *ThemeProvider) SetTheme(name string) bool {
	for _, n := range themeNames {
		if n == name {
			tp.current = name
			return true
		}
	}
	return false
}

// Toggle switches between the default and mono themes and returns the new
// theme name.
func (tp *ThemeProvider) Toggle() string {
	if tp.current == MonoTheme {
		tp.current = DefaultTheme
	} else {
		tp.current = MonoTheme
	}
	return tp.current
}

// CurrentName returns the name of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.current
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return newStyles(tp.palette())
}

func (tp *ThemeProvider) palette() palette {
	if tp.current == MonoTheme {
		return monoPalette
	}
	r := tp.registry
	return palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		barFill:    "#50FA7B",
		barOver:    "#FFB86C",
		barEmpty:   "#44475A",
	}
}
