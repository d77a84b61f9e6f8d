// Package tui provides the interactive day screen of foodscan.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/tui/ui"
	"github.com/JoacoWn/FoodScan/internal/tui/views"
)

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services
	ctx      context.Context
	cancel   context.CancelFunc

	// UI state
	width    int
	height   int
	showHelp bool

	dayView views.DayModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
	help          help.Model
}

// New creates a new TUI model. Backend calls started by the model run under
// a context derived from ctx and are cancelled on quit.
func New(ctx context.Context, services *service.Services, cfg config.Config) Model {
	ctx, cancel := context.WithCancel(ctx)

	themeProvider := ui.NewThemeProvider(cfg.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		ctx:           ctx,
		cancel:        cancel,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		help:          help.New(),
		dayView:       views.NewDayModel(ctx, services, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.dayView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While a delete awaits confirmation only quit is global.
		confirming := m.dayView.IsConfirming()

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !confirming:
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Theme) && !confirming:
			name := m.themeProvider.Toggle()
			m.styles = m.themeProvider.Styles()
			m.dayView, _ = m.dayView.Update(ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles})
			return m, m.saveThemeConfig(name)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Account for the title bar and the help line
		m.dayView.SetSize(m.width, m.height-4)
		return m, nil
	}

	m.dayView, cmd = m.dayView.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(m.dayView.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

// renderTitleBar renders the app name, the offline marker and the theme.
func (m Model) renderTitleBar() string {
	parts := []string{m.styles.Title.Render("FoodScan")}
	if m.services.History.Offline() {
		parts = append(parts, m.styles.OfflineTag.Render("offline"))
	}
	parts = append(parts, m.styles.StatusHelp.Render(fmt.Sprintf("theme: %s", m.themeProvider.CurrentName())))
	return m.styles.TitleBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	configService := m.services.Config
	return func() tea.Msg {
		if err := configService.SetTheme(themeName); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Theme not saved: %v", err), Err: true}
		}
		return ui.StatusMsg{Text: "Theme set to " + themeName}
	}
}

// Close cancels every backend call the model started.
func (m Model) Close() {
	m.cancel()
}

// Run starts the TUI application and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, services *service.Services, cfg config.Config) error {
	model := New(ctx, services, cfg)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted from outside; not a failure of the TUI.
		return nil
	}
	return err
}
