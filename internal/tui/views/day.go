package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JoacoWn/FoodScan/internal/api"
	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
	"github.com/JoacoWn/FoodScan/internal/tui/ui"
)

// dayMode represents the current mode of the day view
type dayMode int

const (
	dayModeNormal dayMode = iota
	dayModeConfirmDelete
)

// DayModel is the single day screen: goal progress followed by the day's
// meals grouped by meal type.
type DayModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	loc      *time.Location

	// UI state
	width     int
	height    int
	date      time.Time
	view      *service.DayView
	cursor    int
	mode      dayMode
	loading   bool
	deleting  bool
	status    string
	statusErr bool
	spinner   spinner.Model

	// seq numbers loads; only the latest one is applied.
	seq  int
	load *api.Task[*service.DayView]
	// initCmd delivers the first load, which starts with the model.
	initCmd tea.Cmd
}

// NewDayModel creates a day view showing today and starts loading it.
// Backend calls run under ctx, so cancelling it abandons them.
func NewDayModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) DayModel {
	loc := services.History.Location()
	m := DayModel{
		ctx:      ctx,
		services: services,
		styles:   styles,
		keys:     keys,
		loc:      loc,
		date:     timeutil.Today(loc),
		loading:  true,
		seq:      1,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.load, m.initCmd = m.fetch(m.seq, m.date)
	return m
}

// Init implements tea.Model
func (m DayModel) Init() tea.Cmd {
	return m.initCmd
}

// startLoad supersedes any load in flight with a load of m.date.
func (m *DayModel) startLoad() tea.Cmd {
	if m.load != nil {
		m.load.Cancel()
	}
	m.seq++
	m.loading = true

	task, cmd := m.fetch(m.seq, m.date)
	m.load = task
	return cmd
}

func (m DayModel) fetch(seq int, date time.Time) (*api.Task[*service.DayView], tea.Cmd) {
	history := m.services.History
	task := api.Go(m.ctx, func(ctx context.Context) (*service.DayView, error) {
		return history.Day(ctx, date)
	})

	return task, tea.Batch(m.spinner.Tick, func() tea.Msg {
		<-task.Done()
		view, err := task.Wait(context.Background())
		return ui.DayLoadedMsg{Seq: seq, Date: date, View: view, Err: err}
	})
}

func (m *DayModel) startDelete(e food.Entry) tea.Cmd {
	m.deleting = true
	m.status = ""

	id, name := e.ID, e.DisplayName()
	history := m.services.History
	task := api.Go(m.ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, history.Delete(ctx, id)
	})

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		<-task.Done()
		_, err := task.Wait(context.Background())
		return ui.EntryDeletedMsg{ID: id, Name: name, Err: err}
	})
}

// Update implements tea.Model
func (m DayModel) Update(msg tea.Msg) (DayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == dayModeConfirmDelete {
			return m.handleConfirmMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.date = timeutil.AddDays(m.date, -1)
			m.cursor = 0
			return m, m.startLoad()
		case key.Matches(msg, m.keys.NextDay):
			m.date = timeutil.AddDays(m.date, 1)
			m.cursor = 0
			return m, m.startLoad()
		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.Today(m.loc)
			m.cursor = 0
			return m, m.startLoad()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.startLoad()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries())-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if _, ok := m.Selected(); !ok || m.deleting {
				return m, nil
			}
			if m.services.History.Offline() {
				m.setStatus("Cannot delete entries while offline", true)
				return m, nil
			}
			m.mode = dayModeConfirmDelete
			return m, nil
		}

	case ui.DayLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.load = nil
		if msg.Err != nil {
			m.view = nil
			m.setStatus(describeError("Failed to load the day", msg.Err), true)
			return m, nil
		}
		m.view = msg.View
		if n := len(m.entries()); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		if skipped := len(msg.View.Summary.Skipped); skipped > 0 {
			m.setStatus(fmt.Sprintf("Skipped %d %s with a malformed timestamp", skipped, cli.Pluralize("meal", skipped)), true)
		}
		return m, nil

	case ui.EntryDeletedMsg:
		m.deleting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrNotFound) {
				m.setStatus(fmt.Sprintf("Entry %s not found", msg.ID), true)
			} else {
				m.setStatus(describeError("Delete failed", msg.Err), true)
			}
			return m, nil
		}
		m.setStatus("Deleted "+msg.Name, false)
		return m, m.startLoad()

	case ui.StatusMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, nil

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// handleConfirmMode handles key events while a delete awaits confirmation
func (m DayModel) handleConfirmMode(msg tea.KeyMsg) (DayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = dayModeNormal
		if e, ok := m.Selected(); ok {
			return m, m.startDelete(e)
		}
	case key.Matches(msg, m.keys.Cancel):
		m.mode = dayModeNormal
		m.setStatus("Deletion cancelled", false)
	}
	return m, nil
}

func (m *DayModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func describeError(prefix string, err error) string {
	if errors.Is(err, service.ErrNoCache) {
		return "No offline history available: run once while online"
	}
	if hint := api.Hint(err); hint != "" {
		return fmt.Sprintf("%s: %v (%s)", prefix, err, hint)
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}

func (m DayModel) entries() []food.Entry {
	if m.view == nil {
		return nil
	}
	return m.view.Summary.Entries()
}

// Selected returns the entry under the cursor.
func (m DayModel) Selected() (food.Entry, bool) {
	entries := m.entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return food.Entry{}, false
	}
	return entries[m.cursor], true
}

// Date is the day on screen.
func (m DayModel) Date() time.Time {
	return m.date
}

// Busy reports whether a load or delete is in flight.
func (m DayModel) Busy() bool {
	return m.loading || m.deleting
}

// IsConfirming reports whether a delete awaits confirmation.
func (m DayModel) IsConfirming() bool {
	return m.mode == dayModeConfirmDelete
}

// Status returns the status line text and whether it reports an error.
func (m DayModel) Status() (string, bool) {
	return m.status, m.statusErr
}

// SetSize sets the view dimensions
func (m *DayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements tea.Model
func (m DayModel) View() string {
	if m.mode == dayModeConfirmDelete {
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	today := timeutil.Today(m.loc)

	title := cli.FormatDate(m.date)
	if rel := cli.DescribeDay(m.date, today); rel != title {
		title += " (" + rel + ")"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.view == nil {
		if m.loading {
			b.WriteString(m.spinner.View() + " Loading...")
		} else {
			b.WriteString(m.styles.StatLabel.Render("Could not load this day. Press r to retry."))
		}
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		return b.String()
	}

	b.WriteString(m.styles.Subtitle.Render(m.subtitle()))
	b.WriteString("\n")
	b.WriteString(m.renderCalories(m.view.Progress.Calories))
	b.WriteString("\n")
	b.WriteString(m.renderProgress(m.view.Progress))
	b.WriteString("\n")
	b.WriteString(m.renderSections(today))
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m DayModel) subtitle() string {
	n := m.view.Summary.EntryCount()
	s := fmt.Sprintf("%d %s", n, cli.Pluralize("meal", n))
	if m.view.Source == service.SourceCache.String() {
		s += " · offline, cached " + cli.FormatFetchedAt(m.view.FetchedAt, time.Now())
	}
	return s
}

// renderCalories renders the consumed / goal / remaining line.
func (m DayModel) renderCalories(c goals.Metric) string {
	line := fmt.Sprintf("%s / %s  %s",
		m.styles.CalorieCount.Render(cli.FormatKcal(c.Consumed)),
		cli.FormatKcal(c.Goal),
		cli.FormatRemaining(c))
	return m.styles.CalorieLine.Render(line)
}

func (m DayModel) barWidth() int {
	w := m.width - 40
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (m DayModel) renderProgress(p goals.Progress) string {
	var b strings.Builder
	for _, metric := range p.Metrics() {
		fill := m.styles.BarFill
		valueStyle := m.styles.MetricValue
		if metric.Over {
			fill = m.styles.BarOver
			valueStyle = m.styles.MetricOver
		}
		bar := progress.New(
			progress.WithSolidFill(fill),
			progress.WithWidth(m.barWidth()),
			progress.WithoutPercentage(),
		)
		bar.EmptyColor = m.styles.BarEmpty

		b.WriteString(m.styles.MetricName.Render(metric.Name))
		b.WriteString(bar.ViewAs(float64(metric.Percent) / 100))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %3d%%  %s / %s",
			metric.Percent,
			cli.FormatAmount(metric.Consumed),
			cli.FormatMetricAmount(metric, metric.Goal))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m DayModel) renderSections(today time.Time) string {
	summary := m.view.Summary
	if summary.IsEmpty() {
		return m.styles.StatLabel.Render(fmt.Sprintf("No meals logged for %s", cli.DescribeDay(summary.Date, today))) + "\n"
	}

	var b strings.Builder
	i := 0
	for _, sec := range summary.Sections {
		b.WriteString(m.styles.SectionTitle.Render(cli.SectionTitle(sec.Key, sec.Label)))
		b.WriteString(m.styles.SectionTotals.Render(cli.FormatNutrients(sec.Totals)))
		b.WriteString("\n")
		for _, e := range sec.Entries {
			style := m.styles.EntryNormal
			if i == m.cursor {
				style = m.styles.EntrySelected
			}
			line := fmt.Sprintf("%s %s %s",
				m.styles.EntryTime.Render(cli.FormatEntryTime(e, m.loc)),
				m.styles.EntryCalories.Render(cli.FormatKcal(e.Calories)),
				m.styles.EntryName.Render(truncate(e.DisplayName(), m.width-24)))
			b.WriteString(style.Render(line))
			b.WriteString("\n")
			i++
		}
	}
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s\n", cli.FormatNutrients(summary.Totals)))
	return b.String()
}

func (m DayModel) renderStatus() string {
	switch {
	case m.deleting:
		return m.spinner.View() + " Deleting..."
	case m.loading:
		return m.spinner.View() + " Loading..."
	case m.status == "":
		return ""
	case m.statusErr:
		return m.styles.Error.Render(m.status)
	default:
		return m.styles.Success.Render(m.status)
	}
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m DayModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Delete Meal"))
	b.WriteString("\n")
	if e, ok := m.Selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this meal?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Meal: "))
		b.WriteString(m.styles.StatValue.Render(e.DisplayName()))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Logged: "))
		b.WriteString(m.styles.StatValue.Render(cli.FormatEntryTime(e, m.loc)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Nutrients: "))
		b.WriteString(m.styles.StatValue.Render(cli.FormatNutrients(e.Nutrients)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

func truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
