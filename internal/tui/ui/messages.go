package ui

import (
	"time"

	"github.com/JoacoWn/FoodScan/internal/service"
)

// DayLoadedMsg carries the result of loading one day. Seq identifies the
// load so that results of superseded loads can be dropped.
type DayLoadedMsg struct {
	Seq  int
	Date time.Time
	View *service.DayView
	Err  error
}

// EntryDeletedMsg reports the outcome of a delete.
type EntryDeletedMsg struct {
	ID   string
	Name string
	Err  error
}

// StatusMsg sets the status line.
type StatusMsg struct {
	Text string
	Err  bool
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}
