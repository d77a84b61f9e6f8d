package handlers

import (
	"fmt"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "base_url:   %s\n", cfg.BaseURL)
	_, _ = fmt.Fprintf(deps.Stdout, "timeout:    %s\n", cfg.RequestTimeout)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:   %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:  %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "log_file:   %s\n", orNone(cfg.LogFile))
	if cfg.SentryDSN != "" {
		_, _ = fmt.Fprintln(deps.Stdout, "sentry_dsn: (set)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "sentry_dsn: (none)")
	}
	goalsDB, err := cfg.GoalsDBPath()
	if err != nil {
		goalsDB = "(unavailable: " + err.Error() + ")"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "goals_db:   %s\n", goalsDB)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:      %s\n", cfg.Theme)

	cachePath, health, err := deps.Services.History.CacheStatus()
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "History cache: %s\n", orNone(cachePath))
	switch {
	case err != nil:
		_, _ = fmt.Fprintf(deps.Stdout, "Cache status: unreadable (%v)\n", err)
	case !health.Exists:
		_, _ = fmt.Fprintln(deps.Stdout, "Cache status: empty (fetch once online to enable --offline)")
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Cache status: %d %s, updated %s\n",
			health.ValidEntries, pluralEntries(health.ValidEntries),
			cli.FormatFetchedAt(health.FetchedAt, now()))
		if health.CorruptedEntries > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "Corrupted lines: %d\n", health.CorruptedEntries)
			for _, w := range health.Warnings {
				_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
			}
		}
	}
}

func pluralEntries(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

// SetURL validates and saves a new backend base URL.
func SetURL(deps *cli.Deps, raw string) {
	saved, err := deps.Services.Config.SetBaseURL(raw)
	if err != nil {
		fail(deps, "Failed to update base_url", err, "Use an absolute http(s) URL, e.g. http://192.168.0.10:5000/")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "base_url set to %s\n", saved)
	_, _ = fmt.Fprintf(deps.Stdout, "Saved to %s\n", deps.Services.Config.GetPath())
}
