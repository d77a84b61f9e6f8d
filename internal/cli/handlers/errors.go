// Package handlers implements the foodscan commands on top of the service
// layer. Each handler writes to deps.Stdout/Stderr and calls deps.Exit(1)
// on failure.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JoacoWn/FoodScan/internal/api"
	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// fail prints an Error/Details/Hint block and exits with status 1. An empty
// hint falls back to a generic input hint for user errors and to the
// backend error hint otherwise.
func fail(deps *cli.Deps, msg string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint == "" {
		if service.IsUserError(err) {
			hint = "Nothing was sent to the backend; fix the input and try again"
		} else {
			hint = api.Hint(err)
		}
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// failHistory reports a failed history read.
func failHistory(deps *cli.Deps, err error) {
	if errors.Is(err, service.ErrNoCache) {
		path, _, _ := deps.Services.History.CacheStatus()
		fail(deps, "No offline history available", err,
			fmt.Sprintf("Run once without --offline to create %s", path))
		return
	}
	fail(deps, "Failed to load the food history", err, "")
}

// printCacheWarnings reports corrupted cache lines on stderr.
func printCacheWarnings(deps *cli.Deps, warnings []storage.ParseWarning) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: Found %d corrupted %s in the history cache:\n",
		len(warnings), cli.Pluralize("line", len(warnings)))
	for _, w := range warnings {
		_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruptionWarning(w))
	}
	_, _ = fmt.Fprintln(deps.Stderr)
}

// writeJSON prints v as indented JSON.
func writeJSON(deps *cli.Deps, v any) {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail(deps, "Failed to encode JSON output", err, "")
	}
}
