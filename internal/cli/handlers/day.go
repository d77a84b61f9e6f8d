package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

const progressWidth = 20

// now is replaceable in tests.
var now = time.Now

// ShowDay prints the nutrition view of one calendar date: progress against
// the goals followed by the day's meals grouped by meal type.
func ShowDay(deps *cli.Deps, date time.Time, showItems bool) {
	view, err := deps.Services.History.Day(deps.Ctx(), date)
	if err != nil {
		failHistory(deps, err)
		return
	}

	printCacheWarnings(deps, view.Warnings)
	for _, s := range view.Summary.Skipped {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Skipped entry %s: %s\n", s.ID, s.Reason)
	}

	if deps.JSON {
		writeJSON(deps, view)
		return
	}

	loc := deps.Services.History.Location()
	today := timeutil.Today(loc)
	summary := view.Summary

	heading := cli.FormatDate(summary.Date)
	if rel := cli.DescribeDay(summary.Date, today); rel != heading {
		heading += " (" + rel + ")"
	}
	_, _ = fmt.Fprintln(deps.Stdout, heading)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	printProgress(deps, view.Progress)

	if summary.IsEmpty() {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
		_, _ = fmt.Fprintf(deps.Stdout, "No meals logged for %s\n", cli.DescribeDay(summary.Date, today))
		printSource(deps, view)
		return
	}

	for _, sec := range summary.Sections {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
		_, _ = fmt.Fprintf(deps.Stdout, "%-20s %s\n", cli.SectionTitle(sec.Key, sec.Label), cli.FormatNutrients(sec.Totals))
		for _, e := range sec.Entries {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s  %s  (id: %s)\n",
				cli.FormatEntryTime(e, loc), e.DisplayName(), cli.FormatKcal(e.Calories), e.ID)
			if showItems {
				for _, it := range e.Items {
					_, _ = fmt.Fprintf(deps.Stdout, "      - %s\n", cli.FormatItem(it))
				}
				if e.Note != "" {
					_, _ = fmt.Fprintf(deps.Stdout, "      %s\n", e.Note)
				}
			}
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	count := summary.EntryCount()
	_, _ = fmt.Fprintf(deps.Stdout, "Total (%d %s): %s\n", count, cli.Pluralize("meal", count), cli.FormatNutrients(summary.Totals))
	printSource(deps, view)
}

func printProgress(deps *cli.Deps, p goals.Progress) {
	for _, m := range p.Metrics() {
		_, _ = fmt.Fprintf(deps.Stdout, "%-9s %s %3d%%  %s / %s  %s\n",
			m.Name,
			cli.ProgressBar(m.Percent, progressWidth),
			m.Percent,
			cli.FormatAmount(m.Consumed),
			cli.FormatMetricAmount(m, m.Goal),
			cli.FormatRemaining(m))
	}
}

func printSource(deps *cli.Deps, view *service.DayView) {
	if view.Source != service.SourceCache.String() {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "(offline: cached %s)\n", cli.FormatFetchedAt(view.FetchedAt, now()))
}

// ListDays prints the dates that have logged meals, newest first.
func ListDays(deps *cli.Deps) {
	result, err := deps.Services.History.Days(deps.Ctx())
	if err != nil {
		failHistory(deps, err)
		return
	}

	printCacheWarnings(deps, result.Warnings)

	if deps.JSON {
		writeJSON(deps, result.Days)
		return
	}

	if len(result.Days) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No meals logged yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Analyze a photo with 'foodscan analyze <image> --meal almuerzo'")
		return
	}

	today := timeutil.Today(deps.Services.History.Location())
	_, _ = fmt.Fprintln(deps.Stdout, "Days with meals:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, d := range result.Days {
		label := d.Date.Format(timeutil.DateLayout)
		if rel := cli.DescribeDay(d.Date, today); rel == "today" || rel == "yesterday" {
			label += " (" + rel + ")"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%-24s %3d %-5s %s\n",
			label, d.Entries, cli.Pluralize("meal", d.Entries), cli.FormatKcal(d.Calories))
	}
	if result.Source == service.SourceCache {
		_, _ = fmt.Fprintf(deps.Stdout, "(offline: cached %s)\n", cli.FormatFetchedAt(result.FetchedAt, now()))
	}
}
