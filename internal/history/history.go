// Package history turns the flat food log returned by the backend into a
// per-day view: entries of one calendar date grouped into meal sections,
// with running nutrition totals.
package history

import (
	"log/slog"
	"sort"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

// MealSection groups the entries of one meal type within a day.
type MealSection struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Entries []food.Entry   `json:"entries"`
	Totals  food.Nutrients `json:"totals"`
}

// SkippedEntry is an entry left out of every day view because its
// timestamp could not be parsed.
type SkippedEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason"`
}

// DailySummary is the derived view of one calendar date. It is computed on
// demand and never persisted.
type DailySummary struct {
	Date     time.Time      `json:"date"`
	Totals   food.Nutrients `json:"totals"`
	Sections []MealSection  `json:"sections"`
	Skipped  []SkippedEntry `json:"skipped,omitempty"`
}

// EntryCount returns the number of entries across all sections.
func (s DailySummary) EntryCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Entries)
	}
	return n
}

// IsEmpty reports whether the day has no entries.
func (s DailySummary) IsEmpty() bool {
	return len(s.Sections) == 0
}

// Entries returns the day's entries in display order (section by section).
func (s DailySummary) Entries() []food.Entry {
	out := make([]food.Entry, 0, s.EntryCount())
	for _, sec := range s.Sections {
		out = append(out, sec.Entries...)
	}
	return out
}

// Aggregator builds DailySummaries in a fixed reference timezone.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	loc *time.Location
	log *slog.Logger
}

// NewAggregator creates an Aggregator. A nil loc means UTC, a nil logger
// means slog.Default().
func NewAggregator(loc *time.Location, log *slog.Logger) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{loc: loc, log: log}
}

// Location returns the reference timezone.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// Summarize is shorthand for NewAggregator(loc, nil).Summarize(entries, date).
func Summarize(entries []food.Entry, date time.Time, loc *time.Location) DailySummary {
	return NewAggregator(loc, nil).Summarize(entries, date)
}

type timedEntry struct {
	entry food.Entry
	at    time.Time
}

// Summarize filters entries to the calendar date of date, orders them by
// timestamp and groups them by meal type. Predefined sections come first in
// their fixed order, unknown meal types follow in first-seen order, and
// empty sections are dropped. An entry whose timestamp does not parse is
// excluded and reported in Skipped.
func (a *Aggregator) Summarize(entries []food.Entry, date time.Time) DailySummary {
	summary := DailySummary{
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, a.loc),
		Sections: []MealSection{},
	}

	var kept []timedEntry
	for _, e := range entries {
		at, err := e.Time()
		if err != nil {
			a.log.Warn("skipping entry with malformed timestamp",
				"id", e.ID, "timestamp", e.Timestamp, "error", err)
			summary.Skipped = append(summary.Skipped, SkippedEntry{
				ID:        e.ID,
				Timestamp: e.Timestamp,
				Reason:    err.Error(),
			})
			continue
		}
		if timeutil.SameDate(at, summary.Date, a.loc) {
			kept = append(kept, timedEntry{entry: e, at: at})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].at.Before(kept[j].at)
	})

	// Predefined buckets always exist first; others are created lazily.
	order := make([]string, 0, len(food.PredefinedMealTypes))
	buckets := make(map[string]*MealSection)
	for _, key := range food.PredefinedMealTypes {
		order = append(order, key)
		buckets[key] = &MealSection{Key: key, Label: food.MealLabel(key)}
	}

	for _, te := range kept {
		key := food.NormalizeMealType(te.entry.MealType)
		sec, ok := buckets[key]
		if !ok {
			sec = &MealSection{Key: key, Label: food.MealLabel(key)}
			buckets[key] = sec
			order = append(order, key)
		}
		sec.Entries = append(sec.Entries, te.entry)
		sec.Totals = sec.Totals.Add(te.entry.Nutrients)
		summary.Totals = summary.Totals.Add(te.entry.Nutrients)
	}

	for _, key := range order {
		if sec := buckets[key]; len(sec.Entries) > 0 {
			summary.Sections = append(summary.Sections, *sec)
		}
	}

	a.log.Debug("summarized day",
		"date", summary.Date.Format(timeutil.DateLayout),
		"entries", len(kept), "sections", len(summary.Sections), "skipped", len(summary.Skipped))
	return summary
}

// Days returns the distinct calendar dates that have at least one entry,
// newest first. Entries with malformed timestamps are ignored.
func (a *Aggregator) Days(entries []food.Entry) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range entries {
		at, err := e.Time()
		if err != nil {
			continue
		}
		day := timeutil.DateIn(at, a.loc)
		key := timeutil.DateKey(at, a.loc)
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}

// DayCount pairs a date with its number of entries and calorie total.
type DayCount struct {
	Date     time.Time `json:"date"`
	Entries  int       `json:"entries"`
	Calories float64   `json:"calories"`
}

// DayCounts returns per-day entry counts and calorie totals, newest first.
func (a *Aggregator) DayCounts(entries []food.Entry) []DayCount {
	index := make(map[string]int)
	var counts []DayCount
	for _, e := range entries {
		at, err := e.Time()
		if err != nil {
			continue
		}
		day := timeutil.DateIn(at, a.loc)
		key := timeutil.DateKey(at, a.loc)
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, DayCount{Date: day})
		}
		counts[i].Entries++
		counts[i].Calories += e.Calories
	}

	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Date.After(counts[j].Date)
	})
	return counts
}
