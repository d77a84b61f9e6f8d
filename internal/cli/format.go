// Package cli provides the CLI presentation layer for the foodscan application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/storage"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

// FormatAmount formats a nutrient amount with at most one decimal,
// dropping a trailing ".0". Examples: "12", "12.5"
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(roundTo(v, 10), 'f', -1, 64)
}

// roundTo rounds v to 1/scale and never returns negative zero.
func roundTo(v, scale float64) float64 {
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// FormatKcal formats an energy amount. Example: "1250 kcal"
func FormatKcal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%.0f kcal", roundTo(v, 1))
}

// FormatGrams formats a mass. Example: "12.5 g"
func FormatGrams(v float64) string {
	return FormatAmount(v) + " g"
}

// FormatNutrients formats the four nutrition fields on one line.
// Example: "500 kcal | P 10 g | F 20 g | C 60 g"
func FormatNutrients(n food.Nutrients) string {
	return fmt.Sprintf("%s | P %s | F %s | C %s",
		FormatKcal(n.Calories), FormatGrams(n.Protein), FormatGrams(n.Fat), FormatGrams(n.Carbs))
}

// FormatMetricAmount formats a value in the metric's unit.
func FormatMetricAmount(m goals.Metric, v float64) string {
	if m.Unit == "kcal" {
		return FormatKcal(v)
	}
	return FormatAmount(v) + " " + m.Unit
}

// FormatRemaining describes how far a metric is from its goal.
// Examples: "800 kcal left", "300 kcal over", "goal reached"
func FormatRemaining(m goals.Metric) string {
	switch {
	case m.Over:
		return FormatMetricAmount(m, -m.Remaining) + " over"
	case m.Remaining == 0:
		return "goal reached"
	default:
		return FormatMetricAmount(m, m.Remaining) + " left"
	}
}

// ProgressBar renders percent (clamped to [0, 100]) as a fixed-width bar.
// Example: ProgressBar(50, 10) = "[#####-----]"
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return "[]"
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// FormatDate formats a calendar date for headings. Example: "Tue, Jun 4, 2024"
func FormatDate(date time.Time) string {
	return date.Format("Mon, Jan 2, 2006")
}

// DescribeDay names date relative to today: "today", "yesterday", or the
// formatted date.
func DescribeDay(date, today time.Time) string {
	loc := today.Location()
	switch {
	case timeutil.SameDate(date, today, loc):
		return "today"
	case timeutil.SameDate(date, timeutil.AddDays(today, -1), loc):
		return "yesterday"
	default:
		return FormatDate(date)
	}
}

// FormatEntryTime returns the entry's local clock time, or "--:--" when the
// timestamp cannot be parsed.
func FormatEntryTime(e food.Entry, loc *time.Location) string {
	t, err := e.Time()
	if err != nil {
		return "--:--"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}

// SectionTitle is the heading of a day section. Sections for tags the app
// does not know are marked so they are not mistaken for a typo.
func SectionTitle(key, label string) string {
	if food.IsPredefinedMealType(key) {
		return label
	}
	return label + " (custom)"
}

// FormatItem formats one food item of an entry or analysis result.
// Example: "Arroz (150 g): 195 kcal | P 4 g | F 0.4 g | C 42 g [estimated]"
func FormatItem(it food.FoodItem) string {
	s := fmt.Sprintf("%s (%s): %s", it.Name, FormatGrams(it.Grams), FormatNutrients(it.Nutrients))
	if it.Estimated {
		s += " [estimated]"
	}
	return s
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// FormatFetchedAt describes when a snapshot was taken, relative to now.
// Examples: "just now", "5m ago", "3h ago", "Jun 4 08:00"
func FormatFetchedAt(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return at.Format("Jan 2 15:04")
	}
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
