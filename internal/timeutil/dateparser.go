package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order by ParseTimestamp. Go accepts a
// fractional second after the seconds field even when the layout omits it,
// so the zone-less layouts also cover microsecond precision.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z0700",
}

// ParseTimestamp parses a backend timestamp: ISO-8601 with optional
// fractional seconds (the backend sends microseconds) and an optional zone.
// Timestamps without a zone are UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected ISO-8601, e.g. 2025-06-20T14:03:22.123456)", raw)
}

var relativeDaysRe = regexp.MustCompile(`^-(\d+)$`)

// ParseDate parses a date in YYYY-MM-DD or DD/MM/YYYY format, or one of the
// relative forms "today", "yesterday" and "-N" (N days ago).
// Returns midnight of that date in loc.
//
// Valid inputs:
//   - "2024-01-15" (ISO format)
//   - "15/01/2024" (European format, as the app displayed dates)
//   - "today", "yesterday", "-3"
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	switch input {
	case "today", "hoy":
		return Today(loc), nil
	case "yesterday", "ayer":
		return AddDays(Today(loc), -1), nil
	}

	if m := relativeDaysRe.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid number of days: %s", m[1])
		}
		return AddDays(Today(loc), -n), nil
	}

	if t, err := time.ParseInLocation(DateLayout, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return t, nil
	}

	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	isoPartialRe := regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe := regexp.MustCompile(`^\d{4}$`)
	euroPartialRe := regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)

	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD, DD/MM/YYYY, today, yesterday or -N)", input)
	}
}
