package timeutil

import "time"

// DateLayout is the calendar-date layout used for comparisons and display keys.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateIn truncates t to its calendar date as observed in loc.
// A nil loc means UTC.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return StartOfDay(t.In(loc))
}

// DateKey returns the YYYY-MM-DD key of t as observed in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return DateIn(t, loc).Format(DateLayout)
}

// SameDate reports whether a and b fall on the same calendar date in loc.
// The calendar date of b is taken from its own fields, so a date built with
// time.Date in any zone compares by year/month/day.
func SameDate(a, b time.Time, loc *time.Location) bool {
	d := DateIn(a, loc)
	return d.Year() == b.Year() && d.Month() == b.Month() && d.Day() == b.Day()
}

// Today returns midnight of the current day in loc.
func Today(loc *time.Location) time.Time {
	return DateIn(time.Now(), loc)
}

// AddDays moves a date by n calendar days, staying at midnight across DST changes.
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date.AddDate(0, 0, n))
}
