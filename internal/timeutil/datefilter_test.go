package timeutil

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s not available: %v", name, err)
	}
	return loc
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, time.June, 20, 14, 3, 22, 123456000, time.UTC)

	start := StartOfDay(ts)
	if !start.Equal(time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay() = %v", start)
	}
}

func TestDateKey(t *testing.T) {
	santiago := mustLoad(t, "America/Santiago")
	ts := time.Date(2025, time.June, 21, 2, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		loc      *time.Location
		expected string
	}{
		{name: "utc", loc: time.UTC, expected: "2025-06-21"},
		{name: "nil means utc", loc: nil, expected: "2025-06-21"},
		{name: "santiago is still the previous day", loc: santiago, expected: "2025-06-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(ts, tt.loc); got != tt.expected {
				t.Errorf("DateKey() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSameDate(t *testing.T) {
	day := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{name: "start of day", ts: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), expected: true},
		{name: "end of day", ts: time.Date(2025, time.June, 20, 23, 59, 59, 999999000, time.UTC), expected: true},
		{name: "next day", ts: time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC), expected: false},
		{name: "previous year same day", ts: time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDate(tt.ts, day, time.UTC); got != tt.expected {
				t.Errorf("SameDate() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	if got := AddDays(day, -1); !got.Equal(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("AddDays(-1) = %v", got)
	}
	if got := AddDays(day, 31); !got.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("AddDays(31) = %v", got)
	}
}
