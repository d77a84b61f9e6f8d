package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "microseconds without zone",
			input:    "2025-06-20T14:03:22.123456",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 123456000, time.UTC),
		},
		{
			name:     "whole seconds without zone",
			input:    "2025-06-20T14:03:22",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 0, time.UTC),
		},
		{
			name:     "utc designator",
			input:    "2025-06-20T14:03:22.5Z",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 500000000, time.UTC),
		},
		{
			name:     "explicit offset",
			input:    "2025-06-20T10:03:22.000001-04:00",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 1000, time.UTC),
		},
		{
			name:     "space separator",
			input:    "2025-06-20 14:03:22.123456",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 123456000, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			input:    "  2025-06-20T14:03:22  ",
			expected: time.Date(2025, time.June, 20, 14, 3, 22, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseTimestamp(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, expected UTC", tt.input, got.Location())
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "20/06/2025 14:03", "2025-13-01T00:00:00", "not-a-date"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseTimestamp(input); err == nil {
				t.Errorf("ParseTimestamp(%q) expected error", input)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	loc := time.UTC
	today := Today(loc)

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "iso", input: "2024-01-15", expected: time.Date(2024, time.January, 15, 0, 0, 0, 0, loc)},
		{name: "european", input: "15/01/2024", expected: time.Date(2024, time.January, 15, 0, 0, 0, 0, loc)},
		{name: "leap day", input: "2024-02-29", expected: time.Date(2024, time.February, 29, 0, 0, 0, 0, loc)},
		{name: "today", input: "today", expected: today},
		{name: "today uppercase", input: "TODAY", expected: today},
		{name: "hoy", input: "hoy", expected: today},
		{name: "yesterday", input: "yesterday", expected: AddDays(today, -1)},
		{name: "three days ago", input: "-3", expected: AddDays(today, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, loc)
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{input: "", contains: "cannot be empty"},
		{input: "2024", contains: "missing month and day"},
		{input: "2024-01", contains: "missing day"},
		{input: "15/01", contains: "missing year"},
		{input: "2024-02-30", contains: "invalid date format"},
		{input: "next week", contains: "invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input, time.UTC)
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("ParseDate(%q) error = %q, expected to contain %q", tt.input, err.Error(), tt.contains)
			}
		})
	}
}
