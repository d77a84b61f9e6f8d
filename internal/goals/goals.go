// Package goals holds the user's daily nutrition targets and computes
// progress of a day's totals against them.
package goals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/food"
)

// Default targets used until the user sets their own.
const (
	DefaultCalories = 2000
	DefaultProtein  = 100
	DefaultFat      = 70
	DefaultCarbs    = 250
)

// Goals are the four daily targets: kcal for calories, grams for the rest.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Defaults returns 2000 kcal / 100 g / 70 g / 250 g.
func Defaults() Goals {
	return Goals{
		Calories: DefaultCalories,
		Protein:  DefaultProtein,
		Fat:      DefaultFat,
		Carbs:    DefaultCarbs,
	}
}

// ValidationError reports a goal value that is not a finite, non-negative number.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s goal %q: %s", e.Field, e.Value, e.Reason)
}

// Parse converts raw user input into Goals. All four values must parse;
// otherwise a *ValidationError names the first offending field.
func Parse(calories, protein, fat, carbs string) (Goals, error) {
	var g Goals
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"calories", calories, &g.Calories},
		{"protein", protein, &g.Protein},
		{"fat", fat, &g.Fat},
		{"carbs", carbs, &g.Carbs},
	}

	for _, f := range fields {
		v, err := parseValue(f.name, f.raw)
		if err != nil {
			return Goals{}, err
		}
		*f.dst = v
	}
	return g, nil
}

func parseValue(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "value is required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	if err := checkValue(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "must not be negative"}
	}
	return nil
}

// Validate checks that every target is finite and non-negative.
func (g Goals) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"calories", g.Calories},
		{"protein", g.Protein},
		{"fat", g.Fat},
		{"carbs", g.Carbs},
	} {
		if err := checkValue(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Metric is the progress of one nutrient against its goal.
type Metric struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	// Remaining is negative when the goal was exceeded.
	Remaining float64 `json:"remaining"`
	// Percent is clamped to [0, 100] for display.
	Percent int  `json:"percent"`
	Over    bool `json:"over"`
}

// Progress holds one Metric per tracked nutrient.
type Progress struct {
	Calories Metric `json:"calories"`
	Protein  Metric `json:"protein"`
	Fat      Metric `json:"fat"`
	Carbs    Metric `json:"carbs"`
}

// Metrics returns the four metrics in display order.
func (p Progress) Metrics() []Metric {
	return []Metric{p.Calories, p.Protein, p.Fat, p.Carbs}
}

// Track computes per-metric progress of totals against g.
func Track(totals food.Nutrients, g Goals) Progress {
	return Progress{
		Calories: track("Calories", "kcal", totals.Calories, g.Calories),
		Protein:  track("Protein", "g", totals.Protein, g.Protein),
		Fat:      track("Fat", "g", totals.Fat, g.Fat),
		Carbs:    track("Carbs", "g", totals.Carbs, g.Carbs),
	}
}

func track(name, unit string, consumed, goal float64) Metric {
	m := Metric{
		Name:      name,
		Unit:      unit,
		Consumed:  consumed,
		Goal:      goal,
		Remaining: goal - consumed,
		Over:      consumed > goal,
	}
	if goal > 0 {
		m.Percent = clampPercent(consumed / goal * 100)
	}
	return m
}

func clampPercent(p float64) int {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0
	case p >= 100:
		return 100
	default:
		return int(p)
	}
}
