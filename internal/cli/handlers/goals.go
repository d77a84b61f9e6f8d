package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/service"
)

// ShowGoals prints the current daily goals.
func ShowGoals(deps *cli.Deps) {
	g, err := deps.Services.Goals.Get(deps.Ctx())
	if err != nil {
		fail(deps, "Failed to load goals", err, "Check that the goals database is readable")
		return
	}

	if deps.JSON {
		writeJSON(deps, g)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Daily goals:")
	printGoals(deps, g)
}

// SetGoals updates the goals given in in; empty fields keep their value.
// Nothing is saved if any value is invalid.
func SetGoals(deps *cli.Deps, in service.GoalsInput) {
	if in == (service.GoalsInput{}) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one goal flag is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  foodscan goals set --calories 1800")
		_, _ = fmt.Fprintln(deps.Stderr, "  foodscan goals set --protein 120 --fat 60 --carbs 200")
		deps.Exit(1)
		return
	}

	g, err := deps.Services.Goals.Update(deps.Ctx(), in)
	if err != nil {
		var ve *goals.ValidationError
		if errors.As(err, &ve) {
			fail(deps, fmt.Sprintf("Invalid %s goal %q", ve.Field, ve.Value), err,
				"Goals must be non-negative numbers, e.g. --calories 2000; nothing was changed")
			return
		}
		fail(deps, "Failed to save goals", err, "Check that the goals database is writable")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Goals updated:")
	printGoals(deps, g)
}

// ResetGoals restores the default goals.
func ResetGoals(deps *cli.Deps) {
	g, err := deps.Services.Goals.Reset(deps.Ctx())
	if err != nil {
		fail(deps, "Failed to reset goals", err, "Check that the goals database is writable")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Goals reset to defaults:")
	printGoals(deps, g)
}

func printGoals(deps *cli.Deps, g goals.Goals) {
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 30))
	_, _ = fmt.Fprintf(deps.Stdout, "Calories: %s\n", cli.FormatKcal(g.Calories))
	_, _ = fmt.Fprintf(deps.Stdout, "Protein:  %s\n", cli.FormatGrams(g.Protein))
	_, _ = fmt.Fprintf(deps.Stdout, "Fat:      %s\n", cli.FormatGrams(g.Fat))
	_, _ = fmt.Fprintf(deps.Stdout, "Carbs:    %s\n", cli.FormatGrams(g.Carbs))
}
