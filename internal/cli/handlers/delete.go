package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/api"
	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/service"
)

// DeleteEntry removes a logged meal from the backend after confirmation.
func DeleteEntry(deps *cli.Deps, id string, skipConfirm bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		fail(deps, "Entry ID is required", nil, "Entry IDs are shown by 'foodscan day'")
		return
	}
	if deps.Services.History.Offline() {
		fail(deps, "Cannot delete entries while offline", service.ErrOfflineDelete, "Run without --offline")
		return
	}

	if !skipConfirm {
		// The preview is best effort; the backend has the final say on the ID.
		if e, ok, err := deps.Services.History.Lookup(deps.Ctx(), id); err == nil && ok {
			printEntryPreview(deps, e)
		}
		if !promptConfirmation(deps.Stdout, deps.Stdin) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled.")
			return
		}
	}

	if err := deps.Services.History.Delete(deps.Ctx(), id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fail(deps, fmt.Sprintf("Entry %s not found", id), err, "")
			return
		}
		fail(deps, "Failed to delete entry", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted entry %s\n", id)
}

func printEntryPreview(deps *cli.Deps, e food.Entry) {
	loc := deps.Services.History.Location()
	_, _ = fmt.Fprintf(deps.Stdout, "Entry: %s [%s]\n", e.DisplayName(), food.MealLabel(food.NormalizeMealType(e.MealType)))
	if t, err := e.Time(); err == nil {
		_, _ = fmt.Fprintf(deps.Stdout, "  Logged: %s %s\n", cli.FormatDate(t.In(loc)), cli.FormatEntryTime(e, loc))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatNutrients(e.Nutrients))
}

// promptConfirmation asks the user to confirm deletion
func promptConfirmation(stdout io.Writer, stdin io.Reader) bool {
	_, _ = fmt.Fprint(stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
