package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/service"
)

// Analyze uploads the image at path and prints the backend's estimate.
func Analyze(deps *cli.Deps, path, mealType string) {
	res, err := deps.Services.Analyze.AnalyzeFile(deps.Ctx(), path, mealType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealTypeRequired), errors.Is(err, service.ErrUnknownMealType):
			fail(deps, "Invalid meal type", err,
				fmt.Sprintf("Use --meal with one of: %s", strings.Join(service.UploadMealTypes, ", ")))
		case errors.Is(err, service.ErrUnsupportedImage):
			fail(deps, "Invalid image", err, "Only png, jpg and jpeg photos can be analyzed")
		case service.IsUserError(err):
			fail(deps, "Invalid input", err, "")
		default:
			fail(deps, "Failed to analyze image", err, "")
		}
		return
	}

	if deps.JSON {
		writeJSON(deps, struct {
			MealType  string               `json:"meal_type"`
			UploadTag string               `json:"upload_tag"`
			Result    *food.AnalysisResult `json:"result"`
		}{res.MealType, res.UploadTag, res.Result})
		return
	}

	r := res.Result
	name := r.Name
	if name == "" {
		name = "(unnamed meal)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Analyzed: %s [%s]\n", name, food.MealLabel(res.MealType))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatNutrients(r.Nutrients))
	if len(r.Items) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
		for _, it := range r.Items {
			_, _ = fmt.Fprintf(deps.Stdout, "  - %s\n", cli.FormatItem(it))
		}
	}
}
