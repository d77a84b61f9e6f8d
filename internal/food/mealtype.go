package food

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Meal type tags as the backend stores them.
const (
	MealBreakfast      = "desayuno"
	MealLunch          = "almuerzo"
	MealAfternoonSnack = "merienda"
	MealDinner         = "cena"
	MealSnack          = "snack"
	MealOther          = "otro"
)

// PredefinedMealTypes is the fixed section order of a day view.
var PredefinedMealTypes = []string{
	MealBreakfast,
	MealLunch,
	MealAfternoonSnack,
	MealDinner,
	MealSnack,
	MealOther,
}

var mealAliases = map[string]string{
	"breakfast":       MealBreakfast,
	"lunch":           MealLunch,
	"afternoon-snack": MealAfternoonSnack,
	"afternoon_snack": MealAfternoonSnack,
	"afternoon snack": MealAfternoonSnack,
	"dinner":          MealDinner,
	"aperitivo":       MealSnack,
	"other":           MealOther,
	"desconocido":     MealOther,
}

// uploadTags maps section keys to the values POST /analizar accepts.
// The backend knows desayuno, almuerzo, aperitivo and cena and silently
// rewrites anything else to desayuno.
var uploadTags = map[string]string{
	MealBreakfast:      MealBreakfast,
	MealLunch:          MealLunch,
	MealAfternoonSnack: "aperitivo",
	MealSnack:          "aperitivo",
	MealDinner:         MealDinner,
}

// NormalizeMealType lower-cases a tag and folds known aliases onto the
// predefined keys. An empty tag becomes MealOther; unknown tags are kept.
func NormalizeMealType(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return MealOther
	}
	if canonical, ok := mealAliases[tag]; ok {
		return canonical
	}
	return tag
}

// IsPredefinedMealType reports whether a normalized tag is one of the fixed sections.
func IsPredefinedMealType(tag string) bool {
	for _, t := range PredefinedMealTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// MealLabel is the display label of a section key ("merienda" -> "Merienda").
func MealLabel(tag string) string {
	if tag == "" {
		return ""
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.Spanish).String(tag)
}

// UploadTag converts user input into the meal_type sent with an upload.
// The second result is false when the tag is not one the backend accepts.
func UploadTag(input string) (string, bool) {
	tag, ok := uploadTags[NormalizeMealType(input)]
	return tag, ok
}
