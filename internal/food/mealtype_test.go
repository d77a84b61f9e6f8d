package food

import "testing"

func TestNormalizeMealType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "desayuno", expected: MealBreakfast},
		{input: "  Almuerzo ", expected: MealLunch},
		{input: "breakfast", expected: MealBreakfast},
		{input: "Afternoon-Snack", expected: MealAfternoonSnack},
		{input: "dinner", expected: MealDinner},
		{input: "aperitivo", expected: MealSnack},
		{input: "other", expected: MealOther},
		{input: "", expected: MealOther},
		{input: "desconocido", expected: MealOther},
		{input: "Once", expected: "once"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeMealType(tt.input); got != tt.expected {
				t.Errorf("NormalizeMealType(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsPredefinedMealType(t *testing.T) {
	for _, tag := range PredefinedMealTypes {
		if !IsPredefinedMealType(tag) {
			t.Errorf("IsPredefinedMealType(%q) = false", tag)
		}
	}
	if IsPredefinedMealType("once") {
		t.Error("IsPredefinedMealType(once) = true")
	}
}

func TestMealLabel(t *testing.T) {
	tests := map[string]string{
		"desayuno":   "Desayuno",
		"merienda":   "Merienda",
		"once":       "Once",
		"media once": "Media Once",
		"":           "",
	}
	for input, expected := range tests {
		if got := MealLabel(input); got != expected {
			t.Errorf("MealLabel(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestUploadTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "desayuno", expected: "desayuno", ok: true},
		{input: "lunch", expected: "almuerzo", ok: true},
		{input: "snack", expected: "aperitivo", ok: true},
		{input: "merienda", expected: "aperitivo", ok: true},
		{input: "cena", expected: "cena", ok: true},
		{input: "otro", ok: false},
		{input: "brunch", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := UploadTag(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("UploadTag(%q) = (%q, %v), expected (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
