// Package food holds the FoodScan records returned by the backend: logged
// meals, their constituent foods and analysis results.
package food

import (
	"time"

	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

// Nutrients is the four-field nutrition value shared by items, entries and
// daily totals. Calories are kcal, the rest grams.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Add returns the field-wise sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
	}
}

// IsZero reports whether every field is zero.
func (n Nutrients) IsZero() bool {
	return n == Nutrients{}
}

// FoodItem is one food inside a logged meal or an analysis result.
type FoodItem struct {
	Name  string
	Grams float64
	Nutrients
	// Estimated is true when the values came from the vision model rather
	// than the backend's food table.
	Estimated bool
}

// Schema identifies the backend revision an entry was decoded from.
type Schema int

const (
	SchemaUnknown Schema = iota
	// SchemaCurrent is the alimentos_detallados / nombre_general_comida shape.
	SchemaCurrent
	// SchemaLegacy is the deprecated alimentos / resumen_general shape.
	SchemaLegacy
)

func (s Schema) String() string {
	switch s {
	case SchemaCurrent:
		return "current"
	case SchemaLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Entry is one logged meal as stored by the backend. Entries are read-only
// on the client and deleted by ID.
type Entry struct {
	ID string
	// Timestamp is kept as sent (ISO-8601, microsecond precision, UTC).
	Timestamp string
	ImageName string
	MealType  string
	Name      string
	// Note carries the legacy resumen_general text, if any.
	Note string
	Nutrients
	Items  []FoodItem
	Schema Schema
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	return timeutil.ParseTimestamp(e.Timestamp)
}

// DisplayName returns the dish name, falling back to the joined item names.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	if len(e.Items) == 0 {
		return "(unnamed meal)"
	}
	name := e.Items[0].Name
	for _, it := range e.Items[1:] {
		name += ", " + it.Name
	}
	return name
}

// AnalysisResult is the backend's answer to an image upload.
type AnalysisResult struct {
	Name string
	Nutrients
	Items []FoodItem
}

// ItemTotals sums the nutrients of items.
func ItemTotals(items []FoodItem) Nutrients {
	var total Nutrients
	for _, it := range items {
		total = total.Add(it.Nutrients)
	}
	return total
}
