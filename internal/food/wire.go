package food

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexFloat decodes a JSON number, a numeric string or null. Anything else
// becomes 0, matching the backend's own coercion of stored values.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// flexString decodes a string or a Mongo extended-JSON wrapper such as
// {"$oid": "..."} or {"$date": "..."}.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		for _, key := range []string{"$oid", "$date"} {
			if raw, ok := wrapped[key]; ok {
				return s.UnmarshalJSON(raw)
			}
		}
		*s = ""
	default:
		*s = flexString(strings.Trim(string(data), `"`))
	}
	return nil
}

type wireNutrients struct {
	Calories flexFloat `json:"calorias"`
	Protein  flexFloat `json:"proteinas"`
	Fat      flexFloat `json:"grasas"`
	Carbs    flexFloat `json:"carbohidratos"`
}

func (w wireNutrients) nutrients() Nutrients {
	return Nutrients{
		Calories: float64(w.Calories),
		Protein:  float64(w.Protein),
		Fat:      float64(w.Fat),
		Carbs:    float64(w.Carbs),
	}
}

// wireItem is the union of every item shape the backend has produced:
// the flat app shape, the stored shape with nested nutrientes, and the
// legacy alimento shape.
type wireItem struct {
	wireNutrients
	Name        string         `json:"nombre"`
	StoredName  string         `json:"nombre_alimento"`
	LegacyName  string         `json:"alimento"`
	Grams       *flexFloat     `json:"cantidad_g"`
	LegacyGrams *flexFloat     `json:"cantidad_estimada_g"`
	Nested      *wireNutrients `json:"nutrientes"`
	Estimated   *bool          `json:"es_estimado"`
	EstimatedAI *bool          `json:"es_estimado_ia_original"`
	UsedLocalDB *bool          `json:"usado_bd_local_para_calculo"`
}

func (w wireItem) item() FoodItem {
	it := FoodItem{Name: firstNonEmpty(w.Name, w.StoredName, w.LegacyName)}

	switch {
	case w.Grams != nil:
		it.Grams = float64(*w.Grams)
	case w.LegacyGrams != nil:
		it.Grams = float64(*w.LegacyGrams)
	}

	if w.Nested != nil {
		it.Nutrients = w.Nested.nutrients()
	} else {
		it.Nutrients = w.wireNutrients.nutrients()
	}

	switch {
	case w.Estimated != nil:
		it.Estimated = *w.Estimated
	case w.UsedLocalDB != nil:
		it.Estimated = !*w.UsedLocalDB
	case w.EstimatedAI != nil:
		it.Estimated = *w.EstimatedAI
	default:
		it.Estimated = true
	}
	return it
}

type wireEntry struct {
	ID        flexString `json:"_id"`
	AltID     flexString `json:"id"`
	Timestamp flexString `json:"timestamp"`
	ImageName string     `json:"image_name"`
	MealType  string     `json:"meal_type"`
	Name      string     `json:"nombre_general_comida"`
	Calories  *flexFloat `json:"calorias_totales"`
	Protein   *flexFloat `json:"proteinas_totales"`
	Fat       *flexFloat `json:"grasas_totales"`
	Carbs     *flexFloat `json:"carbohidratos_totales"`
	Detailed  []wireItem `json:"alimentos_detallados"`

	// Legacy revision.
	Section string     `json:"seccion"`
	Summary string     `json:"resumen_general"`
	Foods   []wireItem `json:"alimentos"`
}

func (w wireEntry) schema() Schema {
	switch {
	case w.Detailed != nil || w.Name != "" || w.Calories != nil:
		return SchemaCurrent
	case w.Foods != nil || w.Section != "" || w.Summary != "":
		return SchemaLegacy
	default:
		return SchemaUnknown
	}
}

// UnmarshalJSON accepts both backend revisions and normalizes them into one
// Entry. Current fields win when a record mixes both.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Entry{
		ID:        string(w.ID),
		Timestamp: string(w.Timestamp),
		ImageName: w.ImageName,
		MealType:  firstNonEmpty(w.MealType, w.Section),
		Name:      w.Name,
		Note:      w.Summary,
		Schema:    w.schema(),
	}
	if e.ID == "" {
		e.ID = string(w.AltID)
	}

	raw := w.Detailed
	if raw == nil {
		raw = w.Foods
	}
	e.Items = make([]FoodItem, 0, len(raw))
	for _, wi := range raw {
		e.Items = append(e.Items, wi.item())
	}

	// Legacy records carry no totals; derive them from the items.
	e.Nutrients = ItemTotals(e.Items)
	if w.Calories != nil {
		e.Calories = float64(*w.Calories)
	}
	if w.Protein != nil {
		e.Protein = float64(*w.Protein)
	}
	if w.Fat != nil {
		e.Fat = float64(*w.Fat)
	}
	if w.Carbs != nil {
		e.Carbs = float64(*w.Carbs)
	}
	return nil
}

type canonicalItem struct {
	Name      string  `json:"nombre"`
	Grams     float64 `json:"cantidad_g"`
	Calories  float64 `json:"calorias"`
	Protein   float64 `json:"proteinas"`
	Fat       float64 `json:"grasas"`
	Carbs     float64 `json:"carbohidratos"`
	Estimated bool    `json:"es_estimado"`
}

type canonicalEntry struct {
	ID        string          `json:"_id"`
	Timestamp string          `json:"timestamp"`
	ImageName string          `json:"image_name,omitempty"`
	MealType  string          `json:"meal_type"`
	Name      string          `json:"nombre_general_comida"`
	Calories  float64         `json:"calorias_totales"`
	Protein   float64         `json:"proteinas_totales"`
	Fat       float64         `json:"grasas_totales"`
	Carbs     float64         `json:"carbohidratos_totales"`
	Items     []canonicalItem `json:"alimentos_detallados"`
}

func toCanonicalItems(items []FoodItem) []canonicalItem {
	out := make([]canonicalItem, 0, len(items))
	for _, it := range items {
		out = append(out, canonicalItem{
			Name:      it.Name,
			Grams:     it.Grams,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Fat:       it.Fat,
			Carbs:     it.Carbs,
			Estimated: it.Estimated,
		})
	}
	return out
}

// MarshalJSON always writes the current revision, so entries decoded from
// legacy records are migrated when they are written back (e.g. to the cache).
func (e Entry) MarshalJSON() ([]byte, error) {
	name := e.Name
	if name == "" {
		name = e.Note
	}
	return json.Marshal(canonicalEntry{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		ImageName: e.ImageName,
		MealType:  e.MealType,
		Name:      name,
		Calories:  e.Calories,
		Protein:   e.Protein,
		Fat:       e.Fat,
		Carbs:     e.Carbs,
		Items:     toCanonicalItems(e.Items),
	})
}

type wireAnalysis struct {
	wireNutrients
	Name  string     `json:"nombre"`
	Items []wireItem `json:"alimentos_detallados"`
}

// UnmarshalJSON decodes the POST /analizar response.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var w wireAnalysis
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = AnalysisResult{
		Name:      w.Name,
		Nutrients: w.wireNutrients.nutrients(),
		Items:     make([]FoodItem, 0, len(w.Items)),
	}
	for _, wi := range w.Items {
		r.Items = append(r.Items, wi.item())
	}
	return nil
}

type canonicalAnalysis struct {
	Name     string          `json:"nombre"`
	Calories float64         `json:"calorias"`
	Protein  float64         `json:"proteinas"`
	Fat      float64         `json:"grasas"`
	Carbs    float64         `json:"carbohidratos"`
	Items    []canonicalItem `json:"alimentos_detallados"`
}

// MarshalJSON writes the same shape the backend returns.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(canonicalAnalysis{
		Name:     r.Name,
		Calories: r.Calories,
		Protein:  r.Protein,
		Fat:      r.Fat,
		Carbs:    r.Carbs,
		Items:    toCanonicalItems(r.Items),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
