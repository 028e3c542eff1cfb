package domain

import (
	"fmt"
	"strconv"
)

// Nutrient codes shown for a recipe.
const (
	NutrientCarbs       = "CHOCDF"
	NutrientProtein     = "PROCNT"
	NutrientFat         = "FAT"
	NutrientCholesterol = "CHOLE"
	NutrientSodium      = "NA"
)

// Nutrition is a nutrition-details response. Only calories and the
// totalNutrients table are consumed; any code may be absent.
type Nutrition struct {
	Calories       float64             `json:"calories"`
	TotalNutrients map[string]Nutrient `json:"totalNutrients"`
}

// Nutrient is one entry of the totalNutrients table.
type Nutrient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Quantity returns the quantity recorded for code.
func (n *Nutrition) Quantity(code string) (float64, bool) {
	if n == nil || n.TotalNutrients == nil {
		return 0, false
	}
	v, ok := n.TotalNutrients[code]
	if !ok {
		return 0, false
	}
	return v.Quantity, true
}

// NutritionFact is one rendered line of the nutrition block.
type NutritionFact struct {
	Label string `json:"label"`
	Value string `json:"value"` // blank when the nutrient is absent
	Unit  string `json:"unit"`
}

var factOrder = []struct {
	label, code, unit string
}{
	{"Carbs", NutrientCarbs, "g"},
	{"Protein", NutrientProtein, "g"},
	{"Fats", NutrientFat, "g"},
	{"Cholesterol", NutrientCholesterol, "mg"},
	{"Sodium", NutrientSodium, "mg"},
}

// Facts renders the fixed nutrition block: calories followed by carbs,
// protein, fat, cholesterol and sodium to two decimals. Missing nutrients
// keep their line with an empty value.
func (n *Nutrition) Facts() []NutritionFact {
	if n == nil {
		return nil
	}
	out := make([]NutritionFact, 0, len(factOrder)+1)
	out = append(out, NutritionFact{Label: "Calories", Value: formatNumber(n.Calories)})
	for _, f := range factOrder {
		fact := NutritionFact{Label: f.label, Unit: f.unit}
		if q, ok := n.Quantity(f.code); ok {
			fact.Value = fmt.Sprintf("%.2f", q)
		}
		out = append(out, fact)
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
