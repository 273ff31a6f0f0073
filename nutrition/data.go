// Package nutrition resolves food item names to macro nutrient values, first
// through the USDA FoodData Central search API and then through a local
// fallback table of common foods.
package nutrition

import "math"

// Nutrients hold macro values. Table entries are per 100g; lookup results are
// already scaled to the requested serving.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Quantity states how much of a named item was eaten. Quantities relate to
// items by name, not by array position.
type Quantity struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

const (
	SourceUSDA     = "USDA"
	SourceFallback = "FALLBACK_DB"
	SourceNotFound = "NOT_FOUND"
)

// LookupResult is the per-item outcome of a lookup. Nutrients is nil when the
// item resolved nowhere.
type LookupResult struct {
	Item      string     `json:"item"`
	Nutrients *Nutrients `json:"nutrients"`
	Source    string     `json:"source"`
}

// scaled applies the serving multiplier to per-100g values, rounding each
// macro per item. Rounding happens here, before any summation.
func scaled(base Nutrients, multiplier float64) *Nutrients {
	return &Nutrients{
		Calories: math.Round(base.Calories * multiplier),
		Protein:  math.Round(base.Protein * multiplier),
		Fat:      math.Round(base.Fat * multiplier),
		Carbs:    math.Round(base.Carbs * multiplier),
	}
}
