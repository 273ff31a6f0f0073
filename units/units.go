// Package units converts food quantities into gram equivalents so that
// per-100g nutrient tables can be scaled to what the user actually ate.
package units

import "strings"

// Weight units convert directly to grams.
var weightUnits = map[string]float64{
	"gram":      1,
	"grams":     1,
	"g":         1,
	"kilogram":  1000,
	"kilograms": 1000,
	"kg":        1000,
	"pound":     453.6,
	"pounds":    453.6,
	"lb":        453.6,
	"lbs":       453.6,
	"ounce":     28.35, // weight ounce, not fluid
	"ounces":    28.35,
	"oz":        28.35,
}

// Volume units are approximated as mass at a nominal 1g/ml density, since the
// actual density of the food is unknown at this point. The approximation is
// intentional.
var volumeUnits = map[string]float64{
	"cup":         240,
	"cups":        240,
	"tablespoon":  15,
	"tablespoons": 15,
	"tbsp":        15,
	"teaspoon":    5,
	"teaspoons":   5,
	"tsp":         5,
	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
	"liter":       1000,
	"liters":      1000,
	"l":           1000,
}

// Count units carry a heuristic average mass per discrete item.
var countUnits = map[string]float64{
	"piece":     100,
	"pieces":    100,
	"item":      100,
	"items":     100,
	"tortilla":  30,
	"tortillas": 30,
	"slice":     25,
	"slices":    25,
}

// An unrecognized unit is treated as a count of 100g servings rather than an
// error, so a bad unit degrades the estimate instead of failing the meal.
const defaultServingGrams = 100

// GramsEquivalent converts an amount of the given unit into grams. Unit lookup
// is case-insensitive and checks weight, then volume, then count units.
func GramsEquivalent(amount float64, unit string) float64 {
	u := strings.ToLower(strings.TrimSpace(unit))
	if factor, ok := weightUnits[u]; ok {
		return amount * factor
	}
	if factor, ok := volumeUnits[u]; ok {
		return amount * factor
	}
	if factor, ok := countUnits[u]; ok {
		return amount * factor
	}
	return amount * defaultServingGrams
}

// ServingMultiplier returns the ratio of the stated quantity to the 100g
// reference that nutrient tables are normalized against.
func ServingMultiplier(amount float64, unit string) float64 {
	return GramsEquivalent(amount, unit) / 100
}
