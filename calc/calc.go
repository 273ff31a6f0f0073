// Package calc derives secondary numbers from parsed primary fields: cardio
// pace, MET-based calorie burn, meal macro totals, and the sanity rules
// applied to model-estimated values.
package calc

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"noerkrieg.com/fitlog/nutrition"
)

// DefaultBodyweightKg is substituted when the user has no weight on record.
const DefaultBodyweightKg = 70

// Pace returns minutes per mile. Callers format; no rounding here.
func Pace(durationMinutes, distanceMiles float64) float64 {
	return durationMinutes / distanceMiles
}

// METCalories estimates calories burned: MET x bodyweight(kg) x duration(hours).
func METCalories(met, weightKg, durationMinutes float64) int {
	if weightKg <= 0 {
		weightKg = DefaultBodyweightKg
	}
	return int(math.Round(met * weightKg * durationMinutes / 60))
}

// Macros are whole-number meal totals.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
	Carbs    int `json:"carbs"`
}

// MealTotals sums the already-scaled per-item results of a lookup. Items that
// resolved nowhere contribute nothing and never fail the meal. The counts per
// source let the caller pick the right source tag.
func MealTotals(results []nutrition.LookupResult) (totals Macros, usdaItems, fallbackItems int) {
	var calories, protein, fat, carbs float64
	for _, r := range results {
		if r.Nutrients == nil {
			continue
		}
		switch r.Source {
		case nutrition.SourceUSDA:
			usdaItems++
		case nutrition.SourceFallback:
			fallbackItems++
		default:
			continue
		}
		calories += r.Nutrients.Calories
		protein += r.Nutrients.Protein
		fat += r.Nutrients.Fat
		carbs += r.Nutrients.Carbs
	}
	// per-item values are already rounded; the sum stays integral
	totals = Macros{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(protein)),
		Fat:      int(math.Round(fat)),
		Carbs:    int(math.Round(carbs)),
	}
	return totals, usdaItems, fallbackItems
}

const (
	// Model estimates above this are treated as implausible and capped.
	aiCalorieCeiling = 1000
	aiCalorieCap     = 800
	// Database-backed totals above this are flagged but never rejected.
	dbCalorieWarning = 1500
)

// ClampEstimate caps an unverified model estimate at 800 kcal and scales the
// other macros by 0.8 when the estimate exceeds the plausibility ceiling.
// It must only be applied to AI-sourced numbers; database totals go through
// SuspectTotal instead.
func ClampEstimate(m Macros) (Macros, bool) {
	if m.Calories <= aiCalorieCeiling {
		return m, false
	}
	return Macros{
		Calories: aiCalorieCap,
		Protein:  int(math.Round(float64(m.Protein) * 0.8)),
		Fat:      int(math.Round(float64(m.Fat) * 0.8)),
		Carbs:    int(math.Round(float64(m.Carbs) * 0.8)),
	}, true
}

// SuspectTotal reports whether a database-backed calorie total is high enough
// to warrant a diagnostic flag.
func SuspectTotal(calories int) bool {
	return calories > dbCalorieWarning
}

// MacroValue parses a stored macro field that may be a number, a numeric
// string, or a text range like "400-500". Ranges average to their midpoint;
// anything unparsable contributes zero.
func MacroValue(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case int:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return macroString(x)
	default:
		return 0
	}
}

func macroString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// a leading hyphen is a sign, not a range separator
	if i := strings.Index(s, "-"); i > 0 {
		lo, errLo := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		hi, errHi := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
		if errLo != nil || errHi != nil {
			return 0
		}
		return (lo + hi) / 2
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
