package extractor

import "noerkrieg.com/fitlog/nutrition"

// Source tags beyond those the nutrition package defines.
const (
	SourceAIEstimate   = "AI_ESTIMATE"
	SourceMETDatabase  = "MET_DATABASE"
	SourceUSDAFallback = "USDA+FALLBACK"
)

// FoodResult is a validated, enriched food extraction. Macro values come from
// the nutrition database whenever at least one item resolved; Source says
// which.
type FoodResult struct {
	Calories   int                  `json:"calories"`
	Protein    int                  `json:"protein"`
	Fat        int                  `json:"fat"`
	Carbs      int                  `json:"carbs"`
	Items      []string             `json:"items"`
	Quantities []nutrition.Quantity `json:"quantities,omitempty"`
	Source     string               `json:"source"`
}

// ExerciseResult is a validated, enriched exercise extraction. Strength
// entries carry sets/reps/weight; cardio entries carry duration/distance.
type ExerciseResult struct {
	ExerciseName    string  `json:"exercise_name"`
	ExerciseType    string  `json:"exercise_type"` // "cardio" or "strength"
	Sets            int     `json:"sets,omitempty"`
	Reps            int     `json:"reps,omitempty"`
	Weight          float64 `json:"weight,omitempty"`
	DurationMinutes float64 `json:"duration_minutes,omitempty"`
	Distance        float64 `json:"distance,omitempty"`
	CaloriesBurned  int     `json:"calories_burned,omitempty"`
	Source          string  `json:"source"`
}
