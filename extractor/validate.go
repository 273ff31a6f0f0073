package extractor

import (
	"fmt"
	"math"

	"noerkrieg.com/fitlog/nutrition"
)

// The model's output is untyped until it passes these checks; no field is
// trusted to exist or hold the right type just because the prompt asked
// for it.

func numberField(payload map[string]any, key string) (float64, bool) {
	v, ok := payload[key].(float64)
	return v, ok
}

func stringField(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key].(string)
	return v, ok
}

func validateFood(payload map[string]any) (*FoodResult, error) {
	food := &FoodResult{}

	for _, f := range []struct {
		key  string
		dest *int
	}{
		{"calories", &food.Calories},
		{"protein", &food.Protein},
		{"fat", &food.Fat},
		{"carbs", &food.Carbs},
	} {
		v, ok := numberField(payload, f.key)
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("%q is missing or not a number", f.key)}
		}
		*f.dest = int(math.Round(v))
	}

	rawItems, ok := payload["items"].([]any)
	if !ok {
		return nil, &SchemaError{Reason: `"items" is missing or not an array`}
	}
	if len(rawItems) == 0 {
		return nil, &SchemaError{Reason: `"items" is empty`}
	}
	for _, raw := range rawItems {
		item, ok := raw.(string)
		if !ok {
			return nil, &SchemaError{Reason: `"items" contains a non-string entry`}
		}
		food.Items = append(food.Items, item)
	}

	// quantities are optional; malformed entries are dropped rather than
	// failing the parse, since enrichment can proceed without them
	if rawQuantities, ok := payload["quantities"].([]any); ok {
		for _, raw := range rawQuantities {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			item, itemOK := stringField(entry, "item")
			amount, amountOK := numberField(entry, "amount")
			unit, unitOK := stringField(entry, "unit")
			if !itemOK || !amountOK || !unitOK {
				continue
			}
			food.Quantities = append(food.Quantities, nutrition.Quantity{
				Item:   item,
				Amount: amount,
				Unit:   unit,
			})
		}
	}

	return food, nil
}

func validateExercise(payload map[string]any) (*ExerciseResult, error) {
	name, ok := stringField(payload, "exercise_name")
	if !ok || name == "" {
		return nil, &SchemaError{Reason: `"exercise_name" is missing or not a string`}
	}
	exerciseType, ok := stringField(payload, "exercise_type")
	if !ok || (exerciseType != "cardio" && exerciseType != "strength") {
		return nil, &SchemaError{Reason: `"exercise_type" must be "cardio" or "strength"`}
	}

	exercise := &ExerciseResult{
		ExerciseName: name,
		ExerciseType: exerciseType,
	}
	if v, ok := numberField(payload, "sets"); ok {
		exercise.Sets = int(math.Round(v))
	}
	if v, ok := numberField(payload, "reps"); ok {
		exercise.Reps = int(math.Round(v))
	}
	if v, ok := numberField(payload, "weight"); ok {
		exercise.Weight = v
	}
	if v, ok := numberField(payload, "duration_minutes"); ok {
		exercise.DurationMinutes = v
	}
	if v, ok := numberField(payload, "distance"); ok {
		exercise.Distance = v
	}
	if v, ok := numberField(payload, "calories_burned"); ok && v >= 0 {
		exercise.CaloriesBurned = int(math.Round(v))
	}
	return exercise, nil
}
