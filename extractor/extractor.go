// Package extractor handles the log entries too irregular for the
// deterministic grammars: it asks a completion model for a structured JSON
// extraction, validates the shape, and then replaces the model's numeric
// guesses with database-backed values wherever a lookup succeeds. Lookup
// failures only cost enrichment, never the extraction itself.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"noerkrieg.com/fitlog/calc"
	"noerkrieg.com/fitlog/metdb"
	"noerkrieg.com/fitlog/nutrition"
)

const (
	completionMaxTokens = 200
	// low temperature keeps the extraction close to deterministic
	completionTemperature = 0.1
)

// Kind selects the extraction contract.
type Kind string

const (
	KindFood     Kind = "food"
	KindExercise Kind = "exercise"
)

// MetLookup is the exercise MET database surface. *metdb.Service
// implements it.
type MetLookup interface {
	Lookup(ctx context.Context, name string, durationMinutes, weightKg float64) (*metdb.Result, error)
}

type Extractor struct {
	completer    Completer
	foods        *nutrition.Service
	exercises    MetLookup
	bodyweightKg float64
}

// New wires the extractor. foods and exercises may be nil, which disables the
// corresponding enrichment; completer nil disables the AI path entirely and
// every Extract call returns a ConfigError.
func New(completer Completer, foods *nutrition.Service, exercises MetLookup) *Extractor {
	return &Extractor{
		completer:    completer,
		foods:        foods,
		exercises:    exercises,
		bodyweightKg: calc.DefaultBodyweightKg,
	}
}

// SetBodyweight overrides the default bodyweight used for MET calorie
// estimates, in kilograms.
func (e *Extractor) SetBodyweight(kg float64) {
	if kg > 0 {
		e.bodyweightKg = kg
	}
}

// Extract runs the full pipeline for one input and returns *FoodResult or
// *ExerciseResult depending on kind.
func (e *Extractor) Extract(ctx context.Context, input string, kind Kind) (any, error) {
	switch kind {
	case KindFood:
		return e.ExtractFood(ctx, input)
	case KindExercise:
		return e.ExtractExercise(ctx, input)
	default:
		return nil, fmt.Errorf("unknown extraction kind %q", kind)
	}
}

func (e *Extractor) ExtractFood(ctx context.Context, input string) (*FoodResult, error) {
	payload, err := e.complete(ctx, foodPrompt(input))
	if err != nil {
		return nil, err
	}
	food, err := validateFood(payload)
	if err != nil {
		return nil, err
	}
	e.enrichFood(ctx, food)
	return food, nil
}

func (e *Extractor) ExtractExercise(ctx context.Context, input string) (*ExerciseResult, error) {
	payload, err := e.complete(ctx, exercisePrompt(input))
	if err != nil {
		return nil, err
	}
	exercise, err := validateExercise(payload)
	if err != nil {
		return nil, err
	}
	e.enrichExercise(ctx, exercise)
	return exercise, nil
}

func (e *Extractor) complete(ctx context.Context, prompt string) (map[string]any, error) {
	if e.completer == nil {
		return nil, &ConfigError{Err: errors.New("no completion client configured")}
	}
	content, err := e.completer.Complete(ctx, systemPrompt, prompt, completionMaxTokens, completionTemperature)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	clean := stripCodeFences(content)
	var payload map[string]any
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, &FormatError{Raw: content, Err: err}
	}
	return payload, nil
}

var codeFences = regexp.MustCompile("```json\n?|\n?```")

func stripCodeFences(content string) string {
	return strings.TrimSpace(codeFences.ReplaceAllString(content, ""))
}

// enrichFood resolves each item through the nutrition lookup and overwrites
// the model's macro estimates with the computed totals when at least one item
// resolved. Otherwise the model estimate stays, tagged AI_ESTIMATE and
// sanity-clamped.
func (e *Extractor) enrichFood(ctx context.Context, food *FoodResult) {
	if e.foods != nil {
		results := e.foods.LookupMany(ctx, food.Items, food.Quantities)
		totals, usdaItems, fallbackItems := calc.MealTotals(results)
		if usdaItems+fallbackItems > 0 {
			if calc.SuspectTotal(totals.Calories) {
				log.Printf("meal total of %d kcal from the nutrition database looks high, keeping it flagged", totals.Calories)
			}
			food.Calories = totals.Calories
			food.Protein = totals.Protein
			food.Fat = totals.Fat
			food.Carbs = totals.Carbs
			switch {
			case usdaItems > 0 && fallbackItems > 0:
				food.Source = SourceUSDAFallback
			case usdaItems > 0:
				food.Source = nutrition.SourceUSDA
			default:
				food.Source = nutrition.SourceFallback
			}
			return
		}
	}

	food.Source = SourceAIEstimate
	macros, clamped := calc.ClampEstimate(calc.Macros{
		Calories: food.Calories,
		Protein:  food.Protein,
		Fat:      food.Fat,
		Carbs:    food.Carbs,
	})
	if clamped {
		log.Printf("model estimate of %d kcal exceeded the plausibility ceiling, capped at %d", food.Calories, macros.Calories)
		food.Calories = macros.Calories
		food.Protein = macros.Protein
		food.Fat = macros.Fat
		food.Carbs = macros.Carbs
	}
}

// enrichExercise replaces the model's calorie guess with a MET-based estimate
// when the exercise is in the database and the duration is known.
func (e *Extractor) enrichExercise(ctx context.Context, exercise *ExerciseResult) {
	if e.exercises == nil {
		exercise.Source = SourceAIEstimate
		return
	}
	result, err := e.exercises.Lookup(ctx, exercise.ExerciseName, exercise.DurationMinutes, e.bodyweightKg)
	if err != nil {
		log.Printf("MET lookup failed for %q, keeping model estimate: %v", exercise.ExerciseName, err)
		exercise.Source = SourceAIEstimate
		return
	}
	if result.Found && result.Exercise != nil && result.Exercise.CaloriesBurned > 0 {
		exercise.CaloriesBurned = result.Exercise.CaloriesBurned
		exercise.Source = SourceMETDatabase
		return
	}
	exercise.Source = SourceAIEstimate
}
