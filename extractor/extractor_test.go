package extractor

import (
	"context"
	"errors"
	"testing"

	"noerkrieg.com/fitlog/metdb"
	"noerkrieg.com/fitlog/nutrition"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(context.Context, string, string, int, float64) (string, error) {
	return s.response, s.err
}

type stubMetLookup struct {
	result *metdb.Result
	err    error
}

func (s *stubMetLookup) Lookup(context.Context, string, float64, float64) (*metdb.Result, error) {
	return s.result, s.err
}

func TestExtractFoodFallbackEnrichment(t *testing.T) {
	completer := &stubCompleter{response: `{
		"calories": 999, "protein": 99, "fat": 99, "carbs": 99,
		"items": ["chicken breast"],
		"quantities": [{"item": "chicken breast", "amount": 200, "unit": "grams"}]
	}`}
	e := New(completer, nutrition.NewService(nil), nil)

	food, err := e.ExtractFood(context.Background(), "200g of chicken breast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the model's numbers must be replaced by the table-backed ones
	if food.Calories != 330 || food.Protein != 62 || food.Fat != 7 || food.Carbs != 0 {
		t.Errorf("macros = %+v, want database-backed 330/62/7/0", food)
	}
	if food.Source != nutrition.SourceFallback {
		t.Errorf("source = %s, want FALLBACK_DB once an item resolved", food.Source)
	}
}

func TestExtractFoodKeepsEstimateWhenNothingResolves(t *testing.T) {
	completer := &stubCompleter{response: `{
		"calories": 650, "protein": 40, "fat": 20, "carbs": 60,
		"items": ["mystery casserole"]
	}`}
	e := New(completer, nutrition.NewService(nil), nil)

	food, err := e.ExtractFood(context.Background(), "a big casserole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if food.Source != SourceAIEstimate {
		t.Errorf("source = %s, want AI_ESTIMATE", food.Source)
	}
	if food.Calories != 650 {
		t.Errorf("plausible estimate altered: %d", food.Calories)
	}
}

func TestExtractFoodClampsImplausibleEstimate(t *testing.T) {
	completer := &stubCompleter{response: `{
		"calories": 1800, "protein": 100, "fat": 50, "carbs": 200,
		"items": ["mystery casserole"]
	}`}
	e := New(completer, nutrition.NewService(nil), nil)

	food, err := e.ExtractFood(context.Background(), "a huge casserole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if food.Source != SourceAIEstimate {
		t.Errorf("source = %s, want AI_ESTIMATE", food.Source)
	}
	if food.Calories != 800 || food.Protein != 80 || food.Fat != 40 || food.Carbs != 160 {
		t.Errorf("clamp not applied: %+v", food)
	}
}

func TestExtractFoodStripsCodeFences(t *testing.T) {
	completer := &stubCompleter{response: "```json\n{\"calories\": 300, \"protein\": 30, \"fat\": 10, \"carbs\": 25, \"items\": [\"mystery casserole\"]}\n```"}
	e := New(completer, nutrition.NewService(nil), nil)

	food, err := e.ExtractFood(context.Background(), "casserole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if food.Calories != 300 {
		t.Errorf("calories = %d, want 300", food.Calories)
	}
}

func TestExtractErrorTaxonomy(t *testing.T) {
	t.Run("completer failure is a ConfigError", func(t *testing.T) {
		e := New(&stubCompleter{err: errors.New("401 unauthorized")}, nil, nil)
		_, err := e.ExtractFood(context.Background(), "anything")
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("got %T (%v), want *ConfigError", err, err)
		}
	})

	t.Run("nil completer is a ConfigError", func(t *testing.T) {
		e := New(nil, nil, nil)
		_, err := e.ExtractExercise(context.Background(), "anything")
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("got %T (%v), want *ConfigError", err, err)
		}
	})

	t.Run("non-JSON response is a FormatError carrying the raw content", func(t *testing.T) {
		e := New(&stubCompleter{response: "Sure! Here is the breakdown you asked for."}, nil, nil)
		_, err := e.ExtractFood(context.Background(), "anything")
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("got %T (%v), want *FormatError", err, err)
		}
		if formatErr.Raw != "Sure! Here is the breakdown you asked for." {
			t.Errorf("Raw = %q, want the untouched model output", formatErr.Raw)
		}
	})

	t.Run("missing required field is a SchemaError", func(t *testing.T) {
		e := New(&stubCompleter{response: `{"calories": 300, "protein": 30, "fat": 10, "carbs": 25}`}, nil, nil)
		_, err := e.ExtractFood(context.Background(), "anything")
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("got %T (%v), want *SchemaError", err, err)
		}
	})

	t.Run("wrong exercise_type is a SchemaError", func(t *testing.T) {
		e := New(&stubCompleter{response: `{"exercise_name": "yoga", "exercise_type": "flexibility"}`}, nil, nil)
		_, err := e.ExtractExercise(context.Background(), "an hour of yoga")
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("got %T (%v), want *SchemaError", err, err)
		}
	})
}

func TestExtractExerciseMETEnrichment(t *testing.T) {
	completer := &stubCompleter{response: `{
		"exercise_name": "running", "exercise_type": "cardio",
		"duration_minutes": 30, "distance": 3, "calories_burned": 999
	}`}
	met := &stubMetLookup{result: &metdb.Result{
		Found:    true,
		Exercise: &metdb.Exercise{Name: "running, 6 mph", METValue: 8, CaloriesBurned: 280},
	}}
	e := New(completer, nil, met)

	exercise, err := e.ExtractExercise(context.Background(), "ran 3 miles in 30 minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exercise.CaloriesBurned != 280 {
		t.Errorf("calories = %d, want the MET-based 280 over the model's guess", exercise.CaloriesBurned)
	}
	if exercise.Source != SourceMETDatabase {
		t.Errorf("source = %s, want MET_DATABASE", exercise.Source)
	}
}

func TestExtractExerciseLookupFailureKeepsEstimate(t *testing.T) {
	completer := &stubCompleter{response: `{
		"exercise_name": "fencing", "exercise_type": "cardio",
		"duration_minutes": 45, "calories_burned": 350
	}`}

	t.Run("lookup error", func(t *testing.T) {
		e := New(completer, nil, &stubMetLookup{err: errors.New("timeout")})
		exercise, err := e.ExtractExercise(context.Background(), "45 minutes of fencing")
		if err != nil {
			t.Fatalf("lookup failure must not fail the extraction: %v", err)
		}
		if exercise.CaloriesBurned != 350 || exercise.Source != SourceAIEstimate {
			t.Errorf("got %+v, want the model estimate tagged AI_ESTIMATE", exercise)
		}
	})

	t.Run("exercise not in database", func(t *testing.T) {
		e := New(completer, nil, &stubMetLookup{result: &metdb.Result{Found: false}})
		exercise, err := e.ExtractExercise(context.Background(), "45 minutes of fencing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exercise.Source != SourceAIEstimate {
			t.Errorf("source = %s, want AI_ESTIMATE", exercise.Source)
		}
	})
}

func TestExtractDispatch(t *testing.T) {
	e := New(&stubCompleter{response: `{"calories": 1, "protein": 1, "fat": 1, "carbs": 1, "items": ["x"]}`}, nil, nil)
	if _, err := e.Extract(context.Background(), "x", Kind("drink")); err == nil {
		t.Error("unknown kind should error")
	}
	result, err := e.Extract(context.Background(), "x", KindFood)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.(*FoodResult); !ok {
		t.Errorf("got %T, want *FoodResult", result)
	}
}
