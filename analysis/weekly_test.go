package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"noerkrieg.com/fitlog/repository"
)

type stubStore struct {
	earliest  string
	weights   []repository.WeightLog
	food      []repository.FoodLog
	exercises []repository.ExerciseLog
	dailyLogs []repository.DailyLog
	plans     []repository.MealPlan
}

func (s *stubStore) EarliestWeightDate(userID string) (string, error) { return s.earliest, nil }
func (s *stubStore) WeightsSince(userID, since string) ([]repository.WeightLog, error) {
	return s.weights, nil
}
func (s *stubStore) FoodSince(userID, since string) ([]repository.FoodLog, error) {
	return s.food, nil
}
func (s *stubStore) ExercisesSince(userID, since string) ([]repository.ExerciseLog, error) {
	return s.exercises, nil
}
func (s *stubStore) DailyLogsSince(userID, since string) ([]repository.DailyLog, error) {
	return s.dailyLogs, nil
}
func (s *stubStore) MealPlans(userID string) ([]repository.MealPlan, error) { return s.plans, nil }

type recordingCompleter struct {
	lastPrompt string
	response   string
}

func (c *recordingCompleter) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	c.lastPrompt = user
	return c.response, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestWeeklyNoHistory(t *testing.T) {
	a := NewAnalyzer(&stubStore{}, &recordingCompleter{})
	a.now = fixedNow

	result, err := a.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Weekly returned error: %v", err)
	}
	if result.Analysis != "" {
		t.Errorf("expected no analysis, got %q", result.Analysis)
	}
	if !strings.Contains(result.Message, "Not enough data yet") {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestWeeklyTooFewWeeks(t *testing.T) {
	// 10 days of history: 1 week elapsed, 3 weeks short.
	a := NewAnalyzer(&stubStore{earliest: "2025-05-22"}, &recordingCompleter{})
	a.now = fixedNow

	result, err := a.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Weekly returned error: %v", err)
	}
	if want := "Collecting data: 3 more weeks needed for comprehensive AI analysis."; result.Message != want {
		t.Errorf("message = %q, want %q", result.Message, want)
	}
}

func TestWeeklyAggregates(t *testing.T) {
	planDetails, _ := json.Marshal(map[string]any{"calories": "400-500", "protein": 40})
	store := &stubStore{
		earliest: "2025-01-01",
		weights: []repository.WeightLog{
			{Weight: 200, Date: "2025-05-05"},
			{Weight: 196, Date: "2025-05-30"},
		},
		food: []repository.FoodLog{
			{Calories: 1400, Protein: 70},
			{Calories: 1400, Protein: 70},
		},
		exercises: []repository.ExerciseLog{
			{Exercise: "bench press", Sets: 3, Reps: 8, Weight: 185},
		},
		dailyLogs: []repository.DailyLog{
			{ItemType: "meal", Completed: true},
			{ItemType: "exercise", Completed: true},
			{ItemType: "meal", Completed: false},
			{ItemType: "exercise", Completed: true},
		},
		plans: []repository.MealPlan{
			{MealType: "lunch", Details: planDetails},
		},
	}
	completer := &recordingCompleter{response: "Solid month of training."}
	a := NewAnalyzer(store, completer)
	a.now = fixedNow

	result, err := a.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Weekly returned error: %v", err)
	}
	if result.Analysis != "Solid month of training." {
		t.Errorf("analysis = %q", result.Analysis)
	}

	// The aggregates the model saw should reflect the stub data.
	checks := []string{
		`"current": 196`,
		`"starting": 200`,
		`"change": -4`,
		`"avgDailyCalories": 100`,
		`"avgDailyProtein": 5`,
		`"totalMealsLogged": 2`,
		`"strengthMetric": 4440`,
		`"completionRate": 75`,
		`"mealCompletions": 1`,
		`"workoutCompletions": 2`,
		`"plannedDailyCalories": 450`,
	}
	for _, want := range checks {
		if !strings.Contains(completer.lastPrompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, completer.lastPrompt)
		}
	}
}
