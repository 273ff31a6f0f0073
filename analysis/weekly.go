package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"noerkrieg.com/fitlog/calc"
	"noerkrieg.com/fitlog/extractor"
	"noerkrieg.com/fitlog/repository"
)

const (
	analysisWindowDays = 28
	minWeeksOfData     = 4

	analysisMaxTokens   = 300
	analysisTemperature = 0.7
)

const coachSystemPrompt = "You are a supportive fitness coach providing weekly progress analysis. Be encouraging, specific, and actionable."

// RecordStore is the slice of the repository the analyzer reads from.
type RecordStore interface {
	EarliestWeightDate(userID string) (string, error)
	WeightsSince(userID, since string) ([]repository.WeightLog, error)
	FoodSince(userID, since string) ([]repository.FoodLog, error)
	ExercisesSince(userID, since string) ([]repository.ExerciseLog, error)
	DailyLogsSince(userID, since string) ([]repository.DailyLog, error)
	MealPlans(userID string) ([]repository.MealPlan, error)
}

// Result carries exactly one of Analysis or Message. Message is set when
// there is not enough history for a meaningful analysis.
type Result struct {
	Analysis string `json:"analysis,omitempty"`
	Message  string `json:"message,omitempty"`
}

type Analyzer struct {
	store     RecordStore
	completer extractor.Completer
	now       func() time.Time
}

func NewAnalyzer(store RecordStore, completer extractor.Completer) *Analyzer {
	return &Analyzer{store: store, completer: completer, now: time.Now}
}

type aggregates struct {
	Timeframe string `json:"timeframe"`
	Weight    struct {
		Current  float64 `json:"current"`
		Starting float64 `json:"starting"`
		Change   float64 `json:"change"`
	} `json:"weight"`
	Nutrition struct {
		AvgDailyCalories int `json:"avgDailyCalories"`
		AvgDailyProtein  int `json:"avgDailyProtein"`
		TotalMealsLogged int `json:"totalMealsLogged"`
	} `json:"nutrition"`
	Fitness struct {
		TotalExercises int `json:"totalExercises"`
		StrengthMetric int `json:"strengthMetric"`
	} `json:"fitness"`
	Adherence struct {
		CompletionRate     int `json:"completionRate"`
		MealCompletions    int `json:"mealCompletions"`
		WorkoutCompletions int `json:"workoutCompletions"`
	} `json:"adherence"`
	PlannedDailyCalories int `json:"plannedDailyCalories,omitempty"`
}

// Weekly aggregates the last four weeks of logs and asks the coach model for
// a progress writeup. Users with under four weeks of history get a progress
// message instead.
func (a *Analyzer) Weekly(ctx context.Context, userID string) (*Result, error) {
	if a.completer == nil {
		return nil, fmt.Errorf("completion service not configured")
	}
	earliest, err := a.store.EarliestWeightDate(userID)
	if err != nil {
		return nil, fmt.Errorf("checking log history: %w", err)
	}
	if earliest == "" {
		return &Result{Message: "Not enough data yet. Start logging your weight and activities to get AI insights!"}, nil
	}

	firstLog, err := time.Parse("2006-01-02", earliest)
	if err != nil {
		return nil, fmt.Errorf("bad earliest log date %q: %w", earliest, err)
	}
	weeksPassed := int(a.now().Sub(firstLog).Hours() / (7 * 24))
	if weeksPassed < minWeeksOfData {
		return &Result{Message: fmt.Sprintf("Collecting data: %d more weeks needed for comprehensive AI analysis.", minWeeksOfData-weeksPassed)}, nil
	}

	agg, err := a.aggregate(userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding aggregates: %w", err)
	}

	prompt := fmt.Sprintf(`As a fitness coach, analyze this 4-week fitness progress data and provide insights:

%s

Goals: build strength, maintain consistent nutrition and exercise habits.

Provide a concise analysis covering:
1. Progress toward weight goal
2. Nutrition consistency and recommendations
3. Strength/fitness improvements
4. Adherence patterns
5. Specific actionable recommendations for next week

Keep response under 200 words and be encouraging but honest.`, payload)

	content, err := a.completer.Complete(ctx, coachSystemPrompt, prompt, analysisMaxTokens, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("generating analysis: %w", err)
	}
	if content == "" {
		content = "Analysis completed but no content received."
	}
	return &Result{Analysis: content}, nil
}

func (a *Analyzer) aggregate(userID string) (*aggregates, error) {
	since := a.now().AddDate(0, 0, -analysisWindowDays).Format("2006-01-02")

	weights, err := a.store.WeightsSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("aggregating weights: %w", err)
	}
	food, err := a.store.FoodSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("aggregating food logs: %w", err)
	}
	exercises, err := a.store.ExercisesSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("aggregating exercise logs: %w", err)
	}
	dailyLogs, err := a.store.DailyLogsSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("aggregating daily logs: %w", err)
	}

	agg := &aggregates{Timeframe: "4 weeks"}

	if len(weights) > 0 {
		agg.Weight.Starting = weights[0].Weight
		agg.Weight.Current = weights[len(weights)-1].Weight
		agg.Weight.Change = agg.Weight.Current - agg.Weight.Starting
	}

	var totalCalories, totalProtein int
	for _, meal := range food {
		totalCalories += meal.Calories
		totalProtein += meal.Protein
	}
	agg.Nutrition.AvgDailyCalories = int(math.Round(float64(totalCalories) / analysisWindowDays))
	agg.Nutrition.AvgDailyProtein = int(math.Round(float64(totalProtein) / analysisWindowDays))
	agg.Nutrition.TotalMealsLogged = len(food)

	var strengthMetric float64
	for _, ex := range exercises {
		strengthMetric += ex.Weight * float64(ex.Sets) * float64(ex.Reps)
	}
	agg.Fitness.TotalExercises = len(exercises)
	agg.Fitness.StrengthMetric = int(math.Round(strengthMetric))

	for _, entry := range dailyLogs {
		if !entry.Completed {
			continue
		}
		switch entry.ItemType {
		case "meal":
			agg.Adherence.MealCompletions++
		case "exercise":
			agg.Adherence.WorkoutCompletions++
		}
	}
	if len(dailyLogs) > 0 {
		completed := agg.Adherence.MealCompletions + agg.Adherence.WorkoutCompletions
		agg.Adherence.CompletionRate = int(math.Round(float64(completed) / float64(len(dailyLogs)) * 100))
	}

	agg.PlannedDailyCalories = a.plannedCalories(userID)
	return agg, nil
}

// plannedCalories sums calorie targets across the user's meal plan. Plan
// details come from the planner UI as loose JSON; macro fields may be numbers
// or text ranges like "400-500", so values go through calc.MacroValue. A
// missing or broken plan just leaves the field at zero.
func (a *Analyzer) plannedCalories(userID string) int {
	plans, err := a.store.MealPlans(userID)
	if err != nil {
		log.Printf("Error loading meal plans for analysis: %v", err)
		return 0
	}
	var total float64
	for _, plan := range plans {
		var details map[string]any
		if err := json.Unmarshal(plan.Details, &details); err != nil {
			continue
		}
		total += calc.MacroValue(details["calories"])
	}
	return int(math.Round(total))
}
