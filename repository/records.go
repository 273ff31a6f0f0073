package repository

import (
	"encoding/json"
	"fmt"
)

// Row shapes for the record tables. Dates are "2006-01-02" strings, matching
// the date columns on the Supabase side.

type FoodLog struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	Meal     string `json:"meal"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}

type ExerciseLog struct {
	ID       string  `json:"id,omitempty"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

type WeightLog struct {
	ID     string  `json:"id,omitempty"`
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type DailyLog struct {
	ID              string          `json:"id,omitempty"`
	UserID          string          `json:"user_id"`
	Date            string          `json:"date"`
	ItemID          string          `json:"item_id"`
	ItemType        string          `json:"item_type"` // "meal" or "exercise"
	Completed       bool            `json:"completed"`
	ModifiedDetails json.RawMessage `json:"modified_details,omitempty"`
}

type MealPlan struct {
	ID       string          `json:"id,omitempty"`
	UserID   string          `json:"user_id"`
	MealType string          `json:"meal_type"`
	Details  json.RawMessage `json:"details"`
}

func (s *Store) InsertFood(row FoodLog) error {
	_, _, err := s.client.From("food").Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting food log: %w", err)
	}
	return nil
}

func (s *Store) InsertExercise(row ExerciseLog) error {
	_, _, err := s.client.From("exercises").Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting exercise log: %w", err)
	}
	return nil
}

func (s *Store) InsertWeight(row WeightLog) error {
	_, _, err := s.client.From("weight_logs").Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting weight log: %w", err)
	}
	return nil
}

// UpsertDailyLog marks a planned item complete (or not) for one day.
func (s *Store) UpsertDailyLog(row DailyLog) error {
	_, _, err := s.client.From("daily_logs").Insert(row, true, "user_id,date,item_id", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("upserting daily log: %w", err)
	}
	return nil
}

// EarliestWeightDate returns the date of the user's first weight log, or ""
// when they have none.
func (s *Store) EarliestWeightDate(userID string) (string, error) {
	data, _, err := s.client.From("weight_logs").
		Select("date", "exact", false).
		Eq("user_id", userID).
		Order("date", nil).
		Limit(1, "").
		Execute()
	if err != nil {
		return "", fmt.Errorf("querying earliest weight log: %w", err)
	}
	var rows []struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return "", fmt.Errorf("decoding weight logs: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Date, nil
}

func (s *Store) WeightsSince(userID, since string) ([]WeightLog, error) {
	data, _, err := s.client.From("weight_logs").
		Select("weight,date", "exact", false).
		Eq("user_id", userID).
		Gte("date", since).
		Order("date", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying weight logs: %w", err)
	}
	var rows []WeightLog
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding weight logs: %w", err)
	}
	return rows, nil
}

func (s *Store) FoodSince(userID, since string) ([]FoodLog, error) {
	data, _, err := s.client.From("food").
		Select("meal,calories,protein,date", "exact", false).
		Eq("user_id", userID).
		Gte("date", since).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying food logs: %w", err)
	}
	var rows []FoodLog
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding food logs: %w", err)
	}
	return rows, nil
}

func (s *Store) ExercisesSince(userID, since string) ([]ExerciseLog, error) {
	data, _, err := s.client.From("exercises").
		Select("exercise,weight,reps,sets,date", "exact", false).
		Eq("user_id", userID).
		Gte("date", since).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying exercise logs: %w", err)
	}
	var rows []ExerciseLog
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding exercise logs: %w", err)
	}
	return rows, nil
}

func (s *Store) DailyLogsSince(userID, since string) ([]DailyLog, error) {
	data, _, err := s.client.From("daily_logs").
		Select("completed,item_type,date", "exact", false).
		Eq("user_id", userID).
		Gte("date", since).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying daily logs: %w", err)
	}
	var rows []DailyLog
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding daily logs: %w", err)
	}
	return rows, nil
}

// MealPlans returns the user's planned meals. Details is free-form JSON from
// the planner UI; macro fields inside may be numbers or text ranges, so
// aggregation goes through calc.MacroValue.
func (s *Store) MealPlans(userID string) ([]MealPlan, error) {
	data, _, err := s.client.From("meal_plans").
		Select("meal_type,details", "exact", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying meal plans: %w", err)
	}
	var rows []MealPlan
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding meal plans: %w", err)
	}
	return rows, nil
}
