// Package metdb looks up MET (metabolic equivalent) values for exercises in
// the Supabase exercise_database table and turns them into calorie estimates.
// Lookups are substring matches on the remote side, so "running" finds
// "running, 6 mph".
package metdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
	"noerkrieg.com/fitlog/calc"
)

type Exercise struct {
	Name           string  `json:"exercise_name"`
	Category       string  `json:"category"`
	METValue       float64 `json:"met_value"`
	Description    string  `json:"description"`
	CaloriesBurned int     `json:"calories_burned,omitempty"`
}

// Result distinguishes "not in the database" from a lookup failure, which is
// reported as an error instead.
type Result struct {
	Found    bool      `json:"found"`
	Exercise *Exercise `json:"exercise,omitempty"`
}

type Service struct {
	client *supabase.Client
	cache  *Cache // optional
}

func NewService(client *supabase.Client, cache *Cache) *Service {
	return &Service{client: client, cache: cache}
}

// Lookup finds an exercise by fuzzy name match and, when the duration is
// known, attaches a MET-based calorie estimate. weightKg <= 0 falls back to
// the default bodyweight.
func (s *Service) Lookup(ctx context.Context, name string, durationMinutes, weightKg float64) (*Result, error) {
	row, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &Result{Found: false}, nil
	}

	exercise := &Exercise{
		Name:        row.Name,
		Category:    row.Category,
		METValue:    row.METValue,
		Description: row.Description,
	}
	if durationMinutes > 0 {
		exercise.CaloriesBurned = calc.METCalories(row.METValue, weightKg, durationMinutes)
	}
	return &Result{Found: true, Exercise: exercise}, nil
}

func (s *Service) find(ctx context.Context, name string) (*Exercise, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}

	if row, ok := s.cache.get(ctx, name); ok {
		return row, nil
	}

	data, _, err := s.client.From("exercise_database").
		Select("exercise_name,category,met_value,description", "exact", false).
		Ilike("exercise_name", "%"+name+"%").
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("querying exercise database: %w", err)
	}

	var rows []Exercise
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding exercise rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	s.cache.put(ctx, name, &rows[0])
	return &rows[0], nil
}
