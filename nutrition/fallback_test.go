package nutrition

import (
	"context"
	"testing"
)

func TestFallbackNutrients(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		wantOK   bool
		wantCals float64
	}{
		{"exact match", "chicken breast", true, 165},
		{"exact match is case-insensitive", "Chicken Breast", true, 165},
		{"item contains a table key", "leftover grilled salmon", true, 208},
		{"table key contains the item", "blueberr", true, 57},
		{"longest key wins over shorter substring", "fresh blueberries", true, 57},
		{"nothing matches", "mystery casserole", false, 0},
		{"empty item", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fallbackNutrients(tt.item)
			if ok != tt.wantOK {
				t.Fatalf("fallbackNutrients(%q) ok = %v, want %v", tt.item, ok, tt.wantOK)
			}
			if ok && got.Calories != tt.wantCals {
				t.Errorf("fallbackNutrients(%q) calories = %v, want %v", tt.item, got.Calories, tt.wantCals)
			}
		})
	}
}

// "fresh blueberries" contains both "blueberries" and "berries"; the longer
// key must win regardless of map iteration order.
func TestFallbackLongestKeyTieBreak(t *testing.T) {
	for i := 0; i < 20; i++ {
		got, ok := fallbackNutrients("fresh blueberries")
		if !ok || got != fallbackTable["blueberries"] {
			t.Fatalf("iteration %d: got %+v, want the blueberries entry", i, got)
		}
	}
}

func TestFallbackOnlyServiceScalesByQuantity(t *testing.T) {
	svc := NewService(nil)

	results := svc.LookupMany(context.Background(),
		[]string{"chicken breast"},
		[]Quantity{{Item: "chicken breast", Amount: 200, Unit: "grams"}},
	)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Source != SourceFallback || r.Nutrients == nil {
		t.Fatalf("got %+v, want fallback nutrients", r)
	}
	want := Nutrients{Calories: 330, Protein: 62, Fat: 7, Carbs: 0}
	if *r.Nutrients != want {
		t.Errorf("scaled nutrients = %+v, want %+v", *r.Nutrients, want)
	}
}

func TestQuantitiesMatchByNameNotPosition(t *testing.T) {
	svc := NewService(nil)

	// quantities deliberately listed in the reverse order of items
	results := svc.LookupMany(context.Background(),
		[]string{"chicken breast", "rice"},
		[]Quantity{
			{Item: "rice", Amount: 100, Unit: "grams"},
			{Item: "chicken breast", Amount: 200, Unit: "grams"},
		},
	)
	if results[0].Nutrients.Calories != 330 {
		t.Errorf("chicken calories = %v, want 330 (200g serving)", results[0].Nutrients.Calories)
	}
	if results[1].Nutrients.Calories != 130 {
		t.Errorf("rice calories = %v, want 130 (100g serving)", results[1].Nutrients.Calories)
	}
}

func TestUnmatchedItemIsNotFound(t *testing.T) {
	svc := NewService(nil)
	results := svc.LookupMany(context.Background(), []string{"mystery casserole"}, nil)
	if results[0].Source != SourceNotFound || results[0].Nutrients != nil {
		t.Errorf("got %+v, want NOT_FOUND with nil nutrients", results[0])
	}
}
