package parser

import (
	"math"
	"testing"
)

func TestParseExercise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ParsedExercise
	}{
		{
			name:  "comma sets-of-at form",
			input: "bench press, 3 sets of 8 at 185 pounds",
			want:  &ParsedExercise{Exercise: "bench press", Sets: 3, Reps: 8, Weight: 185},
		},
		{
			name:  "sets reps pounds form",
			input: "squat 5 sets 5 reps 225 lbs",
			want:  &ParsedExercise{Exercise: "squat", Sets: 5, Reps: 5, Weight: 225},
		},
		{
			name:  "sets lead and the name sits in the middle",
			input: "3 sets of 8 bench press at 185",
			want:  &ParsedExercise{Exercise: "bench press", Sets: 3, Reps: 8, Weight: 185},
		},
		{
			name:  "NxM shorthand",
			input: "bench press 3x8 at 185",
			want:  &ParsedExercise{Exercise: "bench press", Sets: 3, Reps: 8, Weight: 185},
		},
		{
			name:  "weight leads",
			input: "185 pound bench press 3 sets of 8",
			want:  &ParsedExercise{Exercise: "bench press", Sets: 3, Reps: 8, Weight: 185},
		},
		{
			name:  "N by M connector",
			input: "overhead press 4 by 6 at 95",
			want:  &ParsedExercise{Exercise: "overhead press", Sets: 4, Reps: 6, Weight: 95},
		},
		{
			name:  "decimal weight",
			input: "deadlift, 2 sets of 3 at 312.5 pounds",
			want:  &ParsedExercise{Exercise: "deadlift", Sets: 2, Reps: 3, Weight: 312.5},
		},
		{
			name:  "no grammar matches",
			input: "did some stuff today",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExercise(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseExercise(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseExercise(%q) = nil, want %+v", tt.input, tt.want)
			}
			if *got != *tt.want {
				t.Errorf("ParseExercise(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// An input that satisfies more than one grammar must resolve through the
// earliest one; priority is ordinal only, with no scoring.
func TestParseExerciseFirstMatchWins(t *testing.T) {
	// Satisfies both the NxM grammar and the later by|x grammar.
	got := ParseExercise("curl 3x10 at 25")
	if got == nil {
		t.Fatal("expected a match")
	}
	want := ParsedExercise{Exercise: "curl", Sets: 3, Reps: 10, Weight: 25}
	if *got != want {
		t.Errorf("got %+v, want %+v (field mapping of the first matching pattern)", got, want)
	}
}

func TestParseCardio(t *testing.T) {
	got := ParseCardio("run 3 miles in 25 minutes")
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.Activity != "run" || got.Distance != 3 || got.Duration != 25 {
		t.Errorf("got %+v", got)
	}
	if math.Abs(got.Pace-25.0/3.0) > 1e-9 {
		t.Errorf("pace = %v, want %v", got.Pace, 25.0/3.0)
	}

	for _, input := range []string{
		"run 3 miles",          // no duration
		"ran for 25 minutes",   // no distance
		"went for a nice walk", // neither
	} {
		if p := ParseCardio(input); p != nil {
			t.Errorf("ParseCardio(%q) = %+v, want nil", input, p)
		}
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"214.5 pounds", 214.5},
		{"214.5", 214.5},
		{"190 lbs", 190},
		{"weighed in at 201", 201},
	}
	for _, tt := range tests {
		got := ParseWeight(tt.input)
		if got == nil || got.Weight != tt.want {
			t.Errorf("ParseWeight(%q) = %+v, want weight %v", tt.input, got, tt.want)
		}
	}

	if p := ParseWeight("no scale today"); p != nil {
		t.Errorf("ParseWeight on numberless input = %+v, want nil", p)
	}
}

func TestParseMeal(t *testing.T) {
	orig := EstimateMeal
	defer func() { EstimateMeal = orig }()
	EstimateMeal = func(string) (int, int) { return 400, 25 }

	got := ParseMeal("Grilled chicken with rice")
	if got == nil {
		t.Fatal("expected a result for non-empty text")
	}
	if got.Meal != "Grilled chicken with rice" {
		t.Errorf("meal text altered: %q", got.Meal)
	}
	if got.Calories != 400 || got.Protein != 25 || !got.Estimated {
		t.Errorf("got %+v, want estimator values flagged as estimated", got)
	}

	if p := ParseMeal("   "); p != nil {
		t.Errorf("ParseMeal on blank input = %+v, want nil", p)
	}
}

func TestParseDispatch(t *testing.T) {
	if got := Parse("BENCH PRESS, 3 Sets of 8 at 185 Pounds", TypeExercise); got == nil {
		t.Error("dispatch should lowercase before matching")
	}
	// Meal keeps its original casing for display.
	got := Parse("Two Eggs and Toast", TypeMeal)
	meal, ok := got.(*ParsedMeal)
	if !ok || meal.Meal != "Two Eggs and Toast" {
		t.Errorf("Parse meal = %#v, want original-case text", got)
	}
	if got := Parse("did some stuff today", TypeExercise); got != nil {
		t.Errorf("unparseable input should yield nil, got %#v", got)
	}
	if got := Parse("214.5", RecordType("unknown")); got != nil {
		t.Errorf("unknown record type should yield nil, got %#v", got)
	}
}
