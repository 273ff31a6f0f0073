// Package parser turns free-text fitness log entries like
// "bench press, 3 sets of 8 at 185 pounds" into typed records using an
// ordered table of grammars. It is pure and never returns an error: a nil
// result means the input matched nothing and the caller should ask the user
// to rephrase.
package parser

import (
	"strconv"
	"strings"
)

// ParseExercise matches text against the exercise grammars in priority order.
func ParseExercise(text string) *ParsedExercise {
	for _, p := range exercisePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		sets, _ := strconv.Atoi(m[p.fields.sets])
		reps, _ := strconv.Atoi(m[p.fields.reps])
		weight, _ := strconv.ParseFloat(m[p.fields.weight], 64)
		return &ParsedExercise{
			Exercise: strings.TrimSpace(m[p.fields.exercise]),
			Sets:     sets,
			Reps:     reps,
			Weight:   weight,
		}
	}
	return nil
}

// ParseCardio matches "<activity> <N> miles in <M> minutes". Pace is derived
// from duration and distance here; it is never taken from the input.
func ParseCardio(text string) *ParsedCardio {
	m := cardioPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	distance, _ := strconv.ParseFloat(m[2], 64)
	duration, _ := strconv.ParseFloat(m[3], 64)
	if distance <= 0 || duration <= 0 {
		return nil
	}
	return &ParsedCardio{
		Activity: strings.TrimSpace(m[1]),
		Distance: distance,
		Duration: duration,
		Pace:     duration / distance,
	}
}

// ParseMeal accepts any non-empty description. No grammar applies; the macro
// numbers at this layer come from the low-confidence estimator and are
// expected to be replaced by database-backed values downstream.
func ParseMeal(text string) *ParsedMeal {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	calories, protein := EstimateMeal(text)
	return &ParsedMeal{
		Meal:      text,
		Calories:  calories,
		Protein:   protein,
		Estimated: true,
	}
}

// ParseWeight extracts the first decimal number, with an optional
// pounds/lbs suffix.
func ParseWeight(text string) *ParsedWeight {
	m := weightPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	weight, err := strconv.ParseFloat(m[1], 64)
	if err != nil || weight <= 0 {
		return nil
	}
	return &ParsedWeight{Weight: weight}
}

// Parse lowercases and trims the input, then dispatches to the grammar family
// for the record type. Meal text keeps its original casing for display. The
// result is nil when nothing matched.
func Parse(input string, recordType RecordType) any {
	text := strings.ToLower(strings.TrimSpace(input))

	switch recordType {
	case TypeExercise:
		if p := ParseExercise(text); p != nil {
			return p
		}
	case TypeCardio:
		if p := ParseCardio(text); p != nil {
			return p
		}
	case TypeMeal:
		if p := ParseMeal(strings.TrimSpace(input)); p != nil {
			return p
		}
	case TypeWeight:
		if p := ParseWeight(text); p != nil {
			return p
		}
	}
	return nil
}
