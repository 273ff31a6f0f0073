package parser

import "regexp"

// fieldMap says which capture group holds which exercise field for one
// pattern. The grammars put the exercise name, set count and weight in
// different positions, so extraction is per-pattern rather than uniform.
type fieldMap struct {
	exercise int
	sets     int
	reps     int
	weight   int
}

// standard order: exercise, sets, reps, weight
var standardFields = fieldMap{exercise: 1, sets: 2, reps: 3, weight: 4}

type exercisePattern struct {
	re     *regexp.Regexp
	fields fieldMap
}

// exercisePatterns are tried in order and the first match wins. There is no
// scoring; priority is purely ordinal, which keeps ambiguous inputs
// deterministic.
var exercisePatterns = []exercisePattern{
	// "bench press, 3 sets of 8 at 185 pounds"
	{regexp.MustCompile(`(.+?),?\s*(\d+)\s*sets?\s*of\s*(\d+)\s*(?:at|@)\s*(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`), standardFields},
	// "bench press 3 sets 8 reps 185 pounds"
	{regexp.MustCompile(`(.+?)\s*(\d+)\s*sets?\s*(\d+)\s*(?:reps?)\s*(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`), standardFields},
	// "3 sets of 8 bench press at 185": sets lead, the name sits in the middle
	{regexp.MustCompile(`(\d+)\s*sets?\s*of\s*(\d+)\s*(.+?)\s*(?:at|@)\s*(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`), fieldMap{exercise: 3, sets: 1, reps: 2, weight: 4}},
	// "bench press 3x8 at 185"
	{regexp.MustCompile(`(.+?)\s*(\d+)\s*x\s*(\d+)\s*(?:at|@)\s*(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`), standardFields},
	// "185 pound bench press 3 sets of 8": weight leads
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)\s*(.+?)\s*(\d+)\s*sets?\s*of\s*(\d+)`), fieldMap{exercise: 2, sets: 3, reps: 4, weight: 1}},
	// "bench press 3 by 8 at 185"
	{regexp.MustCompile(`(.+?)\s*(\d+)\s*(?:by|x)\s*(\d+)\s*(?:at|@)?\s*(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`), standardFields},
}

// "run 3 miles in 25 minutes": distance and duration are both mandatory.
var cardioPattern = regexp.MustCompile(`(.+?)\s*(\d+(?:\.\d+)?)\s*miles?\s*in\s*(\d+(?:\.\d+)?)\s*minutes?`)

// "214.5 pounds": the unit is optional, a bare number is enough.
var weightPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:pounds?|lbs?)?`)
