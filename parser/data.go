package parser

// RecordType selects which grammar family an input is matched against.
type RecordType string

const (
	TypeExercise RecordType = "exercise"
	TypeCardio   RecordType = "cardio"
	TypeMeal     RecordType = "meal"
	TypeWeight   RecordType = "weight"
)

type ParsedExercise struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

type ParsedCardio struct {
	Activity string  `json:"activity"`
	Distance float64 `json:"distance"` // miles
	Duration float64 `json:"duration"` // minutes
	// Pace is always derived as duration/distance, never supplied.
	Pace float64 `json:"pace"` // minutes per mile
}

type ParsedMeal struct {
	Meal      string `json:"meal"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Estimated bool   `json:"estimated"`
}

type ParsedWeight struct {
	Weight float64 `json:"weight"` // pounds
}
