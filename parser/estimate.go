package parser

// MealEstimator produces a low-confidence calorie/protein guess for a meal
// description when no nutrition data has been resolved yet.
type MealEstimator func(text string) (calories, protein int)

// EstimateMeal is the estimator used by ParseMeal. It is a package variable so
// tests and callers with a smarter pipeline can substitute their own. The
// default is a fixed conservative guess, deliberately deterministic: the
// AI/lookup path overwrites it with database-backed numbers whenever it can.
var EstimateMeal MealEstimator = conservativeMealEstimate

func conservativeMealEstimate(string) (int, int) {
	return 500, 35
}
