package extractor

import "fmt"

// The prompts are a contract with the model: they pin down the required keys,
// numeric types, default policies, and the JSON-only output constraint. The
// validator in validate.go enforces the same contract on the way back.

const systemPrompt = "You are a nutrition/fitness parser. Return only valid JSON matching the exact format requested."

const foodExample = `{"calories": 300, "protein": 30, "fat": 10, "carbs": 25, "items": ["grilled chicken breast", "brown rice"], "quantities": [{"item": "grilled chicken breast", "amount": 150, "unit": "grams"}, {"item": "brown rice", "amount": 100, "unit": "grams"}]}`

func foodPrompt(input string) string {
	return fmt.Sprintf(`Parse this food description into valid JSON with this exact format: %s

CRITICAL RULES for quantity parsing:
- Extract ALL specific amounts and units mentioned (e.g., "3 tortillas" = amount: 3, unit: "tortillas")
- For weight measurements, use exact numbers (e.g., "106g chicken" = amount: 106, unit: "grams")
- For volume measurements, convert to standard units (e.g., "1 cup" = amount: 1, unit: "cup")
- Each item in "items" array must have a corresponding entry in "quantities" array
- If no specific quantity is mentioned, estimate a reasonable serving size in grams
- Use precise units: "grams", "cups", "tablespoons", "ounces", "pieces", "slices", etc.
- The quantities will be used to calculate accurate nutrition via a database lookup
- All of calories, protein, fat and carbs must be integers

CALORIE ESTIMATION RULES (temporary estimates, replaced by database values):
- Be CONSERVATIVE with calorie estimates - better to underestimate than overestimate
- Rough guidelines: chicken breast ~165 cal/100g, cheese ~400 cal/100g, rice/grains ~130 cal/100g, vegetables ~20-50 cal/100g, tortillas ~220 cal/100g, bread ~250 cal/100g
- Maximum reasonable calories for a normal meal: 800-1000

Input: "%s"

Return only valid JSON, no additional text, no code fences:`, foodExample, input)
}

const exerciseExample = `{"exercise_name": "bench press", "exercise_type": "strength", "sets": 4, "reps": 10, "weight": 135, "calories_burned": 180}`

func exercisePrompt(input string) string {
	return fmt.Sprintf(`Parse this exercise description into valid JSON with this exact format: %s

Rules:
- Determine if this is a "cardio" or "strength" exercise; exercise_type must be exactly one of those two values
- For CARDIO (running, cycling, swimming, etc.): include duration_minutes, distance (if mentioned), and estimate calories_burned
- For STRENGTH (weights, bodyweight exercises): include sets, reps, weight (if mentioned), and estimate calories_burned
- Extract exercise_name (lowercase, descriptive)
- Default to 3 sets if the set count is not specified
- Use reasonable numeric estimates for missing values; all counts are numbers, never strings

Input: "%s"

Return only valid JSON, no additional text, no code fences:`, exerciseExample, input)
}
