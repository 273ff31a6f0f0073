package nutrition

import "strings"

// fallbackTable covers common foods with per-100g values, for when the remote
// lookup is unavailable or comes back empty.
var fallbackTable = map[string]Nutrients{
	// Proteins
	"chicken breast":  {Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0},
	"chicken":         {Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0},
	"grilled chicken": {Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0},
	"chicken thigh":   {Calories: 209, Protein: 26, Fat: 11, Carbs: 0},
	"ground turkey":   {Calories: 149, Protein: 20, Fat: 7, Carbs: 0},
	"turkey":          {Calories: 149, Protein: 20, Fat: 7, Carbs: 0},
	"ground beef":     {Calories: 254, Protein: 26, Fat: 17, Carbs: 0},
	"beef":            {Calories: 254, Protein: 26, Fat: 17, Carbs: 0},
	"salmon":          {Calories: 208, Protein: 25, Fat: 12, Carbs: 0},
	"tuna":            {Calories: 144, Protein: 30, Fat: 1, Carbs: 0},
	"eggs":            {Calories: 155, Protein: 13, Fat: 11, Carbs: 1},
	"egg":             {Calories: 155, Protein: 13, Fat: 11, Carbs: 1},

	// Dairy
	"cottage cheese":       {Calories: 98, Protein: 11, Fat: 4, Carbs: 3},
	"4% cottage cheese":    {Calories: 98, Protein: 11, Fat: 4, Carbs: 3},
	"cheddar cheese":       {Calories: 403, Protein: 25, Fat: 33, Carbs: 1},
	"cheese":               {Calories: 403, Protein: 25, Fat: 33, Carbs: 1},
	"milk":                 {Calories: 42, Protein: 3, Fat: 1, Carbs: 5},
	"almond milk":          {Calories: 15, Protein: 0.6, Fat: 1.1, Carbs: 0.6},
	"unsweet almond milk":  {Calories: 15, Protein: 0.6, Fat: 1.1, Carbs: 0.6},
	"greek yogurt":         {Calories: 59, Protein: 10, Fat: 0.4, Carbs: 3.6},

	// Grains & carbs
	"rice":                 {Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28},
	"brown rice":           {Calories: 111, Protein: 2.6, Fat: 0.9, Carbs: 23},
	"white rice":           {Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28},
	"quinoa":               {Calories: 120, Protein: 4.4, Fat: 1.9, Carbs: 22},
	"oats":                 {Calories: 68, Protein: 2.4, Fat: 1.4, Carbs: 12},
	"steel cut oats":       {Calories: 68, Protein: 2.4, Fat: 1.4, Carbs: 12},
	"quick steel cut oats": {Calories: 68, Protein: 2.4, Fat: 1.4, Carbs: 12},
	"bread":                {Calories: 265, Protein: 9, Fat: 3.2, Carbs: 49},
	"whole wheat bread":    {Calories: 247, Protein: 13, Fat: 4.2, Carbs: 41},
	"bagel":                {Calories: 257, Protein: 10, Fat: 1.5, Carbs: 50},
	"pasta":                {Calories: 131, Protein: 5, Fat: 1.1, Carbs: 25},
	"tortilla":             {Calories: 218, Protein: 6, Fat: 3.3, Carbs: 43},
	"corn tortilla":        {Calories: 218, Protein: 6, Fat: 3.3, Carbs: 43},
	"tortillas":            {Calories: 218, Protein: 6, Fat: 3.3, Carbs: 43},

	// Nuts & seeds
	"peanut butter": {Calories: 588, Protein: 25, Fat: 50, Carbs: 20},
	"almonds":       {Calories: 579, Protein: 21, Fat: 50, Carbs: 22},
	"walnuts":       {Calories: 654, Protein: 15, Fat: 65, Carbs: 14},

	// Fruits
	"banana":       {Calories: 89, Protein: 1.1, Fat: 0.3, Carbs: 23},
	"apple":        {Calories: 52, Protein: 0.3, Fat: 0.2, Carbs: 14},
	"berries":      {Calories: 57, Protein: 0.7, Fat: 0.3, Carbs: 14},
	"blueberries":  {Calories: 57, Protein: 0.7, Fat: 0.3, Carbs: 14},
	"strawberries": {Calories: 32, Protein: 0.7, Fat: 0.3, Carbs: 8},

	// Vegetables
	"broccoli":     {Calories: 34, Protein: 2.8, Fat: 0.4, Carbs: 7},
	"spinach":      {Calories: 23, Protein: 2.9, Fat: 0.4, Carbs: 3.6},
	"carrots":      {Calories: 41, Protein: 0.9, Fat: 0.2, Carbs: 10},
	"sweet potato": {Calories: 86, Protein: 1.6, Fat: 0.1, Carbs: 20},

	// Oils & fats
	"olive oil": {Calories: 884, Protein: 0, Fat: 100, Carbs: 0},
	"butter":    {Calories: 717, Protein: 0.9, Fat: 81, Carbs: 0.1},
}

// fallbackNutrients finds a table entry for an item name. Exact
// case-insensitive match first, then substring match in either direction.
// Among substring candidates the longest key wins (ties alphabetically), so
// "blueberries" beats "berries" and a short key cannot shadow a more specific
// one.
func fallbackNutrients(item string) (Nutrients, bool) {
	key := strings.ToLower(strings.TrimSpace(item))
	if key == "" {
		return Nutrients{}, false
	}
	if n, ok := fallbackTable[key]; ok {
		return n, true
	}

	best := ""
	for k := range fallbackTable {
		if !strings.Contains(key, k) && !strings.Contains(k, key) {
			continue
		}
		if len(k) > len(best) || (len(k) == len(best) && k < best) {
			best = k
		}
	}
	if best == "" {
		return Nutrients{}, false
	}
	return fallbackTable[best], true
}
