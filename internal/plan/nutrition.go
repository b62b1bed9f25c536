package plan

import (
	"regexp"
	"strconv"
	"strings"
)

// NutritionEstimate is a best-effort guess for a free-text food entry.
// Matched is the keyword that produced it, empty for the fallback.
type NutritionEstimate struct {
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
	Matched  string `json:"matched,omitempty"`
}

// Fallback values used when no keyword matches. Deliberately non-zero so an
// unknown meal is not logged as free.
const (
	FallbackCalories = 400
	FallbackProteinG = 15
)

// MaxQuantity caps the parsed multiplier so absurd inputs stay finite.
const MaxQuantity = 100

type foodEntry struct {
	keyword  string
	calories int
	proteinG int
}

// foodTable is scanned in order; the first substring match wins. Dishes come
// before their ingredients ("chicken biryani" must hit biryani, not chicken)
// and each keyword appears once.
var foodTable = []foodEntry{
	{"biryani", 450, 18},
	{"protein shake", 150, 25},
	{"whey", 120, 24},
	{"peanut butter", 190, 8},
	{"sandwich", 300, 12},
	{"burger", 450, 20},
	{"pizza", 285, 12},
	{"paratha", 260, 6},
	{"dosa", 170, 4},
	{"idli", 60, 2},
	{"poha", 250, 5},
	{"upma", 230, 6},
	{"khichdi", 300, 11},
	{"rajma", 240, 13},
	{"chole", 270, 12},
	{"paneer", 300, 18},
	{"tofu", 150, 16},
	{"chicken", 250, 30},
	{"mutton", 290, 25},
	{"fish", 200, 26},
	{"egg", 70, 6},
	{"dal", 180, 9},
	{"sprouts", 100, 7},
	{"roti", 120, 3},
	{"chapati", 120, 3},
	{"rice", 200, 4},
	{"oats", 150, 5},
	{"milk", 120, 6},
	{"curd", 100, 4},
	{"yogurt", 100, 10},
	{"banana", 105, 1},
	{"apple", 95, 0},
	{"salad", 150, 4},
	{"almond", 7, 0},
}

var quantityPattern = regexp.MustCompile(`[0-9]+`)

// parseQuantity returns the first run of digits in text, 1 when there is none.
func parseQuantity(text string) int {
	digits := quantityPattern.FindString(text)
	if digits == "" {
		return 1
	}
	q, err := strconv.Atoi(digits)
	if err != nil || q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// EstimateNutrition guesses calories and protein for a free-text description
// such as "2 eggs" or "chicken biryani". It never fails: unknown text gets the
// fixed fallback estimate.
func EstimateNutrition(text string) NutritionEstimate {
	lower := strings.ToLower(text)
	for _, f := range foodTable {
		if strings.Contains(lower, f.keyword) {
			q := parseQuantity(text)
			return NutritionEstimate{
				Calories: f.calories * q,
				ProteinG: f.proteinG * q,
				Matched:  f.keyword,
			}
		}
	}
	return NutritionEstimate{Calories: FallbackCalories, ProteinG: FallbackProteinG}
}
