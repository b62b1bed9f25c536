package plan

import (
	"math"
	"strings"
	"time"
)

// DietPreference is the user's base diet.
type DietPreference string

const (
	Veg    DietPreference = "veg"
	NonVeg DietPreference = "non-veg"
	Vegan  DietPreference = "vegan"
)

// Valid reports whether p is a known diet preference.
func (p DietPreference) Valid() bool { return p == Veg || p == NonVeg || p == Vegan }

// templateBaselineCalories is the daily total both meal templates are written for.
const templateBaselineCalories = 1800

// Meal is one slot of a diet plan.
type Meal struct {
	Slot     string `json:"slot"`
	Food     string `json:"food"`
	Quantity string `json:"quantity"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
}

// DietPlan is a day's scaled meal plan. TotalCalories is the user's target;
// the meal calories are rounded independently and may not sum to it exactly.
type DietPlan struct {
	TotalCalories   int    `json:"total_calories"`
	ProteinTarget   int    `json:"protein_target"`
	IsRestrictedDay bool   `json:"is_restricted_day"`
	Meals           []Meal `json:"meals"`
}

// DietProfile is the subset of a user profile the diet generator needs.
type DietProfile struct {
	Preference     DietPreference
	RestrictedDays []string
	CalorieTarget  int
}

// Both templates sum to templateBaselineCalories.
var nonVegTemplate = []Meal{
	{Slot: "Breakfast", Food: "Scrambled eggs with whole wheat toast", Quantity: "3 eggs + 2 slices", Calories: 400, ProteinG: 24},
	{Slot: "Lunch", Food: "Grilled chicken with rice and salad", Quantity: "150g chicken + 1 cup rice", Calories: 550, ProteinG: 45},
	{Slot: "Snack", Food: "Greek yogurt with banana", Quantity: "1 cup + 1 banana", Calories: 250, ProteinG: 20},
	{Slot: "Dinner", Food: "Fish curry with roti", Quantity: "150g fish + 2 roti", Calories: 600, ProteinG: 40},
}

// vegTemplate is vegan-compatible so it serves veg, vegan and restricted days.
var vegTemplate = []Meal{
	{Slot: "Breakfast", Food: "Oats with peanut butter and banana", Quantity: "60g oats + 1 tbsp + 1 banana", Calories: 420, ProteinG: 16},
	{Slot: "Lunch", Food: "Dal, rice and mixed sabzi", Quantity: "1 bowl dal + 1 cup rice", Calories: 550, ProteinG: 22},
	{Slot: "Snack", Food: "Roasted chana and sprouts chaat", Quantity: "1 bowl", Calories: 250, ProteinG: 14},
	{Slot: "Dinner", Food: "Tofu bhurji with roti", Quantity: "150g tofu + 2 roti", Calories: 580, ProteinG: 30},
}

// IsRestrictedDay reports whether a non-veg user eats vegetarian on weekday.
// Veg and vegan users are never "restricted"; they always get the veg template.
func IsRestrictedDay(p DietProfile, weekday time.Weekday) bool {
	if p.Preference != NonVeg {
		return false
	}
	name := weekday.String()
	for _, d := range p.RestrictedDays {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// GenerateDietPlan scales the matching four-meal template to p.CalorieTarget.
func GenerateDietPlan(p DietProfile, weekday time.Weekday) DietPlan {
	restricted := IsRestrictedDay(p, weekday)
	template := vegTemplate
	if p.Preference == NonVeg && !restricted {
		template = nonVegTemplate
	}

	ratio := float64(p.CalorieTarget) / templateBaselineCalories
	meals := make([]Meal, len(template))
	protein := 0
	for i, m := range template {
		m.Calories = int(math.Round(float64(m.Calories) * ratio))
		m.ProteinG = int(math.Round(float64(m.ProteinG) * ratio))
		protein += m.ProteinG
		meals[i] = m
	}

	return DietPlan{
		TotalCalories:   p.CalorieTarget,
		ProteinTarget:   protein,
		IsRestrictedDay: restricted,
		Meals:           meals,
	}
}

// ValidWeekday reports whether name is an English weekday name (any case).
func ValidWeekday(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return true
		}
	}
	return false
}
