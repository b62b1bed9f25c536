package plan

import (
	"math"
	"testing"
	"time"
)

func sumMeals(meals []Meal) (calories, protein int) {
	for _, m := range meals {
		calories += m.Calories
		protein += m.ProteinG
	}
	return calories, protein
}

func TestTemplatesMatchBaseline(t *testing.T) {
	for name, tmpl := range map[string][]Meal{"non-veg": nonVegTemplate, "veg": vegTemplate} {
		if len(tmpl) != 4 {
			t.Errorf("%s template has %d meals, want 4", name, len(tmpl))
		}
		if cal, _ := sumMeals(tmpl); cal != templateBaselineCalories {
			t.Errorf("%s template sums to %d kcal, want %d", name, cal, templateBaselineCalories)
		}
	}
}

func TestGenerateDietPlan_NonVegScaled(t *testing.T) {
	p := DietProfile{Preference: NonVeg, RestrictedDays: []string{"Monday"}, CalorieTarget: 2467}
	plan := GenerateDietPlan(p, time.Tuesday)

	if plan.IsRestrictedDay {
		t.Error("Tuesday should not be restricted")
	}
	if plan.TotalCalories != 2467 {
		t.Errorf("TotalCalories = %d, want 2467", plan.TotalCalories)
	}
	ratio := 2467.0 / 1800.0
	for i, m := range plan.Meals {
		src := nonVegTemplate[i]
		if m.Slot != src.Slot || m.Food != src.Food {
			t.Errorf("meal %d = %q/%q, want non-veg %q/%q", i, m.Slot, m.Food, src.Slot, src.Food)
		}
		if want := int(math.Round(float64(src.Calories) * ratio)); m.Calories != want {
			t.Errorf("%s calories = %d, want %d", m.Slot, m.Calories, want)
		}
		if want := int(math.Round(float64(src.ProteinG) * ratio)); m.ProteinG != want {
			t.Errorf("%s protein = %d, want %d", m.Slot, m.ProteinG, want)
		}
	}
	// Breakfast: 400 * 1.3706 = 548.2 -> 548.
	if plan.Meals[0].Calories != 548 {
		t.Errorf("breakfast calories = %d, want 548", plan.Meals[0].Calories)
	}
}

func TestGenerateDietPlan_ProteinTargetIsMealSum(t *testing.T) {
	for _, target := range []int{1200, 1800, 2467, 3333} {
		for _, pref := range []DietPreference{Veg, NonVeg, Vegan} {
			plan := GenerateDietPlan(DietProfile{Preference: pref, CalorieTarget: target}, time.Friday)
			if _, protein := sumMeals(plan.Meals); protein != plan.ProteinTarget {
				t.Errorf("%s/%d: ProteinTarget %d != meal sum %d", pref, target, plan.ProteinTarget, protein)
			}
		}
	}
}

// Each meal is rounded on its own, so the meal sum can drift from the target.
func TestGenerateDietPlan_RoundingDriftIsBounded(t *testing.T) {
	for target := 1000; target <= 4000; target += 7 {
		plan := GenerateDietPlan(DietProfile{Preference: NonVeg, CalorieTarget: target}, time.Sunday)
		cal, _ := sumMeals(plan.Meals)
		if diff := cal - plan.TotalCalories; diff < -2 || diff > 2 {
			t.Fatalf("target %d: meal sum %d drifts by %d", target, cal, diff)
		}
	}
}

func TestGenerateDietPlan_RestrictedDay(t *testing.T) {
	p := DietProfile{Preference: NonVeg, RestrictedDays: []string{"Monday"}, CalorieTarget: 1800}
	plan := GenerateDietPlan(p, time.Monday)
	if !plan.IsRestrictedDay {
		t.Fatal("Monday should be restricted")
	}
	for i, m := range plan.Meals {
		if m.Food != vegTemplate[i].Food {
			t.Errorf("meal %d = %q, want veg %q", i, m.Food, vegTemplate[i].Food)
		}
	}
}

func TestGenerateDietPlan_RestrictedDayCaseInsensitive(t *testing.T) {
	p := DietProfile{Preference: NonVeg, RestrictedDays: []string{" tuesday", "SATURDAY"}, CalorieTarget: 2000}
	if !GenerateDietPlan(p, time.Tuesday).IsRestrictedDay || !GenerateDietPlan(p, time.Saturday).IsRestrictedDay {
		t.Error("weekday names should match case-insensitively")
	}
}

func TestGenerateDietPlan_VegAndVeganNeverRestricted(t *testing.T) {
	for _, pref := range []DietPreference{Veg, Vegan} {
		p := DietProfile{Preference: pref, RestrictedDays: []string{"Monday"}, CalorieTarget: 1800}
		plan := GenerateDietPlan(p, time.Monday)
		if plan.IsRestrictedDay {
			t.Errorf("%s: IsRestrictedDay = true", pref)
		}
		if plan.Meals[0].Food != vegTemplate[0].Food {
			t.Errorf("%s: got %q, want veg template", pref, plan.Meals[0].Food)
		}
	}
}

func TestValidWeekday(t *testing.T) {
	for _, ok := range []string{"Monday", "sunday", "FRIDAY"} {
		if !ValidWeekday(ok) {
			t.Errorf("ValidWeekday(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "Mon", "Funday"} {
		if ValidWeekday(bad) {
			t.Errorf("ValidWeekday(%q) = true", bad)
		}
	}
}
