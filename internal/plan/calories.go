// Package plan holds the deterministic plan engine: calorie targets, workout
// cycles, day-index resolution, diet plans and free-text nutrition estimates.
// Every function is pure; the lookup tables are package-level and never mutated.
package plan

import (
	"errors"
	"fmt"
	"math"
)

// Gender selects the Mifflin-St Jeor sex constant.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool { return g == Male || g == Female }

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Moderate  ActivityLevel = "moderate"
	Active    ActivityLevel = "active"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// Unknown levels fall back to defaultActivityMultiplier.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary: 1.2,
	Moderate:  1.55,
	Active:    1.725,
}

const defaultActivityMultiplier = 1.2

// Valid reports whether l has an entry in the multiplier table.
func (l ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[l]
	return ok
}

// ErrInvalidBiometrics is returned by Biometrics.Validate.
var ErrInvalidBiometrics = errors.New("invalid biometrics")

// Biometrics is the subset of a user profile the calorie formula needs.
type Biometrics struct {
	WeightKG      float64
	HeightCM      float64
	Age           int
	Gender        Gender
	ActivityLevel ActivityLevel
}

// Validate rejects non-finite or non-positive measurements, and combinations
// that give a non-positive calorie target. CalorieTarget assumes it has been
// called.
func (b Biometrics) Validate() error {
	if !positiveFinite(b.WeightKG) {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidBiometrics)
	}
	if !positiveFinite(b.HeightCM) {
		return fmt.Errorf("%w: height must be a positive number", ErrInvalidBiometrics)
	}
	if b.Age <= 0 {
		return fmt.Errorf("%w: age must be greater than 0", ErrInvalidBiometrics)
	}
	if CalorieTarget(b) <= 0 {
		return fmt.Errorf("%w: measurements give a non-positive calorie target", ErrInvalidBiometrics)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ActivityFactor returns the TDEE multiplier for level, defaulting to 1.2.
func ActivityFactor(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// BMR computes basal metabolic rate via Mifflin-St Jeor. Anything other than
// Male uses the female constant.
func BMR(b Biometrics) float64 {
	bmr := 10*b.WeightKG + 6.25*b.HeightCM - 5*float64(b.Age)
	if b.Gender == Male {
		return bmr + 5
	}
	return bmr - 161
}

// CalorieTarget returns the rounded daily maintenance target (BMR x activity factor).
func CalorieTarget(b Biometrics) int {
	return int(math.Round(BMR(b) * ActivityFactor(b.ActivityLevel)))
}
