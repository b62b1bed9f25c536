package main

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"lg/baselayer-api/internal/plan"
)

func testPlanConfig() PlanConfig {
	return defaultConfig().Plan
}

func validOnboardRequest() onboardRequest {
	return onboardRequest{
		Name:               "Asha",
		Email:              " Asha@Example.com ",
		Password:           "correct-horse",
		HeightCM:           175,
		WeightKG:           70,
		Age:                25,
		Gender:             "Male",
		ActivityLevel:      "moderate",
		DietPreference:     "non-veg",
		RestrictedFoodDays: []string{" tuesday", "Saturday"},
	}
}

func TestValidateOnboard_DefaultsAndNormalization(t *testing.T) {
	req := validOnboardRequest()
	if err := validateOnboard(&req, testPlanConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", req.Email)
	}
	if req.Gender != "male" {
		t.Errorf("expected lowercased gender, got %q", req.Gender)
	}
	if req.WorkoutPreference != string(plan.Gym) {
		t.Errorf("expected default workout preference gym, got %q", req.WorkoutPreference)
	}
	if req.Duration != 30 {
		t.Errorf("expected default duration 30, got %d", req.Duration)
	}
	if req.RestrictedFoodDays[0] != "tuesday" {
		t.Errorf("expected trimmed weekday, got %q", req.RestrictedFoodDays[0])
	}
}

func TestValidateOnboard_NilRestrictedDays(t *testing.T) {
	req := validOnboardRequest()
	req.RestrictedFoodDays = nil
	if err := validateOnboard(&req, testPlanConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.RestrictedFoodDays == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestValidateOnboard_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(r *onboardRequest)
	}{
		{"missing name", func(r *onboardRequest) { r.Name = " " }},
		{"bad email", func(r *onboardRequest) { r.Email = "nope" }},
		{"short password", func(r *onboardRequest) { r.Password = "short" }},
		{"zero weight", func(r *onboardRequest) { r.WeightKG = 0 }},
		{"NaN height", func(r *onboardRequest) { r.HeightCM = math.NaN() }},
		{"negative age", func(r *onboardRequest) { r.Age = -3 }},
		{"non-positive calorie target", func(r *onboardRequest) {
			r.WeightKG, r.HeightCM, r.Age = 20, 50, 100
			r.Gender, r.ActivityLevel = "female", "sedentary"
		}},
		{"unknown gender", func(r *onboardRequest) { r.Gender = "other" }},
		{"unknown activity", func(r *onboardRequest) { r.ActivityLevel = "extreme" }},
		{"unknown diet", func(r *onboardRequest) { r.DietPreference = "keto" }},
		{"unknown workout", func(r *onboardRequest) { r.WorkoutPreference = "park" }},
		{"unknown weekday", func(r *onboardRequest) { r.RestrictedFoodDays = []string{"Funday"} }},
		{"disallowed duration", func(r *onboardRequest) { r.Duration = 45 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validOnboardRequest()
			tc.mutFn(&req)
			if err := validateOnboard(&req, testPlanConfig()); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestValidateOnboard_BiometricsSentinel(t *testing.T) {
	req := validOnboardRequest()
	req.WeightKG = math.Inf(1)
	err := validateOnboard(&req, testPlanConfig())
	if !errors.Is(err, plan.ErrInvalidBiometrics) {
		t.Errorf("expected ErrInvalidBiometrics, got %v", err)
	}
}

func TestValidateOnboard_AllowedDurations(t *testing.T) {
	for _, d := range []int{30, 90, 180} {
		req := validOnboardRequest()
		req.Duration = d
		if err := validateOnboard(&req, testPlanConfig()); err != nil {
			t.Errorf("duration %d: unexpected error: %v", d, err)
		}
	}
}

func TestCycleGoal(t *testing.T) {
	cases := []struct {
		duration int
		want     string
	}{
		{30, "Foundation"},
		{89, "Foundation"},
		{90, "Build"},
		{180, "Transform"},
		{365, "Transform"},
	}
	for _, tc := range cases {
		if got := cycleGoal(tc.duration); got != tc.want {
			t.Errorf("cycleGoal(%d) = %s, want %s", tc.duration, got, tc.want)
		}
	}
}

// TestProfileHandlers_Validation covers requests rejected before any database access.
func TestProfileHandlers_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{plan: testPlanConfig()}
	router := gin.New()
	router.POST("/api/onboard", h.onboard)
	router.POST("/api/cycles", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.startCycle)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"onboard malformed", "/api/onboard", `{"name":`},
		{"onboard missing fields", "/api/onboard", `{"name":"Asha"}`},
		{"onboard bad gender", "/api/onboard",
			`{"name":"A","email":"a@b.c","password":"12345678","height_cm":170,"weight_kg":60,"age":30,"gender":"x","activity_level":"active","diet_preference":"veg"}`},
		{"cycle disallowed duration", "/api/cycles", `{"duration":7}`},
		{"cycle malformed", "/api/cycles", `{"duration":"long"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "POST", tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
