package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lg/baselayer-api/internal/plan"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// validateOnboard normalizes req in place (defaults, trimming) and returns a
// user-facing error message when it is invalid.
func validateOnboard(req *onboardRequest, cfg PlanConfig) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Gender = strings.ToLower(strings.TrimSpace(req.Gender))
	req.ActivityLevel = strings.ToLower(strings.TrimSpace(req.ActivityLevel))
	req.DietPreference = strings.ToLower(strings.TrimSpace(req.DietPreference))
	req.WorkoutPreference = strings.ToLower(strings.TrimSpace(req.WorkoutPreference))

	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if err := req.biometrics().Validate(); err != nil {
		return err
	}
	if !plan.Gender(req.Gender).Valid() {
		return errors.New("gender must be one of: male, female")
	}
	if !plan.ActivityLevel(req.ActivityLevel).Valid() {
		return errors.New("activity_level must be one of: sedentary, moderate, active")
	}
	if !plan.DietPreference(req.DietPreference).Valid() {
		return errors.New("diet_preference must be one of: veg, non-veg, vegan")
	}

	if req.WorkoutPreference == "" {
		req.WorkoutPreference = string(plan.Gym)
	}
	if !plan.WorkoutPreference(req.WorkoutPreference).Valid() {
		return errors.New("workout_preference must be one of: gym, home")
	}

	if req.RestrictedFoodDays == nil {
		req.RestrictedFoodDays = []string{}
	}
	for i, d := range req.RestrictedFoodDays {
		if !plan.ValidWeekday(d) {
			return fmt.Errorf("unknown weekday %q in restricted_food_days", d)
		}
		req.RestrictedFoodDays[i] = strings.TrimSpace(d)
	}

	if req.Duration == 0 {
		req.Duration = cfg.DefaultDuration
	}
	if !cfg.durationAllowed(req.Duration) {
		return fmt.Errorf("duration must be one of %v", cfg.AllowedDurations)
	}
	return nil
}

func (r onboardRequest) biometrics() plan.Biometrics {
	return plan.Biometrics{
		WeightKG:      r.WeightKG,
		HeightCM:      r.HeightCM,
		Age:           r.Age,
		Gender:        plan.Gender(r.Gender),
		ActivityLevel: plan.ActivityLevel(r.ActivityLevel),
	}
}

// cycleGoal names a cycle by its length.
func cycleGoal(duration int) string {
	switch {
	case duration >= 180:
		return "Transform"
	case duration >= 90:
		return "Build"
	default:
		return "Foundation"
	}
}

// insertCycle generates and stores a new active cycle starting at start.
// The caller is responsible for deactivating any previous cycle first.
func insertCycle(ctx context.Context, q querier, userID int, pref plan.WorkoutPreference, duration int, start time.Time, cfg PlanConfig) (cycle, error) {
	schedule := plan.GenerateCycle(plan.CycleOptions{
		Preference:  pref,
		Duration:    duration,
		ApplyDeload: cfg.ApplyDeload,
		DeloadDays:  cfg.DeloadDays,
	})
	// Sent as text and cast: the simple query protocol has no jsonb encoder
	// for arbitrary Go values.
	scheduleJSON, err := json.Marshal(schedule)
	if err != nil {
		return cycle{}, fmt.Errorf("marshal schedule: %w", err)
	}

	return queryOne[cycle](q, ctx,
		`INSERT INTO cycles (user_id, start_date, end_date, duration_days, goal, schedule, is_active)
		 VALUES (@userID, @start, @end, @duration, @goal, @schedule::jsonb, true)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"start":    start,
			"end":      start.AddDate(0, 0, duration),
			"duration": duration,
			"goal":     cycleGoal(duration),
			"schedule": string(scheduleJSON),
		})
}

// onboard creates the user, their profile and their first cycle in one
// transaction. POST /api/onboard (public). Returns 201 with the new token.
func (h *Handler) onboard(c *gin.Context) {
	var req onboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateOnboard(&req, h.plan); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("[onboard] bcrypt error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	calorieTarget := plan.CalorieTarget(req.biometrics())

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	defer tx.Rollback(c)

	u, err := queryOne[user](tx, c,
		`INSERT INTO users (name, email, password, auth_token)
		 VALUES (@name, @email, @password, @token)
		 RETURNING *`,
		pgx.NamedArgs{"name": req.Name, "email": req.Email, "password": hash, "token": uuid.New().String()})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			apiError(c, http.StatusConflict, "email already registered")
			return
		}
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	p, err := queryOne[profile](tx, c,
		`INSERT INTO profiles (user_id, weight_kg, height_cm, age, gender, activity_level,
		                       diet_preference, workout_preference, restricted_food_days, calorie_target)
		 VALUES (@userID, @weightKG, @heightCM, @age, @gender, @activityLevel,
		         @dietPreference, @workoutPreference, @restrictedDays, @calorieTarget)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":            u.ID,
			"weightKG":          req.WeightKG,
			"heightCM":          req.HeightCM,
			"age":               req.Age,
			"gender":            req.Gender,
			"activityLevel":     req.ActivityLevel,
			"dietPreference":    req.DietPreference,
			"workoutPreference": req.WorkoutPreference,
			"restrictedDays":    req.RestrictedFoodDays,
			"calorieTarget":     calorieTarget,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create profile")
		return
	}

	cy, err := insertCycle(c, tx, u.ID, plan.WorkoutPreference(req.WorkoutPreference), req.Duration, h.clock(), h.plan)
	if err != nil {
		log.Printf("[onboard] insertCycle error for user %d: %v", u.ID, err)
		apiError(c, http.StatusInternalServerError, "failed to create cycle")
		return
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, onboardResponse{Token: u.AuthToken, User: u, Profile: p, Cycle: cy})
}

// getMe restores a session: user, profile and the active cycle (null if none).
// GET /api/me.
func (h *Handler) getMe(c *gin.Context) {
	userID := c.GetInt("user_id")
	args := pgx.NamedArgs{"userID": userID}

	u, err := queryOne[user](h.db, c, "SELECT * FROM users WHERE id = @userID", args)
	if err != nil {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	p, err := queryOne[profile](h.db, c, "SELECT * FROM profiles WHERE user_id = @userID", args)
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	var active *cycle
	cy, err := queryOne[cycle](h.db, c,
		"SELECT * FROM cycles WHERE user_id = @userID AND is_active", args)
	switch {
	case err == nil:
		active = &cy
	case !errors.Is(err, pgx.ErrNoRows):
		apiError(c, http.StatusInternalServerError, "failed to fetch cycle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u, "profile": p, "cycle": active})
}

// startCycle ends the active cycle and starts a fresh one from today.
// POST /api/cycles. Body: { "duration": 90 } (optional, defaults to config).
func (h *Handler) startCycle(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Duration int `json:"duration"`
	}
	// An empty body is allowed.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if body.Duration == 0 {
		body.Duration = h.plan.DefaultDuration
	}
	if !h.plan.durationAllowed(body.Duration) {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("duration must be one of %v", h.plan.AllowedDurations))
		return
	}

	p, err := queryOne[profile](h.db, c,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start cycle")
		return
	}
	defer tx.Rollback(c)

	if _, err := tx.Exec(c,
		"UPDATE cycles SET is_active = false WHERE user_id = @userID AND is_active",
		pgx.NamedArgs{"userID": userID}); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start cycle")
		return
	}

	cy, err := insertCycle(c, tx, userID, plan.WorkoutPreference(p.WorkoutPreference), body.Duration, h.clock(), h.plan)
	if err != nil {
		log.Printf("[startCycle] insertCycle error for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to start cycle")
		return
	}
	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start cycle")
		return
	}

	c.JSON(http.StatusCreated, cy)
}
