package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/baselayer-api/internal/plan"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+dateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	AuthToken string     `json:"-" db:"auth_token"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// profile maps to profiles. Everything except weight is fixed at onboarding,
// including the calorie target.
type profile struct {
	UserID             int        `json:"user_id"              db:"user_id"`
	WeightKG           float64    `json:"weight_kg"            db:"weight_kg"`
	HeightCM           float64    `json:"height_cm"            db:"height_cm"`
	Age                int        `json:"age"                  db:"age"`
	Gender             string     `json:"gender"               db:"gender"`
	ActivityLevel      string     `json:"activity_level"       db:"activity_level"`
	DietPreference     string     `json:"diet_preference"      db:"diet_preference"`
	WorkoutPreference  string     `json:"workout_preference"   db:"workout_preference"`
	RestrictedFoodDays []string   `json:"restricted_food_days" db:"restricted_food_days"`
	CalorieTarget      int        `json:"calorie_target"       db:"calorie_target"`
	CreatedAt          *time.Time `json:"created_at"           db:"created_at"`
}

func (p profile) dietProfile() plan.DietProfile {
	return plan.DietProfile{
		Preference:     plan.DietPreference(p.DietPreference),
		RestrictedDays: p.RestrictedFoodDays,
		CalorieTarget:  p.CalorieTarget,
	}
}

// cycle maps to cycles. Schedule is stored as JSONB and never modified.
type cycle struct {
	ID           int           `json:"id"            db:"id"`
	UserID       int           `json:"user_id"       db:"user_id"`
	StartDate    time.Time     `json:"start_date"    db:"start_date"`
	EndDate      time.Time     `json:"end_date"      db:"end_date"`
	DurationDays int           `json:"duration_days" db:"duration_days"`
	Goal         string        `json:"goal"          db:"goal"`
	Schedule     plan.Schedule `json:"schedule"      db:"schedule"`
	IsActive     bool          `json:"is_active"     db:"is_active"`
}

// dailyLog maps to daily_logs; one row per user per date.
type dailyLog struct {
	ID           int        `json:"id"            db:"id"`
	UserID       int        `json:"user_id"       db:"user_id"`
	Date         DateOnly   `json:"date"          db:"date"`
	WorkoutDone  bool       `json:"workout_done"  db:"workout_done"`
	DietFollowed bool       `json:"diet_followed" db:"diet_followed"`
	Steps        int        `json:"steps"         db:"steps"`
	DietCost     float64    `json:"diet_cost"     db:"diet_cost"`
	WeightKG     *float64   `json:"weight_kg"     db:"weight_kg"`
	UpdatedAt    *time.Time `json:"updated_at"    db:"updated_at"`
}

// mealLog maps to meal_logs. Estimated is true when calories came from the
// keyword estimator rather than the user.
type mealLog struct {
	ID          int        `json:"id"          db:"id"`
	UserID      int        `json:"user_id"     db:"user_id"`
	Date        DateOnly   `json:"date"        db:"date"`
	Description string     `json:"description" db:"description"`
	Calories    int        `json:"calories"    db:"calories"`
	ProteinG    int        `json:"protein_g"   db:"protein_g"`
	Estimated   bool       `json:"estimated"   db:"estimated"`
	CreatedAt   *time.Time `json:"created_at"  db:"created_at"`
}

/* ─── Requests / responses ───────────────────────────────────────────── */

// onboardRequest is the request body for POST /api/onboard.
type onboardRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	HeightCM           float64  `json:"height_cm"`
	WeightKG           float64  `json:"weight_kg"`
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	ActivityLevel      string   `json:"activity_level"`
	DietPreference     string   `json:"diet_preference"`
	WorkoutPreference  string   `json:"workout_preference"`
	RestrictedFoodDays []string `json:"restricted_food_days"`
	Duration           int      `json:"duration"`
}

// onboardResponse is returned by POST /api/onboard with status 201.
type onboardResponse struct {
	Token   string  `json:"token"`
	User    user    `json:"user"`
	Profile profile `json:"profile"`
	Cycle   cycle   `json:"cycle"`
}

// todayStats aggregates the day's intake and the cycle's spend.
type todayStats struct {
	CalorieTarget    int     `json:"calorie_target"`
	CaloriesConsumed int     `json:"calories_consumed"`
	CaloriesLeft     int     `json:"calories_left"`
	ProteinTarget    int     `json:"protein_target"`
	ProteinConsumed  int     `json:"protein_consumed"`
	TotalSpent       float64 `json:"total_spent"`
	WorkoutsDone     int     `json:"workouts_done"`
}

// todayResponse is the response shape for GET /api/today.
type todayResponse struct {
	Date            string        `json:"date"`
	CycleID         int           `json:"cycle_id"`
	DayIndex        int           `json:"day_index"`
	DayNumber       int           `json:"day_number"`
	DaysLeft        int           `json:"days_left"`
	PercentComplete int           `json:"percent_complete"`
	Workout         plan.DayPlan  `json:"workout"`
	DietPlan        plan.DietPlan `json:"diet_plan"`
	Log             *dailyLog     `json:"log"`
	Meals           []mealLog     `json:"meals"`
	History         []dailyLog    `json:"history"`
	Stats           todayStats    `json:"stats"`
}

// createMealRequest is the request body for POST /api/meals. Calories that are
// missing or zero are estimated from the description.
type createMealRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Calories    *int   `json:"calories"`
	ProteinG    *int   `json:"protein_g"`
}
