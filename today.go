package main

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"lg/baselayer-api/internal/plan"
)

// historyDays is the window returned in todayResponse.History, today included.
const historyDays = 7

// cycleProgress turns whole days elapsed into the 1-based day number, the
// days remaining after today and a rounded completion percentage. Past the
// end of the cycle it pins to the last day.
func cycleProgress(elapsed, duration int) (dayNumber, daysLeft, percent int) {
	if duration < 1 {
		duration = 1
	}
	dayNumber = min(max(elapsed, 0)+1, duration)
	daysLeft = duration - dayNumber
	percent = int(math.Round(float64(dayNumber) * 100 / float64(duration)))
	return dayNumber, daysLeft, percent
}

// getToday returns everything the dashboard needs for the current day.
// GET /api/today. 404 when the user has no active cycle.
func (h *Handler) getToday(c *gin.Context) {
	userID := c.GetInt("user_id")
	args := pgx.NamedArgs{"userID": userID}

	p, err := queryOne[profile](h.db, c, "SELECT * FROM profiles WHERE user_id = @userID", args)
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	cy, err := queryOne[cycle](h.db, c, "SELECT * FROM cycles WHERE user_id = @userID AND is_active", args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "no active cycle")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch cycle")
		}
		return
	}

	now := h.clock()
	today := startOfDay(now)
	dayIndex := plan.DayIndex(cy.StartDate, now, len(cy.Schedule))
	dayNumber, daysLeft, percent := cycleProgress(plan.ElapsedDays(cy.StartDate, now), cy.DurationDays)

	dateArgs := pgx.NamedArgs{
		"userID":     userID,
		"today":      today.Format(dateLayout),
		"since":      today.AddDate(0, 0, -(historyDays - 1)).Format(dateLayout),
		"cycleStart": startOfDay(cy.StartDate.In(now.Location())).Format(dateLayout),
	}

	var (
		todayLog *dailyLog
		meals    []mealLog
		history  []dailyLog
		stats    todayStats
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		l, err := queryOne[dailyLog](h.db, ctx,
			"SELECT * FROM daily_logs WHERE user_id = @userID AND date = @today", dateArgs)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		todayLog = &l
		return nil
	})
	g.Go(func() error {
		var err error
		meals, err = queryMany[mealLog](h.db, ctx,
			`SELECT * FROM meal_logs WHERE user_id = @userID AND date = @today
			 ORDER BY created_at`, dateArgs)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = queryMany[dailyLog](h.db, ctx,
			`SELECT * FROM daily_logs
			 WHERE user_id = @userID AND date >= @since AND date <= @today
			 ORDER BY date ASC`, dateArgs)
		return err
	})
	g.Go(func() error {
		return h.db.QueryRow(ctx,
			`SELECT COALESCE(SUM(diet_cost), 0), COUNT(*) FILTER (WHERE workout_done)
			 FROM daily_logs
			 WHERE user_id = @userID AND date >= @cycleStart AND date <= @today`, dateArgs).
			Scan(&stats.TotalSpent, &stats.WorkoutsDone)
	})
	if err := g.Wait(); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch today")
		return
	}

	diet := plan.GenerateDietPlan(p.dietProfile(), today.Weekday())
	stats.CalorieTarget = p.CalorieTarget
	stats.ProteinTarget = diet.ProteinTarget
	for _, m := range meals {
		stats.CaloriesConsumed += m.Calories
		stats.ProteinConsumed += m.ProteinG
	}
	stats.CaloriesLeft = stats.CalorieTarget - stats.CaloriesConsumed

	c.JSON(http.StatusOK, todayResponse{
		Date:            today.Format(dateLayout),
		CycleID:         cy.ID,
		DayIndex:        dayIndex,
		DayNumber:       dayNumber,
		DaysLeft:        daysLeft,
		PercentComplete: percent,
		Workout:         cy.Schedule.Day(dayIndex),
		DietPlan:        diet,
		Log:             todayLog,
		Meals:           meals,
		History:         history,
		Stats:           stats,
	})
}

// getDietPlan returns the diet plan for a date.
// GET /api/diet-plan?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDietPlan(c *gin.Context) {
	userID := c.GetInt("user_id")

	date, err := resolveDate(c.Query("date"), h.clock())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := queryOne[profile](h.db, c,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      date.Format(dateLayout),
		"diet_plan": plan.GenerateDietPlan(p.dietProfile(), date.Weekday()),
	})
}
