package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// logKind names the daily-log field a POST /api/log updates.
type logKind string

const (
	logWorkout logKind = "workout"
	logDiet    logKind = "diet"
	logSteps   logKind = "steps"
	logCost    logKind = "cost"
	logWeight  logKind = "weight"
)

const (
	maxSteps    = 200000
	maxWeightKG = 500
)

var errInvalidLogUpdate = errors.New("invalid log update")

// logUpdate is a validated change to exactly one daily_logs column. Only one
// of the value fields is meaningful, selected by kind.
type logUpdate struct {
	kind   logKind
	flag   bool
	count  int
	amount float64
}

// column returns the daily_logs column for u. Kinds map to a fixed set of
// column names, never user input.
func (u logUpdate) column() string {
	switch u.kind {
	case logWorkout:
		return "workout_done"
	case logDiet:
		return "diet_followed"
	case logSteps:
		return "steps"
	case logCost:
		return "diet_cost"
	default:
		return "weight_kg"
	}
}

func (u logUpdate) value() any {
	switch u.kind {
	case logWorkout, logDiet:
		return u.flag
	case logSteps:
		return u.count
	default:
		return u.amount
	}
}

// parseNumber accepts a JSON number or a numeric string.
func parseNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// parseLogUpdate validates raw against the value type kind expects.
func parseLogUpdate(kind string, raw json.RawMessage) (logUpdate, error) {
	u := logUpdate{kind: logKind(kind)}
	if len(bytes.TrimSpace(raw)) == 0 {
		return u, fmt.Errorf("%w: value is required", errInvalidLogUpdate)
	}

	switch u.kind {
	case logWorkout, logDiet:
		if err := json.Unmarshal(raw, &u.flag); err != nil {
			return u, fmt.Errorf("%w: %s expects a boolean", errInvalidLogUpdate, kind)
		}
	case logSteps:
		n, err := parseNumber(raw)
		if err != nil || n != math.Trunc(n) || n < 0 || n > maxSteps {
			return u, fmt.Errorf("%w: steps must be a whole number between 0 and %d", errInvalidLogUpdate, maxSteps)
		}
		u.count = int(n)
	case logCost:
		n, err := parseNumber(raw)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return u, fmt.Errorf("%w: cost must be a non-negative number", errInvalidLogUpdate)
		}
		u.amount = n
	case logWeight:
		n, err := parseNumber(raw)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 || n > maxWeightKG {
			return u, fmt.Errorf("%w: weight must be between 0 and %d kg", errInvalidLogUpdate, maxWeightKG)
		}
		u.amount = n
	default:
		return u, fmt.Errorf("%w: unknown type %q", errInvalidLogUpdate, kind)
	}
	return u, nil
}

// postLog applies one field update to today's daily log, creating the row if
// needed. Weight updates also refresh the profile weight.
// POST /api/log. Body: { "type": "steps", "value": 8000 }.
func (h *Handler) postLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	update, err := parseLogUpdate(body.Type, body.Value)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update log")
		return
	}
	defer tx.Rollback(c)

	col := update.column()
	entry, err := queryOne[dailyLog](tx, c,
		`INSERT INTO daily_logs (user_id, date, `+col+`)
		 VALUES (@userID, @date, @value)
		 ON CONFLICT (user_id, date) DO UPDATE SET `+col+` = EXCLUDED.`+col+`, updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": startOfDay(h.clock()).Format(dateLayout), "value": update.value()})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update log")
		return
	}

	if update.kind == logWeight {
		if _, err := tx.Exec(c,
			"UPDATE profiles SET weight_kg = @weightKG WHERE user_id = @userID",
			pgx.NamedArgs{"weightKG": update.amount, "userID": userID}); err != nil {
			log.Printf("[postLog] profile weight update failed for user %d: %v", userID, err)
			apiError(c, http.StatusInternalServerError, "failed to update log")
			return
		}
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update log")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// getLogs returns daily logs for the authenticated user within [start, end].
// GET /api/logs?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
func (h *Handler) getLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if err := parseRange(start, end); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := queryMany[dailyLog](h.db, c,
		`SELECT * FROM daily_logs
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	c.JSON(http.StatusOK, entries)
}
