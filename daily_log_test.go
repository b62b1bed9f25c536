package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseLogUpdate_Valid(t *testing.T) {
	cases := []struct {
		name   string
		kind   string
		raw    string
		column string
		value  any
	}{
		{"workout true", "workout", `true`, "workout_done", true},
		{"diet false", "diet", `false`, "diet_followed", false},
		{"steps number", "steps", `8000`, "steps", 8000},
		{"steps string", "steps", `"8000"`, "steps", 8000},
		{"steps zero", "steps", `0`, "steps", 0},
		{"steps max", "steps", `200000`, "steps", 200000},
		{"cost decimal", "cost", `12.5`, "diet_cost", 12.5},
		{"cost string", "cost", `" 3.25 "`, "diet_cost", 3.25},
		{"weight", "weight", `72.4`, "weight_kg", 72.4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := parseLogUpdate(tc.kind, json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.column() != tc.column {
				t.Errorf("column: got %s, want %s", u.column(), tc.column)
			}
			if u.value() != tc.value {
				t.Errorf("value: got %v (%T), want %v (%T)", u.value(), u.value(), tc.value, tc.value)
			}
		})
	}
}

func TestParseLogUpdate_Invalid(t *testing.T) {
	cases := []struct {
		name string
		kind string
		raw  string
	}{
		{"unknown kind", "mood", `1`},
		{"empty kind", "", `1`},
		{"missing value", "steps", ``},
		{"workout as number", "workout", `1`},
		{"workout as string", "workout", `"true"`},
		{"steps fractional", "steps", `10.5`},
		{"steps negative", "steps", `-1`},
		{"steps too many", "steps", `200001`},
		{"steps as bool", "steps", `true`},
		{"steps non-numeric string", "steps", `"lots"`},
		{"cost negative", "cost", `-2`},
		{"cost NaN string", "cost", `"NaN"`},
		{"cost Inf string", "cost", `"Inf"`},
		{"weight zero", "weight", `0`},
		{"weight too heavy", "weight", `501`},
		{"weight as object", "weight", `{"kg":70}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseLogUpdate(tc.kind, json.RawMessage(tc.raw))
			if !errors.Is(err, errInvalidLogUpdate) {
				t.Errorf("expected errInvalidLogUpdate, got %v", err)
			}
		})
	}
}

// TestLogHandlers_Validation covers requests rejected before any database access.
func TestLogHandlers_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	withUser := func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}
	router.POST("/api/log", withUser, h.postLog)
	router.GET("/api/logs", withUser, h.getLogs)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"log malformed", "POST", "/api/log", `{"type":`},
		{"log unknown type", "POST", "/api/log", `{"type":"mood","value":3}`},
		{"log wrong value type", "POST", "/api/log", `{"type":"workout","value":"yes"}`},
		{"logs missing range", "GET", "/api/logs", ``},
		{"logs bad start", "GET", "/api/logs?start=01-01-2026&end=2026-01-31", ``},
		{"logs reversed", "GET", "/api/logs?start=2026-02-01&end=2026-01-01", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
