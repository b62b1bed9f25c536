package main

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCycleProgress(t *testing.T) {
	cases := []struct {
		name              string
		elapsed, duration int
		wantDay, wantLeft int
		wantPercent       int
	}{
		{"first day", 0, 30, 1, 29, 3},
		{"mid cycle", 14, 30, 15, 15, 50},
		{"last day", 29, 30, 30, 0, 100},
		{"past the end pins to last day", 45, 30, 30, 0, 100},
		{"negative elapsed", -2, 30, 1, 29, 3},
		{"ninety day cycle", 44, 90, 45, 45, 50},
		{"zero duration treated as one", 0, 0, 1, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, left, pct := cycleProgress(tc.elapsed, tc.duration)
			if day != tc.wantDay || left != tc.wantLeft || pct != tc.wantPercent {
				t.Errorf("cycleProgress(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tc.elapsed, tc.duration, day, left, pct, tc.wantDay, tc.wantLeft, tc.wantPercent)
			}
		})
	}
}

func TestGetDietPlan_InvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.GET("/api/diet-plan", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.getDietPlan)

	w := doJSON(router, "GET", "/api/diet-plan?date=tomorrow", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
