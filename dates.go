package main

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// startOfDay truncates t to local midnight in t's location. Unlike
// Truncate(24h) this respects the location's offset.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// resolveDate returns s parsed as YYYY-MM-DD, or today when s is empty.
func resolveDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return startOfDay(now), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// parseRange validates a [start, end] pair of YYYY-MM-DD strings.
func parseRange(start, end string) error {
	if start == "" || end == "" {
		return fmt.Errorf("start and end query params are required")
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start, expected YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end, expected YYYY-MM-DD")
	}
	if s.After(e) {
		return fmt.Errorf("start must not be after end")
	}
	return nil
}
