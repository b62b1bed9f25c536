package plan

import "time"

const dayDuration = 24 * time.Hour

// ElapsedDays returns the whole 24-hour days between start and now. A start in
// the future counts as day 0 rather than mirroring into the past.
func ElapsedDays(start, now time.Time) int {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / dayDuration)
}

// DayIndex maps now onto a schedule of scheduleLen days starting at start,
// wrapping once the schedule is exhausted. A length below 1 is treated as 1.
func DayIndex(start, now time.Time, scheduleLen int) int {
	if scheduleLen < 1 {
		scheduleLen = 1
	}
	return ElapsedDays(start, now) % scheduleLen
}
