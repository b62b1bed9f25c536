package plan

// WorkoutPreference selects the gym or bodyweight routine set.
type WorkoutPreference string

const (
	Gym  WorkoutPreference = "gym"
	Home WorkoutPreference = "home"
)

// Valid reports whether p is a known preference.
func (p WorkoutPreference) Valid() bool { return p == Gym || p == Home }

// Exercise is a single prescription. Exactly one of Reps or Duration is set.
type Exercise struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// DayPlan is the ordered list of exercises for one cycle day. Rest days are empty.
type DayPlan []Exercise

// Schedule is a cycle's day plans indexed 0..duration-1.
type Schedule []DayPlan

// DefaultDeloadDays is the deload window used when CycleOptions.DeloadDays is unset.
const DefaultDeloadDays = 7

// CycleOptions configures GenerateCycle.
type CycleOptions struct {
	Preference  WorkoutPreference
	Duration    int
	ApplyDeload bool
	// DeloadDays is the length of the tail window that gets reduced sets.
	DeloadDays int
}

type routineSet struct {
	push, pull, legs []Exercise
}

var gymRoutines = routineSet{
	push: []Exercise{
		{Name: "Bench Press", Sets: 3, Reps: "8-12"},
		{Name: "Overhead Press", Sets: 3, Reps: "10"},
		{Name: "Incline Dumbbell Press", Sets: 3, Reps: "12"},
		{Name: "Lateral Raises", Sets: 3, Reps: "15"},
		{Name: "Tricep Pushdowns", Sets: 3, Reps: "15"},
	},
	pull: []Exercise{
		{Name: "Pull Ups / Lat Pulldown", Sets: 3, Reps: "8-12"},
		{Name: "Barbell Rows", Sets: 3, Reps: "10"},
		{Name: "Face Pulls", Sets: 3, Reps: "15"},
		{Name: "Hammer Curls", Sets: 3, Reps: "12"},
		{Name: "Bicep Curls", Sets: 3, Reps: "12"},
	},
	legs: []Exercise{
		{Name: "Squats", Sets: 3, Reps: "6-8"},
		{Name: "Romanian Deadlifts", Sets: 3, Reps: "10"},
		{Name: "Lunges", Sets: 3, Reps: "12/leg"},
		{Name: "Calf Raises", Sets: 4, Reps: "15"},
		{Name: "Plank", Sets: 3, Duration: "60s"},
	},
}

var homeRoutines = routineSet{
	push: []Exercise{
		{Name: "Push Ups", Sets: 3, Reps: "10-15"},
		{Name: "Pike Push Ups", Sets: 3, Reps: "8-10"},
		{Name: "Decline Push Ups", Sets: 3, Reps: "10"},
		{Name: "Chair Dips", Sets: 3, Reps: "12"},
		{Name: "Diamond Push Ups", Sets: 3, Reps: "8-12"},
	},
	pull: []Exercise{
		{Name: "Inverted Table Rows", Sets: 3, Reps: "8-12"},
		{Name: "Towel Door Rows", Sets: 3, Reps: "12"},
		{Name: "Superman Holds", Sets: 3, Duration: "30s"},
		{Name: "Reverse Snow Angels", Sets: 3, Reps: "15"},
		{Name: "Backpack Curls", Sets: 3, Reps: "12"},
	},
	legs: []Exercise{
		{Name: "Bodyweight Squats", Sets: 3, Reps: "20"},
		{Name: "Glute Bridges", Sets: 3, Reps: "15"},
		{Name: "Lunges", Sets: 3, Reps: "12/leg"},
		{Name: "Single-Leg Calf Raises", Sets: 4, Reps: "15"},
		{Name: "Plank", Sets: 3, Duration: "60s"},
	},
}

type dayKind int

const (
	dayPush dayKind = iota
	dayPull
	dayLegs
	dayRest
)

// weekPattern is the PPL PPL Rest rotation indexed by day % 7.
var weekPattern = [7]dayKind{dayPush, dayPull, dayLegs, dayPush, dayPull, dayLegs, dayRest}

func (r routineSet) routine(k dayKind) []Exercise {
	switch k {
	case dayPush:
		return r.push
	case dayPull:
		return r.pull
	case dayLegs:
		return r.legs
	}
	return nil
}

// GenerateCycle builds a schedule of opts.Duration day plans following the
// weekly PPL pattern. A non-positive duration yields a single rest day so the
// schedule is never empty. Unknown preferences use the gym routines.
func GenerateCycle(opts CycleOptions) Schedule {
	routines := gymRoutines
	if opts.Preference == Home {
		routines = homeRoutines
	}

	duration := opts.Duration
	if duration < 1 {
		duration = 1
	}
	deloadDays := opts.DeloadDays
	if deloadDays <= 0 {
		deloadDays = DefaultDeloadDays
	}
	deloadFrom := duration
	if opts.ApplyDeload {
		deloadFrom = duration - deloadDays
	}

	schedule := make(Schedule, duration)
	for i := range schedule {
		src := routines.routine(weekPattern[i%len(weekPattern)])
		day := make(DayPlan, len(src))
		copy(day, src)
		if i >= deloadFrom {
			for j := range day {
				day[j].Sets = max(1, day[j].Sets-1)
			}
		}
		schedule[i] = day
	}
	return schedule
}

// Day returns the plan for index i, wrapping past the end. An empty schedule
// yields a rest day.
func (s Schedule) Day(i int) DayPlan {
	if len(s) == 0 {
		return DayPlan{}
	}
	i %= len(s)
	if i < 0 {
		i += len(s)
	}
	return s[i]
}
