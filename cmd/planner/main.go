// CLI for inspecting plan generation offline: calorie targets, cycles, diet
// plans and meal estimates, without a database.
// Usage: go run ./cmd/planner <command> [flags]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lg/baselayer-api/internal/plan"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asJSON bool

	root := &cobra.Command{
		Use:          "planner",
		Short:        "Inspect BaseLayer plan generation",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(
		newCaloriesCmd(&asJSON),
		newCycleCmd(&asJSON),
		newDietCmd(&asJSON),
		newEstimateCmd(&asJSON),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

/* ─── calories ───────────────────────────────────────────────────────── */

func newCaloriesCmd(asJSON *bool) *cobra.Command {
	var (
		b        plan.Biometrics
		gender   string
		activity string
	)

	cmd := &cobra.Command{
		Use:   "calories",
		Short: "Compute the daily calorie target",
		RunE: func(cmd *cobra.Command, args []string) error {
			b.Gender = plan.Gender(strings.ToLower(gender))
			b.ActivityLevel = plan.ActivityLevel(strings.ToLower(activity))
			if err := b.Validate(); err != nil {
				return err
			}
			if !b.Gender.Valid() {
				return fmt.Errorf("gender must be male or female, got %q", gender)
			}

			target := plan.CalorieTarget(b)
			out := cmd.OutOrStdout()
			if *asJSON {
				return writeJSON(out, map[string]any{
					"bmr":             plan.BMR(b),
					"activity_factor": plan.ActivityFactor(b.ActivityLevel),
					"calorie_target":  target,
				})
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			green := color.New(color.FgGreen, color.Bold).SprintFunc()
			fmt.Fprintf(out, "%s: %.2f\n", cyan("BMR"), plan.BMR(b))
			fmt.Fprintf(out, "%s: %.3g\n", cyan("Activity factor"), plan.ActivityFactor(b.ActivityLevel))
			fmt.Fprintf(out, "%s: %s kcal\n", cyan("Target"), green(target))
			return nil
		},
	}
	cmd.Flags().Float64Var(&b.WeightKG, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&b.HeightCM, "height", 0, "height in cm")
	cmd.Flags().IntVar(&b.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "male", "male or female")
	cmd.Flags().StringVar(&activity, "activity", "sedentary", "sedentary, moderate or active")
	return cmd
}

/* ─── cycle ──────────────────────────────────────────────────────────── */

func newCycleCmd(asJSON *bool) *cobra.Command {
	var (
		opts       plan.CycleOptions
		preference string
		day        int
	)

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Generate a training cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Preference = plan.WorkoutPreference(strings.ToLower(preference))
			if !opts.Preference.Valid() {
				return fmt.Errorf("preference must be gym or home, got %q", preference)
			}
			schedule := plan.GenerateCycle(opts)

			out := cmd.OutOrStdout()
			if day > 0 {
				if day > len(schedule) {
					return fmt.Errorf("day %d is past the end of a %d-day cycle", day, len(schedule))
				}
				schedule = schedule[day-1 : day]
			}
			if *asJSON {
				return writeJSON(out, schedule)
			}

			first := 1
			if day > 0 {
				first = day
			}
			yellow := color.New(color.FgYellow).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()
			for i, d := range schedule {
				fmt.Fprintf(out, "%s %d\n", yellow("Day"), first+i)
				if len(d) == 0 {
					fmt.Fprintf(out, "  %s\n", faint("Rest"))
					continue
				}
				for _, ex := range d {
					fmt.Fprintf(out, "  %s: %d x %s\n", ex.Name, ex.Sets, prescription(ex))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preference, "preference", "gym", "gym or home")
	cmd.Flags().IntVar(&opts.Duration, "duration", 30, "cycle length in days")
	cmd.Flags().BoolVar(&opts.ApplyDeload, "deload", false, "reduce sets over the final deload window")
	cmd.Flags().IntVar(&opts.DeloadDays, "deload-days", plan.DefaultDeloadDays, "length of the deload window")
	cmd.Flags().IntVar(&day, "day", 0, "show only this 1-based day")
	return cmd
}

func prescription(ex plan.Exercise) string {
	if ex.Duration != "" {
		return ex.Duration
	}
	return ex.Reps
}

/* ─── diet ───────────────────────────────────────────────────────────── */

func newDietCmd(asJSON *bool) *cobra.Command {
	var (
		preference string
		restricted []string
		calories   int
		weekday    string
	)

	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Generate the diet plan for a weekday",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan.DietProfile{
				Preference:     plan.DietPreference(strings.ToLower(preference)),
				RestrictedDays: restricted,
				CalorieTarget:  calories,
			}
			if !p.Preference.Valid() {
				return fmt.Errorf("preference must be veg, non-veg or vegan, got %q", preference)
			}
			if calories <= 0 {
				return fmt.Errorf("calories must be positive, got %d", calories)
			}
			wd, err := parseWeekday(weekday)
			if err != nil {
				return err
			}

			dp := plan.GenerateDietPlan(p, wd)
			out := cmd.OutOrStdout()
			if *asJSON {
				return writeJSON(out, dp)
			}

			cyan := color.New(color.FgCyan).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()
			header := fmt.Sprintf("%s: %d kcal, %d g protein", wd, dp.TotalCalories, dp.ProteinTarget)
			if dp.IsRestrictedDay {
				header += " " + red("(restricted day)")
			}
			fmt.Fprintln(out, header)
			for _, m := range dp.Meals {
				fmt.Fprintf(out, "  %s: %s (%s) %d kcal, %d g\n", cyan(m.Slot), m.Food, m.Quantity, m.Calories, m.ProteinG)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preference, "preference", "non-veg", "veg, non-veg or vegan")
	cmd.Flags().StringSliceVar(&restricted, "restricted", nil, "weekdays without meat, e.g. Tuesday,Saturday")
	cmd.Flags().IntVar(&calories, "calories", 2000, "daily calorie target")
	cmd.Flags().StringVar(&weekday, "weekday", "", "weekday name (default today)")
	return cmd
}

// parseWeekday maps an English weekday name to time.Weekday, defaulting to today.
func parseWeekday(name string) (time.Weekday, error) {
	if name == "" {
		return time.Now().Weekday(), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

/* ─── estimate ───────────────────────────────────────────────────────── */

func newEstimateCmd(asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <description>",
		Short: "Estimate calories and protein for a meal description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			est := plan.EstimateNutrition(desc)

			out := cmd.OutOrStdout()
			if *asJSON {
				return writeJSON(out, est)
			}

			match := est.Matched
			if match == "" {
				match = color.New(color.Faint).Sprint("no match, fallback")
			}
			fmt.Fprintf(out, "%q: %d kcal, %d g protein [%s]\n", desc, est.Calories, est.ProteinG, match)
			return nil
		},
	}
}
