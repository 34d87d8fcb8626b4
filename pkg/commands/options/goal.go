package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/timeutil"
)

// GoalOptions captures the fields of a new monthly goal.
type GoalOptions struct {
	Type   string
	Target float64
	Unit   string
	Month  string
}

// AddGoalArgs wires goal creation flags.
func AddGoalArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(goal.TypeHabit),
		"Goal type. One of 'task', 'time', 'balance', 'habit'.")
	cmd.Flags().Float64Var(&o.Target, "target", 0, "Target value for the month.")
	cmd.Flags().StringVarP(&o.Unit, "unit", "u", "", "Unit of the target, example: pages.")
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month in YYYY-MM form. Defaults to the current month.`)
}

// YearMonth resolves the goal period.
func (o *GoalOptions) YearMonth(now time.Time) string {
	if o.Month != "" {
		return o.Month
	}
	return timeutil.PeriodOf(now)
}

// RecordOptions captures flags for recording a daily value.
type RecordOptions struct {
	Date  string
	Notes string
}

// AddRecordArgs wires daily record flags.
func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Date in YYYY-MM-DD form. Defaults to today.`)
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "", "Free-form notes.")
}

// DateKey resolves and validates the record date.
func (o *RecordOptions) DateKey(now time.Time) (string, error) {
	if o.Date != "" {
		if _, err := timeutil.ParseDate(o.Date); err != nil {
			return "", err
		}
		return o.Date, nil
	}
	return timeutil.DateKey(now), nil
}
