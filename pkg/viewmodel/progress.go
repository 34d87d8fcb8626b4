package viewmodel

import (
	"time"

	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/timeutil"
)

// GoalProgress is the computed standing of one goal within one period.
// It is a pure projection of the daily-record collection, recomputed on
// demand and never persisted.
type GoalProgress struct {
	GoalID             string    `json:"goalId"`
	GoalName           string    `json:"goalName"`
	GoalType           goal.Type `json:"goalType"`
	TargetValue        float64   `json:"targetValue"`
	CurrentValue       float64   `json:"currentValue"`
	Unit               string    `json:"unit"`
	ProgressPercentage float64   `json:"progressPercentage"`
	RemainingDays      int       `json:"remainingDays"`
	IsOverdue          bool      `json:"isOverdue"`
}

// Progress sums the goal's records inside yearMonth and derives the
// percentage and remaining-day standing relative to now.
func Progress(g *goal.Goal, records []*goal.DailyRecord, yearMonth string, now time.Time) GoalProgress {
	var current float64
	for _, r := range records {
		if r.GoalID != g.ID {
			continue
		}
		if !timeutil.PeriodContains(yearMonth, r.Date) {
			continue
		}
		current += r.Value
	}

	var pct float64
	if g.TargetValue > 0 {
		pct = current / g.TargetValue * 100
	}
	remaining := timeutil.RemainingDaysIn(yearMonth, now)

	return GoalProgress{
		GoalID:             g.ID,
		GoalName:           g.Name,
		GoalType:           g.Type,
		TargetValue:        g.TargetValue,
		CurrentValue:       current,
		Unit:               g.Unit,
		ProgressPercentage: pct,
		RemainingDays:      remaining,
		IsOverdue:          pct < 100 && remaining == 0,
	}
}
