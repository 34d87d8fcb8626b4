package viewmodel

import (
	"sort"
	"time"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// DayGroup is one calendar day of completed tasks, most recently
// completed first.
type DayGroup struct {
	Date  string // YYYY-MM-DD, local
	Tasks []*task.Task
}

// CompletedTasks returns the tasks with a recorded completion instant.
func CompletedTasks(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, 0)
	for _, t := range tasks {
		if t.Status == task.StatusCompleted && t.CompletedAt != nil && !t.CompletedAt.IsZero() {
			out = append(out, t)
		}
	}
	return out
}

// CompletedByDate groups completed tasks by local completion date, with
// the most recent day first and, within a day, the most recently
// completed task first.
func CompletedByDate(tasks []*task.Task) []DayGroup {
	byDate := make(map[string][]*task.Task)
	for _, t := range CompletedTasks(tasks) {
		key := timeutil.DateKey(t.CompletedAt.Time)
		byDate[key] = append(byDate[key], t)
	}

	groups := make([]DayGroup, 0, len(byDate))
	for date, grouped := range byDate {
		sort.SliceStable(grouped, func(i, j int) bool {
			a, b := grouped[i].CompletedAt.Time, grouped[j].CompletedAt.Time
			if a.Equal(b) {
				return grouped[i].ID < grouped[j].ID
			}
			return a.After(b)
		})
		groups = append(groups, DayGroup{Date: date, Tasks: grouped})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
