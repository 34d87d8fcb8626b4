package viewmodel

import (
	"time"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// BarPosition places a task bar within a visible day-cell window as
// percentages of the window width.
type BarPosition struct {
	Left    float64
	Width   float64
	Visible bool
}

// GanttPosition clips a task's [startDate, dueDate] span to the window
// and converts it to bar coordinates. days is the window's consecutive
// day cells, typically a calendar month. Tasks that do not intersect the
// window are not visible. The 1% width floor keeps single-day tasks
// rendered.
func GanttPosition(t *task.Task, days []time.Time) BarPosition {
	n := len(days)
	if n == 0 {
		return BarPosition{}
	}
	windowStart := timeutil.StartOfDay(days[0])
	windowEnd := timeutil.StartOfDay(days[n-1])

	start := timeutil.StartOfDay(t.StartDate.Time)
	end := timeutil.StartOfDay(t.DueDate.Time)
	if end.Before(windowStart) || start.After(windowEnd) {
		return BarPosition{}
	}
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}

	startIndex := dayIndex(days, start)
	endIndex := dayIndex(days, end)
	if startIndex < 0 || endIndex < 0 {
		return BarPosition{}
	}

	left := float64(startIndex) / float64(n) * 100
	if left < 0 {
		left = 0
	}
	width := float64(endIndex-startIndex+1) / float64(n) * 100
	if width < 1 {
		width = 1
	}
	return BarPosition{Left: left, Width: width, Visible: true}
}

func dayIndex(days []time.Time, day time.Time) int {
	for i, d := range days {
		if timeutil.SameCalendarDay(d, day) {
			return i
		}
	}
	return -1
}

// IsOverdue reports whether the task's due date has passed without the
// task reaching completed status.
func IsOverdue(t *task.Task, now time.Time) bool {
	return t.Status != task.StatusCompleted && t.DueDate.Before(now)
}
