package viewmodel

import (
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// DayBucket collects everything overlapping one calendar day.
type DayBucket struct {
	Tasks  []*task.Task
	Events []*calendar.Event
}

// Total is the number of items in the bucket.
func (b DayBucket) Total() int {
	return len(b.Tasks) + len(b.Events)
}

// BucketForDay gathers the tasks and provider events overlapping day.
func BucketForDay(tasks []*task.Task, events []*calendar.Event, day time.Time) DayBucket {
	return DayBucket{
		Tasks:  TasksForDay(tasks, day),
		Events: EventsForDay(events, day),
	}
}

// TasksForDay returns the tasks whose [startDate, dueDate] span
// intersects day's local [00:00, 24:00) interval.
func TasksForDay(tasks []*task.Task, day time.Time) []*task.Task {
	dayStart := timeutil.StartOfDay(day)
	nextDay := dayStart.AddDate(0, 0, 1)
	out := make([]*task.Task, 0)
	for _, t := range tasks {
		if t.StartDate.Before(nextDay) && !t.DueDate.Before(dayStart) {
			out = append(out, t)
		}
	}
	return out
}

// EventsForDay returns the provider events overlapping day. An all-day
// event matches when its calendar date equals day's; a timed event
// matches when its interval intersects day's local [00:00, 24:00).
func EventsForDay(events []*calendar.Event, day time.Time) []*calendar.Event {
	dayStart := timeutil.StartOfDay(day)
	nextDay := dayStart.AddDate(0, 0, 1)
	out := make([]*calendar.Event, 0)
	for _, e := range events {
		start, ok := e.Start.Resolve()
		if !ok {
			continue
		}
		if e.Start.AllDay() {
			if timeutil.SameCalendarDay(start, day) {
				out = append(out, e)
			}
			continue
		}
		end, ok := e.End.Resolve()
		if !ok {
			continue
		}
		if start.Before(nextDay) && end.After(dayStart) {
			out = append(out, e)
		}
	}
	return out
}
