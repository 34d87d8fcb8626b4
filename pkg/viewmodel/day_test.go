package viewmodel

import (
	"fmt"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/task"
)

func localRFC3339(t time.Time) string {
	return t.Format(time.RFC3339)
}

func TestEventsForDayAllDay(t *testing.T) {
	ev := &calendar.Event{
		ID:    "allday",
		Start: calendar.EventTime{Date: "2024-06-15"},
		End:   calendar.EventTime{Date: "2024-06-16"},
	}
	events := []*calendar.Event{ev}

	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.Local)
	}
	if got := EventsForDay(events, day(15)); len(got) != 1 {
		t.Fatalf("expected all-day event on June 15, got %d", len(got))
	}
	for _, d := range []int{14, 16} {
		if got := EventsForDay(events, day(d)); len(got) != 0 {
			t.Fatalf("expected no event on June %d, got %d", d, len(got))
		}
	}
}

func TestEventsForDayTimedCrossingMidnight(t *testing.T) {
	start := time.Date(2024, time.June, 15, 23, 0, 0, 0, time.Local)
	end := time.Date(2024, time.June, 16, 1, 0, 0, 0, time.Local)
	ev := &calendar.Event{
		ID:    "timed",
		Start: calendar.EventTime{DateTime: localRFC3339(start)},
		End:   calendar.EventTime{DateTime: localRFC3339(end)},
	}
	events := []*calendar.Event{ev}

	for _, d := range []int{15, 16} {
		day := time.Date(2024, time.June, d, 0, 0, 0, 0, time.Local)
		if got := EventsForDay(events, day); len(got) != 1 {
			t.Fatalf("expected event bucketed under June %d", d)
		}
	}
	day17 := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.Local)
	if got := EventsForDay(events, day17); len(got) != 0 {
		t.Fatalf("expected no event on June 17")
	}
}

func TestEventsForDaySkipsUnresolvable(t *testing.T) {
	events := []*calendar.Event{
		{ID: "junk", Start: calendar.EventTime{DateTime: "not a time"}},
	}
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)
	if got := EventsForDay(events, day); len(got) != 0 {
		t.Fatalf("expected unresolvable event skipped")
	}
}

func TestTasksForDaySpan(t *testing.T) {
	tk := spanTask("span",
		time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local))
	tasks := []*task.Task{tk}

	for d := 10; d <= 12; d++ {
		day := time.Date(2024, time.June, d, 0, 0, 0, 0, time.Local)
		if got := TasksForDay(tasks, day); len(got) != 1 {
			t.Fatalf("expected task on June %d", d)
		}
	}
	for _, d := range []int{9, 13} {
		day := time.Date(2024, time.June, d, 0, 0, 0, 0, time.Local)
		if got := TasksForDay(tasks, day); len(got) != 0 {
			t.Fatalf("expected no task on June %d", d)
		}
	}
}

func TestBucketForDayTotal(t *testing.T) {
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)
	tk := spanTask("t", day, day)
	var events []*calendar.Event
	for i := 0; i < 2; i++ {
		events = append(events, &calendar.Event{
			ID:    fmt.Sprintf("e%d", i),
			Start: calendar.EventTime{Date: "2024-06-15"},
			End:   calendar.EventTime{Date: "2024-06-16"},
		})
	}
	bucket := BucketForDay([]*task.Task{tk}, events, day)
	if bucket.Total() != 3 {
		t.Fatalf("expected total 3, got %d", bucket.Total())
	}
}
