package timeutil

import (
	"testing"
	"time"
)

func TestPeriodOf(t *testing.T) {
	got := PeriodOf(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local))
	if got != "2024-06" {
		t.Fatalf("expected 2024-06, got %s", got)
	}
}

func TestPeriodContains(t *testing.T) {
	if !PeriodContains("2024-06", "2024-06-15") {
		t.Fatalf("expected containment")
	}
	if PeriodContains("2024-06", "2024-07-01") {
		t.Fatalf("expected no containment")
	}
}

func TestMonthDays(t *testing.T) {
	days := MonthDays(2024, time.February)
	if len(days) != 29 {
		t.Fatalf("expected 29 days, got %d", len(days))
	}
	if days[0].Day() != 1 || days[28].Day() != 29 {
		t.Fatalf("unexpected bounds: %v .. %v", days[0], days[28])
	}
}

func TestRemainingDaysIn(t *testing.T) {
	cases := []struct {
		period string
		now    time.Time
		want   int
	}{
		{"2024-06", time.Date(2024, time.June, 28, 9, 0, 0, 0, time.Local), 2},
		{"2024-06", time.Date(2024, time.June, 30, 9, 0, 0, 0, time.Local), 0},
		{"2024-06", time.Date(2024, time.July, 2, 9, 0, 0, 0, time.Local), 0},
		{"2024-06", time.Date(2024, time.May, 31, 9, 0, 0, 0, time.Local), 30},
		{"garbage", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local), 0},
	}
	for _, tc := range cases {
		if got := RemainingDaysIn(tc.period, tc.now); got != tc.want {
			t.Fatalf("RemainingDaysIn(%s, %v) = %d, want %d", tc.period, tc.now, got, tc.want)
		}
	}
}
