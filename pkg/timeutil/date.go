package timeutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the serialised form of date-only values ("2006-01-02").
	DateLayout = "2006-01-02"
	// PeriodLayout is the serialised form of month period keys ("2006-01").
	PeriodLayout = "2006-01"
)

// ParseDate parses a YYYY-MM-DD value in the local zone.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: unparseable date %q", v)
	}
	return t, nil
}

// DateKey formats an instant as its local calendar date.
func DateKey(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// PeriodOf formats an instant as its local month period key.
func PeriodOf(t time.Time) string {
	return t.Local().Format(PeriodLayout)
}

// ValidPeriod reports whether v is a well-formed YYYY-MM period key.
func ValidPeriod(v string) bool {
	_, err := time.Parse(PeriodLayout, v)
	return err == nil
}

// PeriodContains reports whether the YYYY-MM-DD date falls inside the
// YYYY-MM period.
func PeriodContains(period, date string) bool {
	return len(date) >= len(period) && date[:len(period)] == period
}

// StartOfDay truncates an instant to local midnight.
func StartOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// SameCalendarDay reports whether two instants share a local calendar day.
func SameCalendarDay(a, b time.Time) bool {
	al := a.Local()
	bl := b.Local()
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}

// MonthDays returns one local-midnight instant per day of the given month.
func MonthDays(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	n := first.AddDate(0, 1, -1).Day()
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// RemainingDaysIn returns the whole days between the start of now's local
// day and the last day of the period, floored at zero. A period that has
// already ended reports zero; the last day of the current period reports
// zero as well.
func RemainingDaysIn(period string, now time.Time) int {
	first, err := time.ParseInLocation(PeriodLayout, period, time.Local)
	if err != nil {
		return 0
	}
	last := first.AddDate(0, 1, -1)
	days := int(last.Sub(StartOfDay(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
