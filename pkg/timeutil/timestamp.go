// Package timeutil provides the date and time primitives shared by the
// planner's domain types: an RFC3339 JSON timestamp wrapper, date-only
// values, month period keys, and human-friendly window parsing.
package timeutil

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp wraps time.Time with the JSON encoding durable storage uses:
// RFC3339 strings, with the zero value serialised as "".
type Timestamp struct {
	time.Time
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

// At wraps an existing time.Time.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayout,
}

// ParseTimestamp accepts the serialised forms older snapshots may carry:
// RFC3339 with or without sub-second precision, or a bare date.
func ParseTimestamp(v string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("timeutil: unparseable timestamp %q", v)
}

// SameDay reports whether the timestamp falls on the same local calendar
// day as then.
func (t Timestamp) SameDay(then time.Time) bool {
	return SameCalendarDay(t.Time, then)
}

// SameMonth reports whether the timestamp falls in the same local month
// as then.
func (t Timestamp) SameMonth(then time.Time) bool {
	a := t.Local()
	b := then.Local()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.UTC().Format(time.RFC3339Nano))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
