package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	orig := Timestamp{Time: time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(orig.Time) {
		t.Fatalf("expected %v, got %v", orig, back)
	}
}

func TestTimestampZero(t *testing.T) {
	data, err := json.Marshal(Timestamp{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `""` {
		t.Fatalf("expected empty string, got %s", data)
	}
	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected zero timestamp, got %v", back)
	}
}

func TestTimestampLegacyForms(t *testing.T) {
	cases := []string{
		`"2024-06-15T10:30:00Z"`,
		`"2024-06-15T10:30:00.123Z"`,
		`"2024-06-15"`,
	}
	for _, raw := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if ts.Year() != 2024 || ts.Month() != time.June || ts.Day() != 15 {
			t.Fatalf("unexpected date for %s: %v", raw, ts)
		}
	}
}

func TestTimestampUnparseable(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for junk timestamp")
	}
}

func TestSameDay(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local)}
	if !ts.SameDay(time.Date(2024, time.June, 15, 0, 1, 0, 0, time.Local)) {
		t.Fatalf("expected same day")
	}
	if ts.SameDay(time.Date(2024, time.June, 16, 0, 1, 0, 0, time.Local)) {
		t.Fatalf("expected different day")
	}
}
