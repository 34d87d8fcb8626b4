package goal

import (
	"encoding/json"
	"testing"
)

func TestDecodeListDropsMalformed(t *testing.T) {
	keep := New("read books", TypeHabit, 10, "books", "2024-06")
	keep.ID = "g1"
	raw := []any{
		keep,
		map[string]any{"id": "g2", "name": "no period", "yearMonth": "June 2024"},
		map[string]any{"id": "", "name": "no id", "yearMonth": "2024-06"},
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := DecodeList(data)
	if len(out) != 1 || out[0].ID != "g1" {
		t.Fatalf("expected only g1, got %+v", out)
	}
}

func TestGoalValidate(t *testing.T) {
	g := New("study", TypeTime, 40, "hours", "2024-06")
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.TargetValue = 0
	if err := g.Validate(); err == nil {
		t.Fatalf("expected error for zero target")
	}
}

func TestDecodeRecordsDropsMalformed(t *testing.T) {
	keep := NewRecord("g1", "2024-06-15", 3, "")
	keep.ID = "r1"
	raw := []any{
		keep,
		map[string]any{"id": "r2", "goalId": "g1", "date": "June 15", "value": 1},
		map[string]any{"id": "r3", "goalId": "g1", "date": "2024-06-15", "value": -1},
		map[string]any{"id": "r4", "goalId": "", "date": "2024-06-15", "value": 1},
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := DecodeRecords(data)
	if len(out) != 1 || out[0].ID != "r1" {
		t.Fatalf("expected only r1, got %+v", out)
	}
}
