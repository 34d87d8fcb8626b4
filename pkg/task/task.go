// Package task defines the planner's task and label records along with
// their validation and storage decoding rules.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// Status describes where a task sits in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank maps a priority to a sortable weight, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a unit of work. The label field refers to a Label id, with the
// empty string meaning unlabeled.
type Task struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      Status              `json:"status"`
	Priority    Priority            `json:"priority"`
	Label       string              `json:"label"`
	StartDate   timeutil.Timestamp  `json:"startDate"`
	DueDate     timeutil.Timestamp  `json:"dueDate"`
	Progress    int                 `json:"progress"`
	CreatedAt   timeutil.Timestamp  `json:"createdAt"`
	UpdatedAt   timeutil.Timestamp  `json:"updatedAt"`
	CompletedAt *timeutil.Timestamp `json:"completedAt,omitempty"`
}

// New creates a not-started task with a fresh id and timestamps.
func New(title, description string, priority Priority, label string, start, due time.Time) *Task {
	now := timeutil.Now()
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusNotStarted,
		Priority:    priority,
		Label:       label,
		StartDate:   timeutil.At(start),
		DueDate:     timeutil.At(due),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate applies the edit-time rules: non-empty title, known status and
// priority, progress in [0,100], and startDate not after dueDate.
func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("task: title is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task: unknown status %q", t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task: unknown priority %q", t.Priority)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task: progress %d out of range", t.Progress)
	}
	if t.StartDate.IsZero() || t.DueDate.IsZero() {
		return errors.New("task: start and due dates are required")
	}
	if t.StartDate.After(t.DueDate.Time) {
		return errors.New("task: start date is after due date")
	}
	return nil
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	cp := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}

// wellFormed mirrors the rehydration filter: a stored task missing any of
// these fields is dropped rather than repaired.
func (t *Task) wellFormed() bool {
	return t.ID != "" &&
		t.Title != "" &&
		t.Status.Valid() &&
		t.Priority.Valid() &&
		!t.StartDate.IsZero() &&
		!t.DueDate.IsZero() &&
		!t.CreatedAt.IsZero() &&
		!t.UpdatedAt.IsZero()
}

// DecodeList decodes a stored JSON task array. Records that fail to
// decode, carry unparseable dates, or are structurally incomplete are
// dropped. Any input that is not a JSON array yields an empty collection.
func DecodeList(data []byte) []*Task {
	out := []*Task{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var t Task
		if err := json.Unmarshal(raw, &t); err != nil {
			continue
		}
		if !t.wellFormed() {
			continue
		}
		// completedAt is meaningful only for completed tasks; stale or
		// empty values from older snapshots are normalised away.
		if t.Status != StatusCompleted || (t.CompletedAt != nil && t.CompletedAt.IsZero()) {
			t.CompletedAt = nil
		}
		out = append(out, &t)
	}
	return out
}
