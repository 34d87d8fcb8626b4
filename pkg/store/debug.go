package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/timeutil"
)

// Severity classifies a debug entry.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DebugEntry is one line of the in-app diagnostic log. Payload keeps
// whatever JSON the caller handed over; it is surfaced verbatim and
// never interpreted.
type DebugEntry struct {
	ID        string             `json:"id"`
	Timestamp timeutil.Timestamp `json:"timestamp"`
	Category  string             `json:"category"`
	Title     string             `json:"title"`
	Payload   json.RawMessage    `json:"payload,omitempty"`
	Severity  Severity           `json:"severity"`
}

type debugState struct {
	Entries []DebugEntry `json:"entries"`
	Max     int          `json:"max,omitempty"`
}

// AddDebug appends a diagnostic entry, evicting the oldest entries once
// the log exceeds its bound.
func (s *Store) AddDebug(category, title string, payload any, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			b, _ = json.Marshal(fmt.Sprint(payload))
		}
		raw = b
	}

	s.debug = append(s.debug, DebugEntry{
		ID:        uuid.New().String(),
		Timestamp: timeutil.At(s.now()),
		Category:  category,
		Title:     title,
		Payload:   raw,
		Severity:  severity,
	})
	s.trimDebugLocked()
	s.persistDebugLocked()
}

// ClearDebug empties the diagnostic log.
func (s *Store) ClearDebug() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = []DebugEntry{}
	s.persistDebugLocked()
}

// SetMaxDebug changes the log bound and evicts immediately if needed.
// Non-positive values restore the default.
func (s *Store) SetMaxDebug(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= 0 {
		max = DefaultMaxDebugEntries
	}
	s.maxDebug = max
	s.trimDebugLocked()
	s.persistDebugLocked()
}

// DebugHistory returns the log, oldest first.
func (s *Store) DebugHistory() []DebugEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DebugEntry, len(s.debug))
	copy(out, s.debug)
	return out
}

// trimDebugLocked evicts from the front until the bound holds.
func (s *Store) trimDebugLocked() {
	if over := len(s.debug) - s.maxDebug; over > 0 {
		s.debug = append([]DebugEntry{}, s.debug[over:]...)
	}
}

func (s *Store) persistDebugLocked() {
	s.persist(storage.KeyDebugLog, debugState{Entries: s.debug, Max: s.maxDebug})
}

// decodeDebugEntries keeps entries with an id and a title; the log is
// diagnostics, so a corrupt line is dropped rather than repaired.
func decodeDebugEntries(entries []DebugEntry) []DebugEntry {
	out := make([]DebugEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Title == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
