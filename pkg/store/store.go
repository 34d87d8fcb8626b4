// Package store is the planner's reactive state container. One Store
// instance owns every collection; mutations run synchronously under its
// lock and mirror the touched collection to durable storage. Storage is
// never a source of truth after startup rehydration.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/video"
)

// View identifies the active page.
type View string

const (
	ViewTodo       View = "todo"
	ViewGantt      View = "gantt"
	ViewCalendar   View = "calendar"
	ViewStats      View = "stats"
	ViewSettings   View = "settings"
	ViewDebug      View = "debug"
	ViewCompleted  View = "completed"
	ViewGoals      View = "goals"
	ViewDailyInput View = "daily-input"
	ViewVideos     View = "videos"
)

// DefaultMaxDebugEntries bounds the debug log unless overridden.
const DefaultMaxDebugEntries = 100

// Store holds all application state. Construct one per process (or per
// test) with New; there is no package-level instance.
type Store struct {
	mu  sync.RWMutex
	p   storage.Persistence
	now func() time.Time

	tasks   []*task.Task
	labels  []*task.Label
	goals   []*goal.Goal
	records []*goal.DailyRecord

	currentView   View
	selectedLabel string
	filters       task.Filter
	sortBy        task.SortOption
	sortOrder     task.SortOrder

	authToken    string
	refreshToken string
	tokenExpiry  int64
	calendars    []*calendar.Calendar
	events       []*calendar.Event
	eventGen     uint64

	memo      string
	favorites []*video.Favorite

	debug    []DebugEntry
	maxDebug int
}

// Option customises Store construction.
type Option func(*Store)

// WithClock injects the time source; tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New builds a Store and rehydrates every collection from p. A nil
// persistence yields an in-memory store with defaults, mirroring the
// non-browser no-op storage context.
func New(p storage.Persistence, opts ...Option) *Store {
	s := &Store{
		p:         p,
		now:       time.Now,
		tasks:     []*task.Task{},
		labels:    []*task.Label{},
		goals:     []*goal.Goal{},
		records:   []*goal.DailyRecord{},
		calendars: []*calendar.Calendar{},
		events:    []*calendar.Event{},
		favorites: []*video.Favorite{},
		debug:     []DebugEntry{},

		currentView: ViewTodo,
		sortBy:      task.SortByDueDate,
		sortOrder:   task.SortAscending,
		maxDebug:    DefaultMaxDebugEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rehydrate()
	return s
}

// rehydrate loads every collection, dropping structurally incomplete
// records and reseeding the default labels when none survive. Absent or
// corrupt keys fall back to the type's empty value.
func (s *Store) rehydrate() {
	if data, ok := s.load(storage.KeyTasks); ok {
		s.tasks = task.DecodeList(data)
	}
	if data, ok := s.load(storage.KeyLabels); ok {
		s.labels = task.DecodeLabels(data)
	}
	if len(s.labels) == 0 {
		s.labels = task.DefaultLabels()
		s.persist(storage.KeyLabels, s.labels)
	}
	if data, ok := s.load(storage.KeyGoals); ok {
		s.goals = goal.DecodeList(data)
	}
	if data, ok := s.load(storage.KeyDailyRecords); ok {
		s.records = goal.DecodeRecords(data)
	}
	if data, ok := s.load(storage.KeyCalendars); ok {
		s.calendars = calendar.DecodeCalendars(data)
	}
	if data, ok := s.load(storage.KeyEvents); ok {
		s.events = calendar.DecodeEvents(data)
	}
	if data, ok := s.load(storage.KeyFavorites); ok {
		s.favorites = video.DecodeFavorites(data)
	}
	if data, ok := s.load(storage.KeyAuth); ok {
		var auth authState
		if err := json.Unmarshal(data, &auth); err == nil {
			s.authToken = auth.AccessToken
			s.refreshToken = auth.RefreshToken
			s.tokenExpiry = auth.TokenExpiry
		}
	}
	if data, ok := s.load(storage.KeySettings); ok {
		var st settingsState
		if err := json.Unmarshal(data, &st); err == nil {
			if st.CurrentView != "" {
				s.currentView = st.CurrentView
			}
			s.selectedLabel = st.SelectedLabel
			s.filters = st.Filters
			if st.SortBy != "" {
				s.sortBy = st.SortBy
			}
			if st.SortOrder != "" {
				s.sortOrder = st.SortOrder
			}
		}
	}
	if data, ok := s.load(storage.KeyMemo); ok {
		var memo string
		if err := json.Unmarshal(data, &memo); err == nil {
			s.memo = memo
		}
	}
	if data, ok := s.load(storage.KeyDebugLog); ok {
		var dl debugState
		if err := json.Unmarshal(data, &dl); err == nil {
			s.debug = decodeDebugEntries(dl.Entries)
			if dl.Max > 0 {
				s.maxDebug = dl.Max
			}
		}
	}
	s.trimDebugLocked()
}

type authState struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenExpiry  int64  `json:"tokenExpiry,omitempty"`
}

type settingsState struct {
	CurrentView   View            `json:"currentView,omitempty"`
	SelectedLabel string          `json:"selectedLabel,omitempty"`
	Filters       task.Filter     `json:"filters"`
	SortBy        task.SortOption `json:"sortBy,omitempty"`
	SortOrder     task.SortOrder  `json:"sortOrder,omitempty"`
}

func (s *Store) load(key string) ([]byte, bool) {
	if s.p == nil {
		return nil, false
	}
	return s.p.Load(key)
}

// persist mirrors the collection to storage. Failures degrade to a
// stderr note; storage errors are never fatal.
func (s *Store) persist(key string, value any) {
	if s.p == nil {
		return
	}
	if err := s.p.Save(key, value); err != nil {
		fmt.Fprintf(os.Stderr, "store: persist %s: %v\n", key, err)
	}
}

func (s *Store) persistSettingsLocked() {
	s.persist(storage.KeySettings, settingsState{
		CurrentView:   s.currentView,
		SelectedLabel: s.selectedLabel,
		Filters:       s.filters,
		SortBy:        s.sortBy,
		SortOrder:     s.sortOrder,
	})
}

// CurrentView returns the active page.
func (s *Store) CurrentView() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentView
}

// SetCurrentView switches the active page.
func (s *Store) SetCurrentView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = v
	s.persistSettingsLocked()
}

// SelectedLabel returns the sidebar label selection, empty for all.
func (s *Store) SelectedLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLabel
}

// SetSelectedLabel sets the sidebar label selection.
func (s *Store) SetSelectedLabel(labelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedLabel = labelID
	s.persistSettingsLocked()
}

// Filters returns the active task filter.
func (s *Store) Filters() task.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the active task filter.
func (s *Store) SetFilters(f task.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.persistSettingsLocked()
}

// Sort returns the active sort key and direction.
func (s *Store) Sort() (task.SortOption, task.SortOrder) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBy, s.sortOrder
}

// SetSortBy sets the sort key.
func (s *Store) SetSortBy(key task.SortOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = key
	s.persistSettingsLocked()
}

// SetSortOrder sets the sort direction.
func (s *Store) SetSortOrder(order task.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = order
	s.persistSettingsLocked()
}

// Memo returns the free-text Gantt memo.
func (s *Store) Memo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memo
}

// SetMemo stores the free-text Gantt memo.
func (s *Store) SetMemo(memo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo = memo
	s.persist(storage.KeyMemo, s.memo)
}
