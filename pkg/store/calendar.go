package store

import (
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/storage"
)

// AuthToken returns the provider access token, empty when signed out.
func (s *Store) AuthToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken
}

// RefreshToken returns the provider refresh token.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// TokenExpiry returns the access token expiry in unix milliseconds, 0
// when unknown.
func (s *Store) TokenExpiry() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenExpiry
}

// SetTokens stores the full credential set from a code exchange.
func (s *Store) SetTokens(t calendar.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = t.AccessToken
	if t.RefreshToken != "" {
		s.refreshToken = t.RefreshToken
	}
	s.tokenExpiry = t.ExpiryDate
	s.persistAuthLocked()
}

// SetAuthToken stores just the access token, keeping the refresh token.
func (s *Store) SetAuthToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = token
	s.persistAuthLocked()
}

// ClearAuth signs out: credentials, calendar list and cached events all
// go, since they are unreadable without the token.
func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = ""
	s.refreshToken = ""
	s.tokenExpiry = 0
	s.calendars = []*calendar.Calendar{}
	s.events = []*calendar.Event{}
	s.eventGen++
	s.persistAuthLocked()
	s.persist(storage.KeyCalendars, s.calendars)
	s.persist(storage.KeyEvents, s.events)
}

func (s *Store) persistAuthLocked() {
	s.persist(storage.KeyAuth, authState{
		AccessToken:  s.authToken,
		RefreshToken: s.refreshToken,
		TokenExpiry:  s.tokenExpiry,
	})
}

// Calendars returns a copy of the calendar list.
func (s *Store) Calendars() []*calendar.Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*calendar.Calendar, len(s.calendars))
	for i, c := range s.calendars {
		cp := *c
		out[i] = &cp
	}
	return out
}

// SetCalendars replaces the calendar list, carrying each calendar's
// previous selection forward so a refresh does not reset choices.
func (s *Store) SetCalendars(calendars []*calendar.Calendar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := map[string]bool{}
	for _, c := range s.calendars {
		selected[c.ID] = c.Selected
	}
	next := make([]*calendar.Calendar, len(calendars))
	for i, c := range calendars {
		cp := *c
		if was, ok := selected[cp.ID]; ok {
			cp.Selected = was
		}
		next[i] = &cp
	}
	s.calendars = next
	s.persist(storage.KeyCalendars, s.calendars)
}

// ToggleCalendar flips whether a calendar's events are shown.
func (s *Store) ToggleCalendar(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calendars {
		if c.ID == id {
			c.Selected = !c.Selected
			s.persist(storage.KeyCalendars, s.calendars)
			return
		}
	}
}

// SelectedCalendarIDs returns the ids of calendars currently shown.
func (s *Store) SelectedCalendarIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, c := range s.calendars {
		if c.Selected {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Events returns a copy of the cached event collection.
func (s *Store) Events() []*calendar.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*calendar.Event, len(s.events))
	for i, e := range s.events {
		cp := *e
		out[i] = &cp
	}
	return out
}

// SetEvents replaces the cached events unconditionally.
func (s *Store) SetEvents(events []*calendar.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEventsLocked(events)
}

// BeginEventRefresh marks the start of a fetch and returns its
// generation. A concurrent later fetch bumps the generation, which
// makes the earlier CompleteEventRefresh a no-op.
func (s *Store) BeginEventRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventGen++
	return s.eventGen
}

// CompleteEventRefresh installs fetched events if gen is still current.
// It reports whether the results were applied.
func (s *Store) CompleteEventRefresh(gen uint64, events []*calendar.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.eventGen {
		return false
	}
	s.setEventsLocked(events)
	return true
}

func (s *Store) setEventsLocked(events []*calendar.Event) {
	next := make([]*calendar.Event, len(events))
	for i, e := range events {
		cp := *e
		next[i] = &cp
	}
	s.events = next
	s.persist(storage.KeyEvents, s.events)
}
