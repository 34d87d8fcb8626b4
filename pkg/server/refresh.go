package server

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/store"
)

// RefreshEvents refetches events for every selected calendar over
// [now, now+window) and installs them in the store. A refresh that
// another has superseded is discarded rather than applied out of order.
func (s *Server) RefreshEvents(ctx context.Context, window time.Duration) error {
	token := s.store.AuthToken()
	if token == "" {
		return errors.New("server: not signed in")
	}
	ids := s.store.SelectedCalendarIDs()
	if len(ids) == 0 {
		return nil
	}

	gen := s.store.BeginEventRefresh()
	now := time.Now()
	timeMin := now.Format(time.RFC3339)
	timeMax := now.Add(window).Format(time.RFC3339)

	results, errs := s.calendar.ListMultipleCalendarEvents(ctx, ids, timeMin, timeMax, token)
	for _, err := range errs {
		s.log.Printf("event refresh: %v", err)
		s.store.AddDebug("calendar", "event refresh partial failure", err.Error(), store.SeverityWarning)
	}

	var events []*calendar.Event
	for _, r := range results {
		events = append(events, r.Events...)
	}
	if !s.store.CompleteEventRefresh(gen, events) {
		s.log.Printf("event refresh: superseded, discarding %d events", len(events))
		return nil
	}
	s.store.AddDebug("calendar", "events refreshed", map[string]int{
		"calendars": len(ids),
		"events":    len(events),
	}, store.SeveritySuccess)
	return nil
}
