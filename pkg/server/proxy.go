package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/store"
)

// proxyRequest is the action-tagged envelope the frontend posts. One
// endpoint multiplexes every calendar operation so the provider base
// URL and credentials never appear client-side.
type proxyRequest struct {
	Action      string   `json:"action"`
	Code        string   `json:"code,omitempty"`
	AccessToken string   `json:"accessToken,omitempty"`
	CalendarID  string   `json:"calendarId,omitempty"`
	CalendarIDs []string `json:"calendarIds,omitempty"`
	TimeMin     string   `json:"timeMin,omitempty"`
	TimeMax     string   `json:"timeMax,omitempty"`
}

func (s *Server) handleCalendarProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "getAuthUrl":
		writeJSON(w, map[string]string{"authUrl": s.calendar.AuthURL()})

	case "getTokensFromCode":
		tokens, err := s.calendar.ExchangeCode(ctx, req.Code)
		if err != nil {
			s.proxyError(w, req.Action, err)
			return
		}
		writeJSON(w, map[string]calendar.Tokens{"tokens": tokens})

	case "getCalendarList":
		calendars, err := s.calendar.ListCalendars(ctx, req.AccessToken)
		if err != nil {
			s.proxyError(w, req.Action, err)
			return
		}
		writeJSON(w, map[string][]*calendar.Calendar{"calendars": calendars})

	case "getEvents":
		events, err := s.calendar.ListEvents(ctx, req.CalendarID, req.TimeMin, req.TimeMax, req.AccessToken)
		if err != nil {
			s.proxyError(w, req.Action, err)
			return
		}
		writeJSON(w, map[string][]*calendar.Event{"events": events})

	case "getMultipleCalendarEvents":
		results, errs := s.calendar.ListMultipleCalendarEvents(ctx, req.CalendarIDs, req.TimeMin, req.TimeMax, req.AccessToken)
		for _, err := range errs {
			s.log.Printf("calendar proxy: %v", err)
			if s.store != nil {
				s.store.AddDebug("calendar", "partial event fetch failure", err.Error(), store.SeverityWarning)
			}
		}
		writeJSON(w, map[string][]calendar.CalendarEvents{"eventsData": results})

	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", req.Action))
	}
}

// proxyError reports a provider failure: 500 to the caller, a line to
// the log, and a debug entry when a store is wired.
func (s *Server) proxyError(w http.ResponseWriter, action string, err error) {
	s.log.Printf("calendar proxy: %s: %v", action, err)
	if s.store != nil {
		s.store.AddDebug("calendar", action+" failed", err.Error(), store.SeverityError)
	}
	writeError(w, http.StatusInternalServerError, "calendar provider request failed")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError keeps failures in the same JSON envelope as successes, so
// clients can decode every response body the same way.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
