package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newStubAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "work", "summary": "Work"},
				{"id": "home", "summary": "Home", "primary": true},
			},
		})
	})
	mux.HandleFunc("/calendars/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/calendars/"), "/events")
		if id == "broken" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if r.URL.Query().Get("singleEvents") != "true" {
			http.Error(w, "expected singleEvents", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":    id + "-1",
					"start": map[string]string{"date": "2024-06-15"},
					"end":   map[string]string{"date": "2024-06-16"},
				},
			},
		})
	})
	return httptest.NewServer(mux)
}

func TestListCalendarsSelectsAll(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	c := NewClient(Options{APIBase: srv.URL})
	cals, err := c.ListCalendars(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cals) != 2 {
		t.Fatalf("expected 2 calendars, got %d", len(cals))
	}
	for _, cal := range cals {
		if !cal.Selected {
			t.Fatalf("expected calendar %s selected by default", cal.ID)
		}
	}
}

func TestListEventsFillsSummary(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	c := NewClient(Options{APIBase: srv.URL})
	events, err := c.ListEvents(context.Background(), "work", "2024-06-01T00:00:00Z", "2024-07-01T00:00:00Z", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Summary != "(no title)" {
		t.Fatalf("expected summary placeholder, got %q", events[0].Summary)
	}
	if !events[0].Start.AllDay() {
		t.Fatalf("expected all-day start")
	}
}

func TestListMultipleCalendarEventsDegrades(t *testing.T) {
	srv := newStubAPI(t)
	defer srv.Close()

	c := NewClient(Options{APIBase: srv.URL})
	results, errs := c.ListMultipleCalendarEvents(context.Background(),
		[]string{"work", "broken", "home"}, "2024-06-01T00:00:00Z", "2024-07-01T00:00:00Z", "tok")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if len(results[0].Events) != 1 || len(results[2].Events) != 1 {
		t.Fatalf("expected surviving calendars to keep their events")
	}
	if results[1].CalendarID != "broken" || len(results[1].Events) != 0 {
		t.Fatalf("expected broken calendar to degrade to empty list, got %+v", results[1])
	}
}

func TestAuthURL(t *testing.T) {
	c := NewClient(Options{ClientID: "cid", RedirectURI: "http://localhost/cb"})
	u := c.AuthURL()
	for _, want := range []string{"client_id=cid", "access_type=offline", "response_type=code"} {
		if !strings.Contains(u, want) {
			t.Fatalf("auth URL missing %q: %s", want, u)
		}
	}
}

func TestEventRole(t *testing.T) {
	organizer := &Event{Organizer: &Organizer{Email: "me@x", Self: true}}
	if organizer.Role() != RoleOrganizer {
		t.Fatalf("expected organizer role")
	}
	attendee := &Event{Attendees: []Attendee{{Email: "a@x"}, {Email: "me@x", Self: true}}}
	if attendee.Role() != RoleAttendee {
		t.Fatalf("expected attendee role")
	}
	other := &Event{Organizer: &Organizer{Email: "b@x"}}
	if other.Role() != RoleOther {
		t.Fatalf("expected other role")
	}
}
