package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/video"
)

type memoryPersistence struct {
	data map[string][]byte
}

func (m *memoryPersistence) Save(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memoryPersistence) Load(key string) ([]byte, bool) {
	b, ok := m.data[key]
	return b, ok
}

func (m *memoryPersistence) Erase(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan storage.Event, error) {
	ch := make(chan storage.Event)
	close(ch)
	return ch, nil
}

// stubProvider fakes both provider APIs: the calendar surface plus the
// video search/videos endpoints.
func stubProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": "work", "summary": "Work"}},
		})
	})
	mux.HandleFunc("/calendars/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/calendars/"), "/events")
		if id == "broken" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":      id + "-1",
					"summary": "standup",
					"start":   map[string]string{"date": "2024-06-15"},
					"end":     map[string]string{"date": "2024-06-16"},
				},
			},
		})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": map[string]string{"videoId": "v1"}, "snippet": map[string]any{"title": "go talk"}},
			},
			"pageInfo": map[string]int{"totalResults": 1},
		})
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":             "v1",
					"snippet":        map[string]any{"title": "popular talk"},
					"contentDetails": map[string]string{"duration": "PT4M5S"},
					"statistics":     map[string]string{"viewCount": "1500", "likeCount": "90"},
				},
			},
			"pageInfo": map[string]int{"totalResults": 1},
		})
	})
	return httptest.NewServer(mux)
}

func newTestServer(t *testing.T, providerURL string) (*Server, *store.Store) {
	t.Helper()
	st := store.New(&memoryPersistence{data: map[string][]byte{}})
	srv := New(Options{
		Store: st,
		Calendar: calendar.NewClient(calendar.Options{
			ClientID: "cid",
			APIBase:  providerURL,
			TokenURL: providerURL + "/token",
		}),
		Video:  video.NewClient(video.Options{APIKey: "key", BaseURL: providerURL}),
		Logger: log.New(io.Discard, "", 0),
	})
	return srv, st
}

func postProxy(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProxyAuthURL(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	w := postProxy(t, srv.Handler(), map[string]string{"action": "getAuthUrl"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !strings.Contains(resp["authUrl"], "client_id=cid") {
		t.Fatalf("expected auth url with client id, got %q", resp["authUrl"])
	}
}

func TestProxyUnknownAction(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	w := postProxy(t, srv.Handler(), map[string]string{"action": "dropTables"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "dropTables") {
		t.Fatalf("expected error naming the action, got %q", msg)
	}
}

// decodeError asserts the failure body carries the JSON error envelope.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json error body, got %q", ct)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v: %s", err, w.Body.String())
	}
	if resp.Error == "" {
		t.Fatalf("expected non-empty error field, got %s", w.Body.String())
	}
	return resp.Error
}

func TestProxyRejectsGet(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	req := httptest.NewRequest(http.MethodGet, "/api/calendar", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestProxyCalendarList(t *testing.T) {
	provider := stubProvider(t)
	defer provider.Close()
	srv, _ := newTestServer(t, provider.URL)

	w := postProxy(t, srv.Handler(), map[string]string{
		"action":      "getCalendarList",
		"accessToken": "tok",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Calendars []*calendar.Calendar `json:"calendars"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Calendars) != 1 || resp.Calendars[0].ID != "work" {
		t.Fatalf("unexpected calendars: %+v", resp.Calendars)
	}
}

func TestProxyMultipleCalendarsDegradesAndLogs(t *testing.T) {
	provider := stubProvider(t)
	defer provider.Close()
	srv, st := newTestServer(t, provider.URL)

	w := postProxy(t, srv.Handler(), map[string]any{
		"action":      "getMultipleCalendarEvents",
		"accessToken": "tok",
		"calendarIds": []string{"work", "broken"},
		"timeMin":     "2024-06-01T00:00:00Z",
		"timeMax":     "2024-07-01T00:00:00Z",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite partial failure, got %d", w.Code)
	}
	var resp struct {
		EventsData []calendar.CalendarEvents `json:"eventsData"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.EventsData) != 2 {
		t.Fatalf("expected both calendars present, got %d", len(resp.EventsData))
	}
	if len(resp.EventsData[1].Events) != 0 {
		t.Fatalf("expected broken calendar degraded to empty list")
	}

	var logged bool
	for _, e := range st.DebugHistory() {
		if e.Category == "calendar" && e.Severity == store.SeverityWarning {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("expected partial failure recorded in debug log")
	}
}

func TestProxyProviderFailureIs500(t *testing.T) {
	provider := stubProvider(t)
	defer provider.Close()
	srv, st := newTestServer(t, provider.URL)

	w := postProxy(t, srv.Handler(), map[string]string{
		"action":      "getEvents",
		"accessToken": "tok",
		"calendarId":  "broken",
		"timeMin":     "2024-06-01T00:00:00Z",
		"timeMax":     "2024-07-01T00:00:00Z",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	decodeError(t, w)
	var logged bool
	for _, e := range st.DebugHistory() {
		if e.Severity == store.SeverityError {
			logged = true
		}
	}
	if !logged {
		t.Fatalf("expected provider failure recorded in debug log")
	}
}

func TestVideoSearchEndpoint(t *testing.T) {
	provider := stubProvider(t)
	defer provider.Close()
	srv, _ := newTestServer(t, provider.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/search?q=go", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp video.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Videos) != 1 || resp.Videos[0].Duration != "4:05" {
		t.Fatalf("expected enriched video, got %+v", resp.Videos)
	}
}

func TestVideoSearchRequiresQuery(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	req := httptest.NewRequest(http.MethodGet, "/api/videos/search", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	decodeError(t, w)
}

func TestRefreshEventsInstallsSelected(t *testing.T) {
	provider := stubProvider(t)
	defer provider.Close()
	srv, st := newTestServer(t, provider.URL)

	st.SetAuthToken("tok")
	st.SetCalendars([]*calendar.Calendar{
		{ID: "work", Selected: true},
		{ID: "broken", Selected: true},
	})

	if err := srv.RefreshEvents(context.Background(), 7*24*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := st.Events()
	if len(events) != 1 || events[0].CalendarID != "work" {
		t.Fatalf("expected one surviving event tagged with its calendar, got %+v", events)
	}
}

func TestRefreshEventsRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t, "http://provider.invalid")
	if err := srv.RefreshEvents(context.Background(), time.Hour); err == nil {
		t.Fatalf("expected error when signed out")
	}
}
