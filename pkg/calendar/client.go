package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthBase = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultAPIBase  = "https://www.googleapis.com/calendar/v3"

	// maxEventResults caps a single event listing; recurring instances
	// are expanded provider-side so busy calendars can run long.
	maxEventResults = 2500
)

var readScopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events.readonly",
	"https://www.googleapis.com/auth/calendar.calendars.readonly",
}

// Options configures a Client. The base URLs exist so tests can point
// the client at a stub server.
type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthBase string
	TokenURL string
	APIBase  string
}

// Client is the read-only calendar provider client. It runs server-side
// behind the proxy endpoint so credentials stay off the browser.
type Client struct {
	http *http.Client
	opts Options
}

// NewClient builds a Client with a 15 second request timeout.
func NewClient(opts Options) *Client {
	if opts.AuthBase == "" {
		opts.AuthBase = defaultAuthBase
	}
	if opts.TokenURL == "" {
		opts.TokenURL = defaultTokenURL
	}
	if opts.APIBase == "" {
		opts.APIBase = defaultAPIBase
	}
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		opts: opts,
	}
}

// AuthURL returns the provider consent URL for the read-only scopes.
func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", c.opts.ClientID)
	q.Set("redirect_uri", c.opts.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(readScopes, " "))
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	return c.opts.AuthBase + "?" + q.Encode()
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Tokens, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.opts.ClientID)
	form.Set("client_secret", c.opts.ClientSecret)
	form.Set("redirect_uri", c.opts.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Tokens{}, fmt.Errorf("calendar: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := c.do(req, &body); err != nil {
		return Tokens{}, err
	}
	tokens := Tokens{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}
	if body.ExpiresIn > 0 {
		tokens.ExpiryDate = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second).UnixMilli()
	}
	return tokens, nil
}

// ListCalendars fetches the calendars the user can at least read. Every
// returned calendar is marked selected; deselection is a local concern.
func (c *Client) ListCalendars(ctx context.Context, accessToken string) ([]*Calendar, error) {
	endpoint := c.opts.APIBase + "/users/me/calendarList?minAccessRole=reader"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("calendar: build list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var body struct {
		Items []*Calendar `json:"items"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	for _, cal := range body.Items {
		cal.Selected = true
	}
	if body.Items == nil {
		return []*Calendar{}, nil
	}
	return body.Items, nil
}

// ListEvents fetches events for one calendar within [timeMin, timeMax),
// ordered by start time, with recurring instances expanded.
func (c *Client) ListEvents(ctx context.Context, calendarID, timeMin, timeMax, accessToken string) ([]*Event, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin)
	q.Set("timeMax", timeMax)
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("showDeleted", "false")
	q.Set("maxResults", fmt.Sprint(maxEventResults))
	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.opts.APIBase, url.PathEscape(calendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("calendar: build events request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var body struct {
		Items []*Event `json:"items"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	events := body.Items
	if events == nil {
		events = []*Event{}
	}
	for _, e := range events {
		if e.Summary == "" {
			e.Summary = "(no title)"
		}
	}
	return events, nil
}

// CalendarEvents pairs a calendar id with its fetched events.
type CalendarEvents struct {
	CalendarID string   `json:"calendarId"`
	Events     []*Event `json:"events"`
}

// ListMultipleCalendarEvents fetches events for several calendars. A
// failure on one calendar degrades that calendar's result to an empty
// list instead of aborting the rest; the collected errors are returned
// for logging.
func (c *Client) ListMultipleCalendarEvents(ctx context.Context, calendarIDs []string, timeMin, timeMax, accessToken string) ([]CalendarEvents, []error) {
	results := make([]CalendarEvents, 0, len(calendarIDs))
	var errs []error
	for _, id := range calendarIDs {
		events, err := c.ListEvents(ctx, id, timeMin, timeMax, accessToken)
		if err != nil {
			errs = append(errs, fmt.Errorf("calendar %s: %w", id, err))
			results = append(results, CalendarEvents{CalendarID: id, Events: []*Event{}})
			continue
		}
		for _, e := range events {
			e.CalendarID = id
		}
		results = append(results, CalendarEvents{CalendarID: id, Events: events})
	}
	return results, errs
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("calendar: %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("calendar: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
