// Package calendar holds the provider-shaped calendar and event records
// plus the read-only HTTP client that fetches them. The rest of the
// planner treats this data as externally sourced: shape-tolerant parsing
// only, no validation beyond what rendering needs.
package calendar

import (
	"encoding/json"
	"time"

	"tableflip.dev/planner/pkg/timeutil"
)

// EventTime is the provider's dual-form instant: all-day events carry a
// bare date, timed events carry a dateTime.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// AllDay reports whether the value is a date-only instant.
func (et EventTime) AllDay() bool {
	return et.DateTime == "" && et.Date != ""
}

// Resolve converts the value to a local instant. All-day values resolve
// to local midnight. The second return is false when neither form parses.
func (et EventTime) Resolve() (time.Time, bool) {
	if et.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, et.DateTime); err == nil {
			return t.Local(), true
		}
		return time.Time{}, false
	}
	if et.Date != "" {
		if t, err := timeutil.ParseDate(et.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Organizer identifies the event owner as reported by the provider.
type Organizer struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Self        bool   `json:"self,omitempty"`
}

// Attendee is one entry of the event's attendee list.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
	Self           bool   `json:"self,omitempty"`
}

// Event is a single fetched provider event. CalendarID records which
// calendar it was fetched from; the provider omits it, so the client
// stamps it.
type Event struct {
	ID          string     `json:"id"`
	CalendarID  string     `json:"calendarId,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       EventTime  `json:"start"`
	End         EventTime  `json:"end"`
	ColorID     string     `json:"colorId,omitempty"`
	Organizer   *Organizer `json:"organizer,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
}

// Role is the authenticated user's relationship to an event. It is
// derived presentation metadata, never stored.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
	RoleOther     Role = "other"
)

// Role classifies the event for display: the provider-marked organizer
// wins, then a self-marked attendee, then other.
func (e *Event) Role() Role {
	if e.Organizer != nil && e.Organizer.Self {
		return RoleOrganizer
	}
	for _, a := range e.Attendees {
		if a.Self {
			return RoleAttendee
		}
	}
	return RoleOther
}

// Calendar describes one selectable calendar. Selected is tracked
// locally and defaults to true when the list is fetched.
type Calendar struct {
	ID              string `json:"id"`
	Summary         string `json:"summary"`
	Description     string `json:"description,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	ForegroundColor string `json:"foregroundColor,omitempty"`
	Selected        bool   `json:"selected"`
	AccessRole      string `json:"accessRole,omitempty"`
	Primary         bool   `json:"primary,omitempty"`
}

// Tokens is the result of an authorization-code exchange. ExpiryDate is
// milliseconds since the epoch, matching what the client caches.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiryDate   int64  `json:"expiry_date,omitempty"`
}

// DecodeCalendars decodes the locally cached calendar list, dropping
// malformed entries.
func DecodeCalendars(data []byte) []*Calendar {
	out := []*Calendar{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var c Calendar
		if err := json.Unmarshal(raw, &c); err != nil {
			continue
		}
		if c.ID == "" {
			continue
		}
		out = append(out, &c)
	}
	return out
}

// DecodeEvents decodes the locally cached event list, dropping malformed
// entries.
func DecodeEvents(data []byte) []*Event {
	out := []*Event{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var e Event
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		if e.ID == "" {
			continue
		}
		out = append(out, &e)
	}
	return out
}
