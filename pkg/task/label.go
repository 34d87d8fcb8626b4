package task

import (
	"encoding/json"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// Label is a named color tag tasks may reference.
type Label struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Color     string             `json:"color"`
	CreatedAt timeutil.Timestamp `json:"createdAt"`
}

// NewLabel creates a label with a fresh id.
func NewLabel(name, color string) *Label {
	return &Label{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: timeutil.Now(),
	}
}

// DefaultLabels returns the three labels seeded when the collection is
// empty. The fixed ids keep older task references valid across reseeds.
func DefaultLabels() []*Label {
	now := timeutil.Now()
	return []*Label{
		{ID: "1", Name: "primary job", Color: "#2563eb", CreatedAt: now},
		{ID: "2", Name: "side job", Color: "#059669", CreatedAt: now},
		{ID: "3", Name: "private", Color: "#dc2626", CreatedAt: now},
	}
}

// DecodeLabels decodes a stored JSON label array, dropping malformed
// records.
func DecodeLabels(data []byte) []*Label {
	out := []*Label{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var l Label
		if err := json.Unmarshal(raw, &l); err != nil {
			continue
		}
		if l.ID == "" || l.Name == "" {
			continue
		}
		out = append(out, &l)
	}
	return out
}
