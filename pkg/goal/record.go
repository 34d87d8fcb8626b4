package goal

import (
	"encoding/json"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// DailyRecord is one goal's recorded value for one calendar date
// (YYYY-MM-DD). The editing flow keeps at most one record per
// (goalId, date) pair by updating in place.
type DailyRecord struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	GoalID    string             `json:"goalId"`
	Value     float64            `json:"value"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt timeutil.Timestamp `json:"createdAt"`
	UpdatedAt timeutil.Timestamp `json:"updatedAt"`
}

// NewRecord creates a record for one goal and date.
func NewRecord(goalID, date string, value float64, notes string) *DailyRecord {
	now := timeutil.Now()
	return &DailyRecord{
		ID:        uuid.NewString(),
		Date:      date,
		GoalID:    goalID,
		Value:     value,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DecodeRecords decodes a stored JSON daily-record array, dropping
// malformed records.
func DecodeRecords(data []byte) []*DailyRecord {
	out := []*DailyRecord{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var r DailyRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if r.ID == "" || r.GoalID == "" || r.Value < 0 {
			continue
		}
		if _, err := timeutil.ParseDate(r.Date); err != nil {
			continue
		}
		out = append(out, &r)
	}
	return out
}
