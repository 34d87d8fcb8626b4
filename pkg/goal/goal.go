// Package goal defines monthly numeric targets and their per-day
// recorded values.
package goal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// Type classifies a goal. The classification is display metadata only;
// every type behaves the same.
type Type string

const (
	TypeTask    Type = "task"
	TypeTime    Type = "time"
	TypeBalance Type = "balance"
	TypeHabit   Type = "habit"
)

// Valid reports whether t is a known goal type.
func (t Type) Valid() bool {
	switch t {
	case TypeTask, TypeTime, TypeBalance, TypeHabit:
		return true
	}
	return false
}

// Goal is a monthly numeric target. YearMonth pins the goal to exactly
// one period in YYYY-MM form.
type Goal struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        Type               `json:"type"`
	TargetValue float64            `json:"targetValue"`
	Unit        string             `json:"unit"`
	Description string             `json:"description,omitempty"`
	IsActive    bool               `json:"isActive"`
	YearMonth   string             `json:"yearMonth"`
	CreatedAt   timeutil.Timestamp `json:"createdAt"`
	UpdatedAt   timeutil.Timestamp `json:"updatedAt"`
}

// New creates an active goal for the given period.
func New(name string, typ Type, target float64, unit, yearMonth string) *Goal {
	now := timeutil.Now()
	return &Goal{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        typ,
		TargetValue: target,
		Unit:        unit,
		IsActive:    true,
		YearMonth:   yearMonth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate applies the edit-time rules.
func (g *Goal) Validate() error {
	if g.Name == "" {
		return errors.New("goal: name is required")
	}
	if !g.Type.Valid() {
		return fmt.Errorf("goal: unknown type %q", g.Type)
	}
	if g.TargetValue <= 0 {
		return errors.New("goal: target value must be positive")
	}
	if !timeutil.ValidPeriod(g.YearMonth) {
		return fmt.Errorf("goal: invalid period %q", g.YearMonth)
	}
	return nil
}

// DecodeList decodes a stored JSON goal array, dropping malformed
// records.
func DecodeList(data []byte) []*Goal {
	out := []*Goal{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var g Goal
		if err := json.Unmarshal(raw, &g); err != nil {
			continue
		}
		if g.ID == "" || g.Name == "" || !timeutil.ValidPeriod(g.YearMonth) {
			continue
		}
		out = append(out, &g)
	}
	return out
}
