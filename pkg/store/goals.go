package store

import (
	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/timeutil"
	"tableflip.dev/planner/pkg/viewmodel"
)

// Goals returns a copy of the goal collection.
func (s *Store) Goals() []*goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGoals(s.goals)
}

// AddGoal appends a goal.
func (s *Store) AddGoal(g *goal.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	s.goals = append(s.goals, &cp)
	s.persist(storage.KeyGoals, s.goals)
}

// UpdateGoal replaces the goal whose id matches g.ID.
func (s *Store) UpdateGoal(g *goal.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.goals {
		if existing.ID == g.ID {
			cp := *g
			s.goals[i] = &cp
			s.persist(storage.KeyGoals, s.goals)
			return
		}
	}
}

// DeleteGoal removes a goal along with its daily records, so orphaned
// records never accumulate.
func (s *Store) DeleteGoal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.goals[:0]
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept

	keptRecords := s.records[:0]
	dropped := false
	for _, r := range s.records {
		if r.GoalID == id {
			dropped = true
			continue
		}
		keptRecords = append(keptRecords, r)
	}
	s.records = keptRecords

	s.persist(storage.KeyGoals, s.goals)
	if dropped {
		s.persist(storage.KeyDailyRecords, s.records)
	}
}

// GoalByID looks a goal up, returning nil when absent.
func (s *Store) GoalByID(id string) *goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == id {
			cp := *g
			return &cp
		}
	}
	return nil
}

// GoalsForMonth returns the goals whose period matches yearMonth.
func (s *Store) GoalsForMonth(yearMonth string) []*goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*goal.Goal{}
	for _, g := range s.goals {
		if g.YearMonth == yearMonth {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out
}

// CurrentMonthGoals returns the goals for the month containing now.
func (s *Store) CurrentMonthGoals() []*goal.Goal {
	return s.GoalsForMonth(timeutil.PeriodOf(s.now()))
}

// DailyRecords returns a copy of the record collection.
func (s *Store) DailyRecords() []*goal.DailyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.records)
}

// AddDailyRecord appends a record.
func (s *Store) AddDailyRecord(r *goal.DailyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.records = append(s.records, &cp)
	s.persist(storage.KeyDailyRecords, s.records)
}

// UpdateDailyRecord replaces the record whose id matches r.ID.
func (s *Store) UpdateDailyRecord(r *goal.DailyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.ID == r.ID {
			cp := *r
			s.records[i] = &cp
			s.persist(storage.KeyDailyRecords, s.records)
			return
		}
	}
}

// DeleteDailyRecord removes a record by id.
func (s *Store) DeleteDailyRecord(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.persist(storage.KeyDailyRecords, s.records)
}

// SaveDailyValue upserts the record keyed by (goalID, date): the day's
// value is a single number, so entering it twice edits rather than
// duplicates. The date must be a valid YYYY-MM-DD value; rehydration
// drops records with unparseable dates, so accepting one here would
// lose it on the next startup.
func (s *Store) SaveDailyValue(goalID, date string, value float64, notes string) error {
	if _, err := timeutil.ParseDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.GoalID == goalID && r.Date == date {
			r.Value = value
			r.Notes = notes
			r.UpdatedAt = timeutil.At(s.now())
			s.persist(storage.KeyDailyRecords, s.records)
			return nil
		}
	}
	s.records = append(s.records, goal.NewRecord(goalID, date, value, notes))
	s.persist(storage.KeyDailyRecords, s.records)
	return nil
}

// DailyRecordsByDate returns the records entered for one calendar day.
func (s *Store) DailyRecordsByDate(date string) []*goal.DailyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*goal.DailyRecord{}
	for _, r := range s.records {
		if r.Date == date {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

// GoalProgress computes a goal's aggregate for yearMonth as of now.
// It returns false when the goal does not exist.
func (s *Store) GoalProgress(goalID, yearMonth string) (viewmodel.GoalProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == goalID {
			return viewmodel.Progress(g, s.records, yearMonth, s.now()), true
		}
	}
	return viewmodel.GoalProgress{}, false
}

// MonthProgress computes progress for every goal in yearMonth.
func (s *Store) MonthProgress(yearMonth string) []viewmodel.GoalProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []viewmodel.GoalProgress{}
	now := s.now()
	for _, g := range s.goals {
		if g.YearMonth == yearMonth {
			out = append(out, viewmodel.Progress(g, s.records, yearMonth, now))
		}
	}
	return out
}

func cloneGoals(goals []*goal.Goal) []*goal.Goal {
	out := make([]*goal.Goal, len(goals))
	for i, g := range goals {
		cp := *g
		out[i] = &cp
	}
	return out
}

func cloneRecords(records []*goal.DailyRecord) []*goal.DailyRecord {
	out := make([]*goal.DailyRecord, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out
}
