package store

import (
	"time"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/video"
	"tableflip.dev/planner/pkg/viewmodel"
)

// FilteredTasks returns the todo list as displayed: the sidebar label
// narrows the active filter, completed tasks are always excluded, and
// the current sort applies.
func (s *Store) FilteredTasks() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filters
	if s.selectedLabel != "" {
		f.Label = s.selectedLabel
	}
	return cloneTasks(viewmodel.VisibleTasks(s.tasks, f, s.sortBy, s.sortOrder))
}

// CompletedTasks returns every task with a recorded completion instant.
func (s *Store) CompletedTasks() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(viewmodel.CompletedTasks(s.tasks))
}

// CompletedTasksByDate groups completed tasks by completion day, most
// recent day first.
func (s *Store) CompletedTasksByDate() []viewmodel.DayGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := viewmodel.CompletedByDate(s.tasks)
	for i := range groups {
		groups[i].Tasks = cloneTasks(groups[i].Tasks)
	}
	return groups
}

// DayBucket collects the tasks and selected-calendar events touching
// one calendar day.
func (s *Store) DayBucket(day time.Time) viewmodel.DayBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selected := map[string]bool{}
	for _, c := range s.calendars {
		if c.Selected {
			selected[c.ID] = true
		}
	}
	// Events tagged with a deselected calendar are hidden, including
	// when every calendar is deselected. Untagged events stay visible.
	shown := make([]*calendar.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.CalendarID == "" || selected[e.CalendarID] {
			shown = append(shown, e)
		}
	}
	bucket := viewmodel.BucketForDay(s.tasks, shown, day)
	bucket.Tasks = cloneTasks(bucket.Tasks)
	cloned := make([]*calendar.Event, len(bucket.Events))
	for i, e := range bucket.Events {
		cp := *e
		cloned[i] = &cp
	}
	bucket.Events = cloned
	return bucket
}

// Favorites returns the saved video list.
func (s *Store) Favorites() []*video.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*video.Favorite, len(s.favorites))
	for i, f := range s.favorites {
		cp := *f
		out[i] = &cp
	}
	return out
}

// AddFavorite saves a video; saving the same video twice is a no-op.
func (s *Store) AddFavorite(f *video.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.favorites {
		if existing.VideoID == f.VideoID {
			return
		}
	}
	cp := *f
	s.favorites = append(s.favorites, &cp)
	s.persist(storage.KeyFavorites, s.favorites)
}

// RemoveFavorite removes a saved video by its video id.
func (s *Store) RemoveFavorite(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.VideoID != videoID {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	s.persist(storage.KeyFavorites, s.favorites)
}
