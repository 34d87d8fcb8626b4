package store

import (
	"tableflip.dev/planner/pkg/storage"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// SetTasks replaces the whole task collection.
func (s *Store) SetTasks(tasks []*task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(tasks)
	s.persist(storage.KeyTasks, s.tasks)
}

// AddTask appends a task.
func (s *Store) AddTask(t *task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t.Clone())
	s.persist(storage.KeyTasks, s.tasks)
}

// UpdateTask replaces the entry whose id matches t.ID with t exactly.
// No other entry is touched; an unknown id is a no-op.
func (s *Store) UpdateTask(t *task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.tasks {
		if existing.ID == t.ID {
			s.tasks[i] = t.Clone()
			s.persist(storage.KeyTasks, s.tasks)
			return
		}
	}
}

// DeleteTask removes the task with the given id.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persist(storage.KeyTasks, s.tasks)
}

// SetTaskStatus transitions a task's status, maintaining the completion
// instant: set when the task becomes completed, cleared when it leaves
// completed.
func (s *Store) SetTaskStatus(id string, status task.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.tasks {
		if existing.ID != id {
			continue
		}
		next := existing.Clone()
		wasCompleted := next.Status == task.StatusCompleted
		next.Status = status
		next.UpdatedAt = timeutil.At(s.now())
		switch {
		case status == task.StatusCompleted && !wasCompleted:
			at := timeutil.At(s.now())
			next.CompletedAt = &at
			next.Progress = 100
		case status != task.StatusCompleted:
			next.CompletedAt = nil
		}
		s.tasks[i] = next
		s.persist(storage.KeyTasks, s.tasks)
		return
	}
}

// Labels returns a copy of the label collection.
func (s *Store) Labels() []*task.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLabels(s.labels)
}

// SetLabels replaces the whole label collection.
func (s *Store) SetLabels(labels []*task.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = cloneLabels(labels)
	s.persist(storage.KeyLabels, s.labels)
}

// AddLabel appends a label.
func (s *Store) AddLabel(l *task.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.labels = append(s.labels, &cp)
	s.persist(storage.KeyLabels, s.labels)
}

// UpdateLabel replaces the label whose id matches l.ID.
func (s *Store) UpdateLabel(l *task.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.labels {
		if existing.ID == l.ID {
			cp := *l
			s.labels[i] = &cp
			s.persist(storage.KeyLabels, s.labels)
			return
		}
	}
}

// DeleteLabel removes a label and resets every task referencing it to
// unlabeled, so no dangling reference survives.
func (s *Store) DeleteLabel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.labels[:0]
	for _, l := range s.labels {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.labels = kept

	cascaded := false
	for _, t := range s.tasks {
		if t.Label == id {
			t.Label = ""
			cascaded = true
		}
	}
	s.persist(storage.KeyLabels, s.labels)
	if cascaded {
		s.persist(storage.KeyTasks, s.tasks)
	}
}

// LabelByID looks a label up, returning nil when absent.
func (s *Store) LabelByID(id string) *task.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.labels {
		if l.ID == id {
			cp := *l
			return &cp
		}
	}
	return nil
}

func cloneTasks(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func cloneLabels(labels []*task.Label) []*task.Label {
	out := make([]*task.Label, len(labels))
	for i, l := range labels {
		cp := *l
		out[i] = &cp
	}
	return out
}
