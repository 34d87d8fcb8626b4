// Package viewmodel computes the planner's derived views as pure
// functions over the store's collections: filtered task lists, completed
// groupings, goal progress, calendar-day buckets, and Gantt bar
// positions. Nothing here is cached or persisted.
package viewmodel

import (
	"sort"
	"strings"

	"tableflip.dev/planner/pkg/task"
)

// VisibleTasks returns the tasks matching every active filter predicate,
// sorted by the requested key. Completed tasks are always excluded; they
// surface only through CompletedByDate. Ties break on task id so the
// order is deterministic.
func VisibleTasks(tasks []*task.Task, f task.Filter, sortBy task.SortOption, order task.SortOrder) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	search := strings.ToLower(f.Search)
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			continue
		}
		if f.Label != "" && t.Label != f.Label {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, sortBy, order)
	return out
}

func sortTasks(tasks []*task.Task, sortBy task.SortOption, order task.SortOrder) {
	less := comparator(sortBy)
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if order == task.SortDescending {
			a, b = b, a
		}
		switch less(a, b) {
		case -1:
			return true
		case 1:
			return false
		}
		return a.ID < b.ID
	})
}

// comparator returns a three-way compare for the sort key.
func comparator(sortBy task.SortOption) func(a, b *task.Task) int {
	switch sortBy {
	case task.SortByCreatedAt:
		return func(a, b *task.Task) int {
			return compareTimes(a.CreatedAt.Time, b.CreatedAt.Time)
		}
	case task.SortByPriority:
		// High priority sorts first in ascending order.
		return func(a, b *task.Task) int {
			switch {
			case a.Priority.Rank() > b.Priority.Rank():
				return -1
			case a.Priority.Rank() < b.Priority.Rank():
				return 1
			}
			return 0
		}
	case task.SortByTitle:
		return func(a, b *task.Task) int {
			return strings.Compare(a.Title, b.Title)
		}
	default: // dueDate
		return func(a, b *task.Task) int {
			return compareTimes(a.DueDate.Time, b.DueDate.Time)
		}
	}
}
