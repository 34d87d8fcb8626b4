package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// TaskOptions captures the fields of a new task.
type TaskOptions struct {
	Description string
	Priority    string
	Label       string
	StartString string
	DueString   string
}

// AddTaskArgs wires task creation flags.
func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "", "Task description.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", string(task.PriorityMedium),
		"Task priority. One of 'high', 'medium', 'low'.")
	cmd.Flags().StringVarP(&o.Label, "label", "l", "", "Label id.")
	cmd.Flags().StringVar(&o.StartString, "start", "",
		`Start date, example: --start="2026-02-28". Defaults to today.`)
	cmd.Flags().StringVar(&o.DueString, "due", "",
		`Due date, example: --due="2026-03-14". Defaults to the start date.`)
}

// Dates resolves the start and due dates.
func (o *TaskOptions) Dates(now time.Time) (start, due time.Time, err error) {
	start = timeutil.StartOfDay(now)
	if o.StartString != "" {
		start, err = timeutil.ParseDate(o.StartString)
		if err != nil {
			return start, due, err
		}
	}
	due = start
	if o.DueString != "" {
		due, err = timeutil.ParseDate(o.DueString)
	}
	return start, due, err
}

// FilterOptions captures list filtering and sorting flags.
type FilterOptions struct {
	Status   string
	Priority string
	Label    string
	Search   string
	SortBy   string
	Order    string
}

// AddFilterArgs wires task list filter flags.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Status, "status", "", "Filter by status.")
	cmd.Flags().StringVar(&o.Priority, "priority", "", "Filter by priority.")
	cmd.Flags().StringVarP(&o.Label, "label", "l", "", "Filter by label id.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "", "Filter by title or description substring.")
	cmd.Flags().StringVar(&o.SortBy, "sort", string(task.SortByDueDate),
		"Sort key. One of 'dueDate', 'createdAt', 'priority', 'title'.")
	cmd.Flags().StringVar(&o.Order, "order", string(task.SortAscending),
		"Sort order. One of 'asc', 'desc'.")
}

// Filter shapes the flags into a task filter.
func (o *FilterOptions) Filter() task.Filter {
	return task.Filter{
		Status:   task.Status(o.Status),
		Priority: task.Priority(o.Priority),
		Label:    o.Label,
		Search:   o.Search,
	}
}
