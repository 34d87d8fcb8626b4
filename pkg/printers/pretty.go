// Package printers renders planner collections for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
	"tableflip.dev/planner/pkg/viewmodel"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

// Tasks renders a task table: priority, title, status, progress, dates.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		row := []any{
			priorityColor(t.Priority).Sprint(t.Priority),
			t.Title,
			statusColor(t.Status).Sprint(t.Status),
			fmt.Sprintf("%3d%%", t.Progress),
			t.DueDate.Format(timeutil.DateLayout),
		}
		if pp.ShowID {
			row = append([]any{color.New(color.FgHiYellow, color.Faint).Sprint(shortID(t.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// CompletedGroups renders completed tasks grouped by day.
func (pp *PrettyPrint) CompletedGroups(groups ...viewmodel.DayGroup) {
	if len(groups) == 0 {
		pp.none()
		return
	}
	for _, g := range groups {
		pp.TitleWithCount(g.Date, len(g.Tasks))
		pp.Tasks(g.Tasks...)
	}
}

// GoalProgress renders per-goal monthly progress.
func (pp *PrettyPrint) GoalProgress(items ...viewmodel.GoalProgress) {
	if len(items) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, p := range items {
		pct := color.New(color.FgGreen)
		if p.IsOverdue {
			pct = color.New(color.FgRed)
		}
		tbl.AddRow(
			p.GoalName,
			fmt.Sprintf("%g/%g %s", p.CurrentValue, p.TargetValue, p.Unit),
			pct.Sprintf("%.0f%%", p.ProgressPercentage),
			fmt.Sprintf("%d days left", p.RemainingDays),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// DebugLog renders the diagnostic log, oldest first.
func (pp *PrettyPrint) DebugLog(entries ...store.DebugEntry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		tbl.AddRow(
			color.New(color.Faint).Sprint(e.Timestamp.Format("15:04:05")),
			severityColor(e.Severity).Sprint(e.Severity),
			e.Category,
			e.Title,
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func priorityColor(p task.Priority) *color.Color {
	switch p {
	case task.PriorityHigh:
		return color.New(color.FgRed)
	case task.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func statusColor(s task.Status) *color.Color {
	switch s {
	case task.StatusCompleted:
		return color.New(color.FgGreen)
	case task.StatusInProgress:
		return color.New(color.FgCyan)
	case task.StatusOnHold:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func severityColor(s store.Severity) *color.Color {
	switch s {
	case store.SeverityError:
		return color.New(color.FgRed)
	case store.SeverityWarning:
		return color.New(color.FgYellow)
	case store.SeveritySuccess:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}
