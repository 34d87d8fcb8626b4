package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
	"tableflip.dev/planner/pkg/viewmodel"
)

func addGet(topLevel *cobra.Command) {
	so := &options.StorageOptions{}
	fo := &options.FilterOptions{}
	showIDs := false

	cmd := &cobra.Command{
		Use:       "get [tasks|completed|goals|debug]",
		Short:     "Show tasks, completed history, goal progress, or the debug log.",
		ValidArgs: []string{"tasks", "completed", "goals", "debug"},
		Example: `
planner get tasks
planner get tasks --status=in-progress --sort=priority --order=desc
planner get completed
planner get goals
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)
			pp := &printers.PrettyPrint{ShowID: showIDs}

			what := "tasks"
			if len(args) > 0 {
				what = args[0]
			}
			switch what {
			case "tasks":
				// Listing is read-only; the flags shape this one view and
				// never touch the persisted filter settings.
				tasks := viewmodel.VisibleTasks(s.Tasks(), fo.Filter(),
					task.SortOption(fo.SortBy), task.SortOrder(fo.Order))
				pp.TitleWithCount("Tasks", len(tasks))
				pp.Tasks(tasks...)
			case "completed":
				pp.Title("Completed")
				pp.CompletedGroups(s.CompletedTasksByDate()...)
			case "goals":
				month := timeutil.PeriodOf(time.Now())
				pp.Title("Goals " + month)
				pp.GoalProgress(s.MonthProgress(month)...)
			case "debug":
				pp.Title("Debug log")
				pp.DebugLog(s.DebugHistory()...)
			default:
				return fmt.Errorf("unknown collection %q", what)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show entry ids.")
	options.AddStorageArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
