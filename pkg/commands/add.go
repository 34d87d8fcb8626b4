package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.StorageOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task or a monthly goal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddTask(cmd, so)
	addAddGoal(cmd, so)
	options.AddStorageArgs(cmd, so)

	topLevel.AddCommand(cmd)
}

func addAddTask(parent *cobra.Command, so *options.StorageOptions) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "task <title>",
		Short: "Add a task.",
		Example: `
planner add task "write quarterly report" -p high --due="2026-03-14"
planner add task "walk the dog" -l 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)

			start, due, err := to.Dates(time.Now())
			if err != nil {
				return err
			}
			t := task.New(strings.Join(args, " "), to.Description,
				task.Priority(to.Priority), to.Label, start, due)
			if err := t.Validate(); err != nil {
				return err
			}
			s.AddTask(t)
			fmt.Printf("added task %s\n", t.ID)
			return nil
		},
	}

	options.AddTaskArgs(cmd, to)
	parent.AddCommand(cmd)
}

func addAddGoal(parent *cobra.Command, so *options.StorageOptions) {
	g := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "goal <name>",
		Short: "Add a monthly goal.",
		Example: `
planner add goal "read pages" --target=300 -u pages
planner add goal "running" -t habit --target=100 -u km -m 2026-10
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)

			gl := goal.New(strings.Join(args, " "), goal.Type(g.Type),
				g.Target, g.Unit, g.YearMonth(time.Now()))
			if err := gl.Validate(); err != nil {
				return err
			}
			s.AddGoal(gl)
			fmt.Printf("added goal %s\n", gl.ID)
			return nil
		},
	}

	options.AddGoalArgs(cmd, g)
	parent.AddCommand(cmd)
}
