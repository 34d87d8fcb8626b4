package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
)

func addComplete(topLevel *cobra.Command) {
	so := &options.StorageOptions{}

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task completed.",
		Example: `
planner complete 171dff69
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)

			t, err := findTask(s, args[0])
			if err != nil {
				return err
			}
			s.SetTaskStatus(t.ID, task.StatusCompleted)
			fmt.Printf("completed %q\n", t.Title)
			return nil
		},
	}

	options.AddStorageArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

// findTask matches a full id or an unambiguous prefix.
func findTask(s *store.Store, id string) (*task.Task, error) {
	var match *task.Task
	for _, t := range s.Tasks() {
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", id)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no task with id %q", id)
	}
	return match, nil
}
