package commands

import (
	"github.com/spf13/cobra"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Personal planning on the command line: tasks, monthly goals, and calendars.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addComplete(topLevel)
	addTrack(topLevel)
	addVersion(topLevel)
}
