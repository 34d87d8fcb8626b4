package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/goal"
	"tableflip.dev/planner/pkg/store"
)

func addTrack(topLevel *cobra.Command) {
	so := &options.StorageOptions{}
	ro := &options.RecordOptions{}

	cmd := &cobra.Command{
		Use:   "track <goal-id> <value>",
		Short: "Record a daily value against a monthly goal.",
		Long: "Record a daily value against a monthly goal.\n\n" +
			"A day holds one value per goal; tracking the same day twice updates it.",
		Example: `
planner track 9f2c41aa 12
planner track 9f2c41aa 8 --date="2026-08-30" -n "short session"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a goal id and a value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil || value < 0 {
				return fmt.Errorf("invalid value %q", args[1])
			}

			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)

			g, err := findGoal(s, args[0])
			if err != nil {
				return err
			}
			date, err := ro.DateKey(time.Now())
			if err != nil {
				return err
			}
			if err := s.SaveDailyValue(g.ID, date, value, ro.Notes); err != nil {
				return err
			}
			fmt.Printf("tracked %g %s for %q on %s\n", value, g.Unit, g.Name, date)
			return nil
		},
	}

	options.AddStorageArgs(cmd, so)
	options.AddRecordArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}

// findGoal matches a full id or an unambiguous prefix.
func findGoal(s *store.Store, id string) (*goal.Goal, error) {
	var match *goal.Goal
	for _, g := range s.Goals() {
		if g.ID == id {
			return g, nil
		}
		if strings.HasPrefix(g.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", id)
			}
			match = g
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no goal with id %q", id)
	}
	return match, nil
}
