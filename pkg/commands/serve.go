package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/server"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
	"tableflip.dev/planner/pkg/video"
)

func addServe(topLevel *cobra.Command) {
	so := &options.StorageOptions{}
	listen := ""
	refreshCron := "*/15 * * * *"
	window := timeutil.DefaultWindow

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planner API server.",
		Long: "Run the planner API server: the health probe, the calendar proxy\n" +
			"that keeps provider credentials server-side, and the video search\n" +
			"endpoints. Calendar events refresh on a cron schedule.",
		Example: `
planner serve
planner serve --listen=":9090" --window=2w
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			windowDur, _, err := timeutil.ParseWindow(window)
			if err != nil {
				return err
			}

			p, err := so.Persistence()
			if err != nil {
				return err
			}
			s := store.New(p)
			logger := log.New(os.Stderr, "planner: ", log.LstdFlags)

			srv := server.New(server.Options{
				Addr:     cfg.ListenAddr,
				Store:    s,
				Calendar: calendar.NewClient(cfg.CalendarOptions()),
				Video:    video.NewClient(cfg.VideoOptions()),
				Logger:   logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := cron.New()
			if _, err := c.AddFunc(refreshCron, func() {
				if err := srv.RefreshEvents(ctx, windowDur); err != nil {
					logger.Printf("scheduled refresh: %v", err)
				}
			}); err != nil {
				return err
			}
			c.Start()
			defer c.Stop()

			// Surface external storage writes in the debug log so edits
			// made by another process are visible in the app.
			if events, err := p.Watch(ctx); err == nil {
				go func() {
					for ev := range events {
						s.AddDebug("storage", "external change to "+ev.Key, nil, store.SeverityInfo)
					}
				}()
			}

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address, overrides config.")
	cmd.Flags().StringVar(&refreshCron, "refresh-cron", refreshCron,
		"Cron schedule for calendar event refresh.")
	cmd.Flags().StringVar(&window, "window", window,
		"How far ahead to fetch events, example: 6w, 10d, 48h.")
	options.AddStorageArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
