package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/metrics"
	"github.com/shinji-kodama/docsync/internal/schedule"
)

// NewScheduleCommand creates the cobra command for `docsync schedule`.
//
// The command keeps the process running and repeats the sync on a fixed
// interval, which suits a container or a systemd service without cron.
func NewScheduleCommand() *cobra.Command {
	flags := &syncFlags{}
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Repeat the sync on a fixed interval until interrupted",
		Long: `Run a sync immediately and then once per interval until the process
receives SIGINT or SIGTERM.

Runs never overlap: if a run takes longer than the interval, the next one
starts after it finishes. A failed run is logged and the schedule goes on.
With --metrics-file, the textfile accumulates counters across runs.

Examples:
  docsync schedule --every 15m --remote https://github.com/example/site.git
  DOCSYNC_SCHEDULE_EVERY=1h docsync schedule --metrics-file /var/lib/node_exporter/docsync.prom`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("every") {
				cfg.Schedule.Every = every
			}

			ctx, err := setupLogging(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Get(ctx).Sync() }()

			s := newSyncer(cfg)
			recorder := metrics.NewRecorder()
			return schedule.Run(ctx, cfg.Schedule.Every, func(ctx context.Context) error {
				res, err := syncOnce(ctx, s, recorder, cfg.Metrics.File)
				if err != nil {
					return err
				}
				logger.Info(ctx, "scheduled sync done",
					zap.String("branch", res.Branch), zap.Int("files", len(res.Files)))
				return nil
			})
		},
	}

	addSyncFlags(cmd, flags)
	cmd.Flags().DurationVar(&every, "every", time.Hour, "Interval between two runs (overrides DOCSYNC_SCHEDULE_EVERY)")
	return cmd
}
