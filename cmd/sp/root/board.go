package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studyplan/internal/config"
	"studyplan/internal/schedule"
	"studyplan/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Session timer: overdue check + auto-backup, once per
			// interval until the board closes.
			sched := schedule.New(time.Local)
			_, err = sched.Every(cfg.CheckInterval, func() {
				if overdue := svc.Overdue(); len(overdue) > 0 {
					zap.L().Info("overdue tasks", zap.Int("count", len(overdue)))
				}
				taken, err := svc.AutoBackup(ctx)
				if err != nil {
					zap.L().Warn("auto backup failed", zap.Error(err))
				} else if taken {
					zap.L().Info("auto backup written")
				}
			})
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			return tui.RunBoard(ctx, svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
