package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a backup snapshot (skipped when one is < 24h old)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if force {
				if err := svc.Backup(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSave+" backup written"))
				return nil
			}

			taken, err := svc.AutoBackup(ctx)
			if err != nil {
				return err
			}
			if taken {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSave+" backup written"))
			} else {
				last := svc.LastBackupAt(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("recent backup exists (%s), use --force to overwrite", last.Local().Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Back up even if a recent backup exists")

	return cmd
}
