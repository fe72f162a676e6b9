package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle task completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTaskID(svc, args[0])
			if err != nil {
				return err
			}

			task, err := svc.ToggleTask(ctx, id)
			if err != nil {
				if task == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			if task.Completed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" completed: "+task.Title))
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d %s", svc.StudyStreak(), ui.IconFire)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconPending+" back to pending: "+task.Title))
			}
			return nil
		},
	}

	return cmd
}
