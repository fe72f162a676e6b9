package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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

			if err := svc.DeleteTask(ctx, id); err != nil {
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconTrash+" task removed"))
			return nil
		},
	}

	return cmd
}
