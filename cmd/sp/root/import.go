package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a previously exported snapshot",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ImportSnapshot(ctx, data); err != nil {
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			stats := svc.DashboardStats()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSave+" snapshot imported"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Tasks", stats.Total))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Goals", len(svc.Goals())))
			return nil
		},
	}

	return cmd
}
