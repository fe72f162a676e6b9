package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title string
	var subject string
	var due string
	var at string
	var priority string
	var desc string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task (only the given flags are changed)",
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

			var patch engine.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("subject") {
				patch.Subject = &subject
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("at") {
				patch.DueTime = &at
			}
			if cmd.Flags().Changed("priority") {
				p := engine.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}

			task, err := svc.UpdateTask(ctx, id, patch)
			if err != nil {
				if task == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Task updated"))
			printTaskLine(cmd, *task)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "New subject")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&at, "at", "t", "", "New due time (HH:MM, empty for all day)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority (high|medium|low)")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")

	return cmd
}
