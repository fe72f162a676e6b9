package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newAddCmd() *cobra.Command {
	var subject string
	var due string
	var at string
	var priority string
	var desc string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a study task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			if due == "" {
				due = time.Now().Format(engine.DateLayout)
			}

			task, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:       args[0],
				Subject:     subject,
				Description: desc,
				DueDate:     due,
				DueTime:     at,
				Priority:    engine.Priority(priority),
			})
			if err != nil {
				if task == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPlus, "Task added"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", task.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", task.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Subject", task.Subject))
			dueStr := task.DueDate
			if task.DueTime != "" {
				dueStr += " " + task.DueTime
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Due", dueStr))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Priority", ui.PriorityText(task.Priority)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject / category label")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&at, "at", "t", "", "Due time (HH:MM, default all day)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (high|medium|low)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")

	return cmd
}
