package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/storage"
	"studyplan/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (incomplete first, due date, priority)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.SortedTasks()
			if !all {
				var pending []storage.Task
				for _, t := range tasks {
					if !t.Completed {
						pending = append(pending, t)
					}
				}
				tasks = pending
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Tasks"))
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("nothing here — add one with 'sp add'"))
				return nil
			}
			for _, t := range tasks {
				printTaskLine(cmd, t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")

	return cmd
}

func printTaskLine(cmd *cobra.Command, t storage.Task) {
	due := t.DueDate
	if t.DueTime != "" {
		due += " " + t.DueTime
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s %s\n",
		ui.DoneIcon(t.Completed),
		ui.Muted.Render(shortID(t.ID)),
		t.Title,
		ui.Dim.Render("["+t.Subject+"]"),
		ui.Muted.Render(due),
		ui.PriorityText(t.Priority),
	)
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}
