package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today [date]",
		Short: "Daily timeline (timed tasks first, all-day last)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) == 1 {
				parsed, err := time.ParseInLocation(engine.DateLayout, args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
				}
				date = parsed
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.DailyTimeline(date)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCalendar, "Timeline for "+engine.DateKey(date)))
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no tasks due"))
				return nil
			}
			for _, t := range tasks {
				slot := "all day"
				if t.DueTime != "" {
					slot = t.DueTime
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s %s %s\n",
					ui.Key.Render(fmt.Sprintf("%-7s", slot)),
					ui.DoneIcon(t.Completed),
					t.Title,
					ui.Dim.Render("["+t.Subject+"]"),
					ui.PriorityText(t.Priority),
				)
			}
			return nil
		},
	}

	return cmd
}
