package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard: totals, streak, weekly progress, goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats := svc.DashboardStats()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBook, "Study Dashboard"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total tasks", stats.Total))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Completed", stats.Completed))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Pending", stats.Pending))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d %s", stats.Streak, ui.IconFire)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("This week", ui.ProgressBar(svc.WeeklyProgress(), 20)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			overdue := svc.Overdue()
			if len(overdue) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconWarn+" Overdue"))
				for _, t := range overdue {
					printTaskLine(cmd, t)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			goals := svc.SortedGoals()
			if len(goals) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTarget+" Goals"))
				for _, g := range goals {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", g.Title, ui.ProgressBar(engine.GoalProgressPercent(g), 16))
				}
			}
			return nil
		},
	}

	return cmd
}
