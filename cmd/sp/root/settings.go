package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var theme string
	var notifications bool
	var weekStart int

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			settings := svc.Settings()
			changed := false
			if cmd.Flags().Changed("theme") {
				settings.Theme = theme
				changed = true
			}
			if cmd.Flags().Changed("notifications") {
				settings.Notifications = notifications
				changed = true
			}
			if cmd.Flags().Changed("week-start") {
				if weekStart < 0 || weekStart > 6 {
					return fmt.Errorf("week-start must be 0 (Sunday) through 6 (Saturday), got %d", weekStart)
				}
				settings.WeekStartsOn = weekStart
				changed = true
			}

			out := cmd.OutOrStdout()
			if changed {
				if err := svc.UpdateSettings(ctx, settings); err != nil {
					if err := reportSaveError(out, err); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Settings updated"))
			} else {
				fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Settings"))
			}
			fmt.Fprintln(out, ui.LabelValue("Theme", settings.Theme))
			fmt.Fprintln(out, ui.LabelValue("Notifications", settings.Notifications))
			fmt.Fprintln(out, ui.LabelValue("Week starts on", weekdayName(settings.WeekStartsOn)))
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Color theme name")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Enable notifications")
	cmd.Flags().IntVar(&weekStart, "week-start", 1, "First day of the week (0=Sunday..6=Saturday)")

	return cmd
}

func weekdayName(day int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if day < 0 || day >= len(names) {
		return names[1]
	}
	return names[day]
}
