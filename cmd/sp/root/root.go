package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyplan/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sp",
	Short:         "Studyplan — local-first study task & goal tracker",
	Long:          "Studyplan tracks study tasks and measurable goals in a local database,\nwith a dashboard, daily timeline and completion streaks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newTodayCmd(),
		newDoneCmd(),
		newRmCmd(),
		newEditCmd(),
		newGoalCmd(),
		newStatusCmd(),
		newSettingsCmd(),
		newExportCmd(),
		newImportCmd(),
		newBackupCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
