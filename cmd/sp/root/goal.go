package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/engine"
	"studyplan/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage study goals",
	}

	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalProgressCmd(),
		newGoalEditCmd(),
		newGoalRmCmd(),
	)

	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var category string
	var targetDate string
	var target float64
	var unit string
	var desc string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
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

			goal, err := svc.CreateGoal(ctx, engine.CreateGoalInput{
				Title:       args[0],
				Category:    category,
				Description: desc,
				TargetDate:  targetDate,
				TargetValue: target,
				Unit:        unit,
			})
			if err != nil {
				if goal == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTarget, "Goal added"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", goal.ID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", goal.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Target", fmt.Sprintf("%g %s by %s", goal.TargetValue, goal.Unit, goal.TargetDate)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category label")
	cmd.Flags().StringVarP(&targetDate, "by", "b", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().Float64VarP(&target, "target", "n", 0, "Target value (must be positive)")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit label (e.g. hours, chapters)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goals := svc.SortedGoals()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTarget, "Goals"))
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no goals yet — add one with 'sp goal add'"))
				return nil
			}
			for _, g := range goals {
				days := engine.DaysRemaining(g, time.Now())
				var deadline string
				switch {
				case g.Completed:
					deadline = ui.Good.Render("done")
				case days < 0:
					deadline = ui.Bad.Render(fmt.Sprintf("%d days overdue", -days))
				case days == 0:
					deadline = ui.Warn.Render("due today")
				default:
					deadline = ui.Muted.Render(fmt.Sprintf("%d days left", days))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
					ui.DoneIcon(g.Completed),
					ui.Muted.Render(shortID(g.ID)),
					g.Title,
					ui.Dim.Render("["+g.Category+"]"),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "   %s %s %s\n",
					ui.ProgressBar(engine.GoalProgressPercent(g), 20),
					ui.Muted.Render(fmt.Sprintf("%g/%g %s", g.CurrentValue, g.TargetValue, g.Unit)),
					deadline,
				)
			}
			return nil
		},
	}

	return cmd
}

func newGoalProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <id> <value>",
		Short: "Set a goal's current value",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and value are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
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

			id, err := resolveGoalID(svc, args[0])
			if err != nil {
				return err
			}
			value, _ := strconv.ParseFloat(args[1], 64)

			goal, justCompleted, err := svc.UpdateGoalProgress(ctx, id, value)
			if err != nil {
				if goal == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(goal.Title, ui.ProgressBar(engine.GoalProgressPercent(*goal), 20)))
			if justCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconParty+" goal completed!"))
			}
			return nil
		},
	}

	return cmd
}

func newGoalEditCmd() *cobra.Command {
	var title string
	var category string
	var targetDate string
	var target float64
	var unit string
	var desc string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a goal (only the given flags are changed)",
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

			id, err := resolveGoalID(svc, args[0])
			if err != nil {
				return err
			}

			var patch engine.GoalPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("by") {
				patch.TargetDate = &targetDate
			}
			if cmd.Flags().Changed("target") {
				patch.TargetValue = &target
			}
			if cmd.Flags().Changed("unit") {
				patch.Unit = &unit
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}

			goal, err := svc.UpdateGoal(ctx, id, patch)
			if err != nil {
				if goal == nil {
					return err
				}
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Goal updated"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Title", goal.Title))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Target", fmt.Sprintf("%g %s by %s", goal.TargetValue, goal.Unit, goal.TargetDate)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&targetDate, "by", "b", "", "New target date (YYYY-MM-DD)")
	cmd.Flags().Float64VarP(&target, "target", "n", 0, "New target value")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "New unit label")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")

	return cmd
}

func newGoalRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
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

			id, err := resolveGoalID(svc, args[0])
			if err != nil {
				return err
			}

			if err := svc.DeleteGoal(ctx, id); err != nil {
				if err := reportSaveError(cmd.OutOrStdout(), err); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconTrash+" goal removed"))
			return nil
		},
	}

	return cmd
}
