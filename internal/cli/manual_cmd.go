package cli

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newManualCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Manage hand-placed calendar entries",
	}
	cmd.AddCommand(newManualListCmd(app), newManualAddCmd(app), newManualRemoveCmd(app))
	return cmd
}

func newManualListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hand-placed entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Workers.ListManual(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatManualList(entries))
			return nil
		},
	}
}

func newManualAddCmd(app *App) *cobra.Command {
	var worker, day string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add NOTE",
		Short: "Park a block of hours on the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Workers.AddManual(context.Background(), worker, day, hours, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entrada manual creada (%s)\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&worker, "worker", "", "Worker row; empty parks on the unplanned row")
	cmd.Flags().StringVar(&day, "day", "", "Day (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Block hours")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newManualRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a hand-placed entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Workers.DeleteManual(context.Background(), args[0])
		},
	}
}
