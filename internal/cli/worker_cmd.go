package cli

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage the workshop roster",
	}

	cmd.AddCommand(
		newWorkerListCmd(app),
		newWorkerAddCmd(app),
		newWorkerRenameCmd(app),
		newWorkerActiveCmd(app, false),
		newWorkerActiveCmd(app, true),
		newWorkerOrderCmd(app),
		newWorkerLimitCmd(app),
		newWorkerCapCmd(app),
		newWorkerNoteCmd(app),
	)

	return cmd
}

func newWorkerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.Workers.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkerList(views))
			return nil
		},
	}
}

func newWorkerAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a worker to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workers.Add(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trabajador %s añadido\n", args[0])
			return nil
		},
	}
}

func newWorkerRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a worker everywhere",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workers.Rename(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ahora se llama %s\n", args[0], args[1])
			return nil
		},
	}
}

func newWorkerActiveCmd(app *App, active bool) *cobra.Command {
	use, short := "deactivate NAME", "Deactivate a worker (keeps history, stops new placements)"
	if active {
		use, short = "activate NAME", "Reactivate a worker"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Workers.SetActive(context.Background(), args[0], active)
		},
	}
}

func newWorkerOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "order NAME...",
		Short: "Pin the roster display order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Workers.SetOrder(context.Background(), args)
		},
	}
}

func newWorkerLimitCmd(app *App) *cobra.Command {
	var hours float64
	var day string
	var clear bool

	cmd := &cobra.Command{
		Use:   "limit NAME",
		Short: "Set or clear a worker's daily hour limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			name := args[0]

			if clear {
				return app.Workers.ClearFlatLimit(ctx, name)
			}
			if day != "" {
				return app.Workers.SetDayLimit(ctx, name, day, hours)
			}
			return app.Workers.SetFlatLimit(ctx, name, hours)
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Daily hour limit (1-12)")
	cmd.Flags().StringVar(&day, "day", "", "Apply the limit to a single day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the worker's flat limit")

	return cmd
}

func newWorkerCapCmd(app *App) *cobra.Command {
	var hours float64

	cmd := &cobra.Command{
		Use:   "cap DAY",
		Short: "Cap every worker's hours on one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Workers.SetGlobalCap(context.Background(), args[0], hours)
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Hour cap for the day (1-12)")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newWorkerNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note NAME TEXT",
		Short: "Attach a note to a worker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Workers.SetNote(context.Background(), args[0], args[1])
		},
	}
}
