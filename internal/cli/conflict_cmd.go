package cli

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConflictCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Review due-date conflicts",
	}
	cmd.AddCommand(newConflictListCmd(app), newConflictDismissCmd(app))
	return cmd
}

func newConflictListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conflicts from the latest scheduling pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			conflicts, err := app.Conflicts.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConflicts(conflicts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include dismissed conflicts")

	return cmd
}

func newConflictDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss KEY",
		Short: "Hide a conflict until it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Conflicts.Dismiss(context.Background(), args[0])
		},
	}
}
