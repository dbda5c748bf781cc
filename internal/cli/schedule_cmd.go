package cli

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run a scheduling pass and print the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			run := app.Schedule.Plan
			if preview {
				run = app.Schedule.Preview
			}
			view, err := run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(view.Calendar))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConflicts(view.Conflicts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Compute the calendar without persisting anything")

	return cmd
}
