package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Browse the planned calendar week by week",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Schedule.Preview(context.Background())
			if err != nil {
				return err
			}

			// Without a terminal, print every week and exit.
			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(view.Calendar))
				return nil
			}

			m := newCalendarModel(view.Calendar, len(view.Conflicts))
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
