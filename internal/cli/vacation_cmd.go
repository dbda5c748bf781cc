package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVacationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacation",
		Short: "Manage worker vacations",
	}
	cmd.AddCommand(
		newVacationListCmd(app),
		newVacationAddCmd(app),
		newVacationRemoveCmd(app),
	)
	return cmd
}

func newVacationListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vacations",
		RunE: func(cmd *cobra.Command, args []string) error {
			vacations, err := app.Vacations.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVacationList(vacations))
			return nil
		},
	}
}

func newVacationAddCmd(app *App) *cobra.Command {
	var worker, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vacation range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// With no flags on an interactive terminal, collect the range
			// through the form wizard.
			if worker == "" && app.interactive() {
				if err := runVacationWizard(ctx, app, &worker, &start, &end); err != nil {
					return err
				}
			}

			v, err := app.Vacations.Add(ctx, worker, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vacaciones de %s: %s a %s\n", v.Worker, v.Start, v.End)
			return nil
		},
	}

	cmd.Flags().StringVar(&worker, "worker", "", "Worker name")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")

	return cmd
}

func newVacationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a vacation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Vacations.Delete(context.Background(), args[0])
		},
	}
}

// lantegiHuhTheme restyles huh forms with the formatter palette.
func lantegiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

func validateDay(s string) error {
	if _, ok := calendar.ParseDay(s); !ok {
		return fmt.Errorf("fecha no válida")
	}
	return nil
}

// runVacationWizard collects a vacation range interactively.
func runVacationWizard(ctx context.Context, app *App, worker, start, end *string) error {
	views, err := app.Workers.List(ctx)
	if err != nil {
		return err
	}
	options := make([]huh.Option[string], 0, len(views))
	for _, v := range views {
		if !v.Active {
			continue
		}
		options = append(options, huh.NewOption(v.Name, v.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Quién?").
				Options(options...).
				Value(worker),
			huh.NewInput().
				Title("Primer día").
				Placeholder("2026-08-03").
				Validate(validateDay).
				Value(start),
			huh.NewInput().
				Title("Último día").
				Placeholder("2026-08-14").
				Validate(validateDay).
				Value(end),
		),
	).WithTheme(lantegiHuhTheme()).WithShowHelp(false)

	return form.Run()
}
