package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage manufacturing projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectSetPhaseCmd(app),
		newProjectAssignCmd(app),
		newProjectBlockCmd(app, true),
		newProjectBlockCmd(app, false),
		newProjectFreezeCmd(app),
		newProjectUnfreezeCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, client, start, due, color string
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:         name,
				Client:       client,
				Planned:      start != "",
				StartDate:    start,
				DueDate:      due,
				DueConfirmed: confirmed,
				Color:        color,
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proyecto %s creado (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&start, "start", "", "Start day (YYYY-MM-DD); empty means unplanned")
	cmd.Flags().StringVar(&due, "due", "", "Due day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&confirmed, "due-confirmed", false, "Client confirmed the due date")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No hay proyectos.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(summaries))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show project details and phase start days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}
			starts, err := app.Schedule.PhaseStarts(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(p, starts[p.ID]))
			return nil
		},
	}
}

// parseSegments parses a comma-separated hour list like "8,4,4".
func parseSegments(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	segments := make([]float64, 0, len(parts))
	for _, part := range parts {
		h, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid segment hours %q", part)
		}
		segments = append(segments, h)
	}
	return segments, nil
}

func newProjectSetPhaseCmd(app *App) *cobra.Command {
	var hours float64
	var segments, until string

	cmd := &cobra.Command{
		Use:   "set-phase PROJECT PHASE",
		Short: "Set a phase's workload (hours, segment list, or target day)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req domain.Requirement
			switch {
			case segments != "":
				hs, err := parseSegments(segments)
				if err != nil {
					return err
				}
				req = domain.SegmentsReq(hs...)
			case until != "":
				req = domain.DateRangeReq(until)
			case hours > 0:
				req = domain.HoursReq(hours)
			}

			if err := app.Projects.SetPhase(context.Background(), args[0], args[1], req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fase %s actualizada\n", args[1])
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Total hours (0 removes the phase)")
	cmd.Flags().StringVar(&segments, "segments", "", "Comma-separated segment hours, e.g. 8,4")
	cmd.Flags().StringVar(&until, "until", "", "Procurement target day (YYYY-MM-DD)")

	return cmd
}

func newProjectAssignCmd(app *App) *cobra.Command {
	var part int

	cmd := &cobra.Command{
		Use:   "assign PROJECT PHASE WORKER",
		Short: "Assign a worker to a phase or one of its segments",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var partRef *int
			if cmd.Flags().Changed("part") {
				idx := part - 1
				if idx < 0 {
					return fmt.Errorf("segment numbers start at 1")
				}
				partRef = &idx
			}
			if err := app.Projects.Assign(context.Background(), args[0], args[1], args[2], partRef); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s asignado a %s\n", args[2], args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&part, "part", 0, "Segment number (1-based); omit to assign the whole phase")

	return cmd
}

func newProjectBlockCmd(app *App, blocked bool) *cobra.Command {
	use, short := "block PROJECT", "Mark a project as blocked"
	if !blocked {
		use, short = "unblock PROJECT", "Clear a project's blocked state"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Projects.SetBlocked(context.Background(), args[0], blocked)
		},
	}
}

func newProjectFreezeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "freeze PROJECT PHASE",
		Short: "Lock a phase's current placement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Freeze(ctx, p.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fase %s congelada\n", args[1])
			return nil
		},
	}
}

func newProjectUnfreezeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unfreeze PROJECT PHASE",
		Short: "Release a frozen phase and replay the schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedule.Unfreeze(ctx, p.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fase %s descongelada\n", args[1])
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proyecto %s eliminado\n", args[0])
			return nil
		},
	}
}
