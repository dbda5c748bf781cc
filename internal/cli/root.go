// Package cli wires the lantegi command tree. Commands stay thin: they
// parse flags, call a service and hand the result to the formatter.
package cli

import (
	"strings"

	"github.com/imirazoki/lantegi/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule  service.ScheduleService
	Projects  service.ProjectService
	Workers   service.WorkerService
	Vacations service.VacationService
	Conflicts service.ConflictService

	// IsInteractive reports whether stdin is a terminal; interactive
	// surfaces (calendar viewer, vacation wizard) fall back to plain
	// output when it is not.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lantegi" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lantegi",
		Short: "Workshop production planner",
	}

	// Accept underscores in flag names, e.g. --due_confirmed.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newScheduleCmd(app),
		newCalendarCmd(app),
		newProjectCmd(app),
		newWorkerCmd(app),
		newVacationCmd(app),
		newManualCmd(app),
		newConflictCmd(app),
	)

	return root
}
