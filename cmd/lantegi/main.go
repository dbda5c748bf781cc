package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imirazoki/lantegi/internal/cli"
	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.lantegi/lantegi.db
	dbPath := os.Getenv("LANTEGI_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".lantegi", "lantegi.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	rosterRepo := repository.NewSQLiteRosterRepo(database)
	overrideRepo := repository.NewSQLiteOverrideRepo(database)
	vacationRepo := repository.NewSQLiteVacationRepo(database)
	conflictRepo := repository.NewSQLiteConflictRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Schedule:  service.NewScheduleService(projectRepo, rosterRepo, overrideRepo, vacationRepo, conflictRepo, observer),
		Projects:  service.NewProjectService(projectRepo),
		Workers:   service.NewWorkerService(rosterRepo, overrideRepo, uow, observer),
		Vacations: service.NewVacationService(vacationRepo, rosterRepo),
		Conflicts: service.NewConflictService(conflictRepo),
	}

	// Detect interactive terminal for the calendar viewer and form wizards.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
