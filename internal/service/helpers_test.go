package service

import (
	"database/sql"
	"testing"

	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/testutil"
)

// fixture wires every service over one in-memory database, the way main
// does it.
type fixture struct {
	db        *sql.DB
	projects  repository.ProjectRepo
	rosterRp  repository.RosterRepo
	overrides repository.OverrideRepo
	vacRp     repository.VacationRepo
	conflRp   repository.ConflictRepo

	schedule  ScheduleService
	project   ProjectService
	worker    WorkerService
	vacation  VacationService
	conflicts ConflictService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)

	f := &fixture{
		db:        database,
		projects:  repository.NewSQLiteProjectRepo(database),
		rosterRp:  repository.NewSQLiteRosterRepo(database),
		overrides: repository.NewSQLiteOverrideRepo(database),
		vacRp:     repository.NewSQLiteVacationRepo(database),
		conflRp:   repository.NewSQLiteConflictRepo(database),
	}
	f.schedule = NewScheduleService(f.projects, f.rosterRp, f.overrides, f.vacRp, f.conflRp)
	f.project = NewProjectService(f.projects)
	f.worker = NewWorkerService(f.rosterRp, f.overrides, testutil.NewTestUoW(database))
	f.vacation = NewVacationService(f.vacRp, f.rosterRp)
	f.conflicts = NewConflictService(f.conflRp)
	return f
}
