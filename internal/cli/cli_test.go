package cli

import (
	"bytes"
	"testing"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/service"
	"github.com/imirazoki/lantegi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full command tree over an in-memory database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	conn := testutil.NewTestDB(t)

	projects := repository.NewSQLiteProjectRepo(conn)
	rosterRepo := repository.NewSQLiteRosterRepo(conn)
	overrides := repository.NewSQLiteOverrideRepo(conn)
	vacations := repository.NewSQLiteVacationRepo(conn)
	conflicts := repository.NewSQLiteConflictRepo(conn)
	uow := db.NewSQLiteUnitOfWork(conn)

	return &App{
		Schedule:      service.NewScheduleService(projects, rosterRepo, overrides, vacations, conflicts),
		Projects:      service.NewProjectService(projects),
		Workers:       service.NewWorkerService(rosterRepo, overrides, uow),
		Vacations:     service.NewVacationService(vacations, rosterRepo),
		Conflicts:     service.NewConflictService(conflicts),
		IsInteractive: func() bool { return false },
	}
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestProjectAddListInspect(t *testing.T) {
	app := newTestApp(t)

	out := execute(t, app, "project", "add",
		"--name", "Silo", "--client", "Acme",
		"--start", "2026-01-05", "--due", "2026-01-09")
	assert.Contains(t, out, "Proyecto Silo creado")

	out = execute(t, app, "project", "set-phase", "Silo", "montar", "--hours", "16")
	assert.Contains(t, out, "Fase montar actualizada")

	out = execute(t, app, "project", "list")
	assert.Contains(t, out, "Silo")
	assert.Contains(t, out, "Acme")

	out = execute(t, app, "project", "inspect", "Silo")
	assert.Contains(t, out, "SILO")
	assert.Contains(t, out, "16h")
}

func TestProjectSetPhaseSegments(t *testing.T) {
	app := newTestApp(t)
	execute(t, app, "project", "add", "--name", "Silo", "--start", "2026-01-05")

	execute(t, app, "project", "set-phase", "Silo", "soldar", "--segments", "8,4")
	execute(t, app, "project", "assign", "Silo", "soldar", "Fabio", "--part", "2")

	out := execute(t, app, "project", "inspect", "Silo")
	assert.Contains(t, out, "8h + 4h")
}

func TestScheduleCommandPrintsCalendar(t *testing.T) {
	app := newTestApp(t)
	execute(t, app, "project", "add",
		"--name", "Silo", "--start", "2026-01-05", "--due", "2026-01-05", "--due-confirmed")
	execute(t, app, "project", "set-phase", "Silo", "montar", "--hours", "16")

	out := execute(t, app, "schedule")
	assert.Contains(t, out, "SEMANA DE 2026-01-05")
	assert.Contains(t, out, "Silo montar")
	// 16h cannot finish by the first day.
	assert.Contains(t, out, "No se cumple la fecha de entrega")
}

func TestCalendarCommandFallsBackToStaticOutput(t *testing.T) {
	app := newTestApp(t)
	execute(t, app, "project", "add", "--name", "Silo", "--start", "2026-01-05")
	execute(t, app, "project", "set-phase", "Silo", "montar", "--hours", "8")

	out := execute(t, app, "calendar")
	assert.Contains(t, out, "Silo montar 8h")
}

func TestWorkerCommands(t *testing.T) {
	app := newTestApp(t)

	out := execute(t, app, "worker", "add", "Ander")
	assert.Contains(t, out, "Trabajador Ander añadido")

	execute(t, app, "worker", "note", "Ander", "turno de tarde")
	execute(t, app, "worker", "limit", "Ander", "--hours", "6")

	out = execute(t, app, "worker", "list")
	assert.Contains(t, out, "Ander")
	assert.Contains(t, out, "turno de tarde")
	assert.Contains(t, out, "6h/día")

	out = execute(t, app, "worker", "rename", "Ander", "Andoni")
	assert.Contains(t, out, "Ander ahora se llama Andoni")

	execute(t, app, "worker", "deactivate", "Andoni")
	out = execute(t, app, "worker", "list")
	assert.Contains(t, out, "inactivo")
}

func TestVacationAddAndList(t *testing.T) {
	app := newTestApp(t)

	out := execute(t, app, "vacation", "add",
		"--worker", "Mikel", "--start", "2026-08-03", "--end", "2026-08-14")
	assert.Contains(t, out, "Vacaciones de Mikel")

	out = execute(t, app, "vacation", "list")
	assert.Contains(t, out, "2026-08-03")
	assert.Contains(t, out, "2026-08-14")
}

func TestManualCommands(t *testing.T) {
	app := newTestApp(t)

	out := execute(t, app, "manual", "add", "repaso soldadura",
		"--day", "2026-01-05", "--hours", "4")
	assert.Contains(t, out, "Entrada manual creada")

	out = execute(t, app, "manual", "list")
	assert.Contains(t, out, "repaso soldadura")
	assert.Contains(t, out, "Sin planificar")

	out = execute(t, app, "calendar")
	assert.Contains(t, out, "repaso soldadura 4h")
}

func TestConflictListEmpty(t *testing.T) {
	app := newTestApp(t)

	out := execute(t, app, "conflicts", "list")
	assert.Contains(t, out, "Sin conflictos de entrega.")
}

func TestParseSegments(t *testing.T) {
	segments, err := parseSegments("8, 4,2.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 4, 2.5}, segments)

	_, err = parseSegments("8,x")
	assert.Error(t, err)
}
