package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerService_AddAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.worker.Add(ctx, "Xabi"))

	views, err := f.worker.List(ctx)
	require.NoError(t, err)

	var found bool
	for _, v := range views {
		if v.Name == "Xabi" {
			found = true
			assert.True(t, v.Active)
			assert.Equal(t, domain.DefaultCapabilities, v.Capabilities)
		}
	}
	assert.True(t, found, "added worker should appear in the roster")
}

func TestWorkerService_AddRejectsInvalidNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Error(t, f.worker.Add(ctx, ""))
	assert.Error(t, f.worker.Add(ctx, domain.WorkerUnplanned))
	assert.Error(t, f.worker.Add(ctx, "Mikel"), "base roster names are taken")

	require.NoError(t, f.worker.Add(ctx, "Xabi"))
	assert.Error(t, f.worker.Add(ctx, "Xabi"))
}

func TestWorkerService_RenameCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Bastidor", monday,
		testutil.WithPhase("montar", domain.HoursReq(8), "Mikel"),
		testutil.WithFrozenTask(domain.FrozenTask{
			Worker: "Mikel", Day: monday, Start: 0, Hours: 8, Phase: "montar",
		}),
	)
	p.SegmentWorkers = map[string][]string{"soldar": {"Mikel"}}
	require.NoError(t, f.project.Create(ctx, p))
	require.NoError(t, f.worker.SetFlatLimit(ctx, "Mikel", 6))
	_, err := f.vacation.Add(ctx, "Mikel", monday, monday)
	require.NoError(t, err)

	require.NoError(t, f.worker.Rename(ctx, "Mikel", "Mikelo"))

	got, err := f.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mikelo", got.Assigned["montar"])
	assert.Equal(t, []string{"Mikelo"}, got.SegmentWorkers["soldar"])
	assert.Equal(t, "Mikelo", got.FrozenTasks[0].Worker)

	limits, err := f.overrides.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6.0, limits.Flat["Mikelo"])

	vacations, err := f.vacRp.ListByWorker(ctx, "Mikelo")
	require.NoError(t, err)
	assert.Len(t, vacations, 1)

	views, err := f.worker.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	assert.Contains(t, names, "Mikelo")
	assert.NotContains(t, names, "Mikel")
}

func TestWorkerService_RenameValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Error(t, f.worker.Rename(ctx, "Mikel", ""))
	assert.Error(t, f.worker.Rename(ctx, "Mikel", "Unai"))
	assert.Error(t, f.worker.Rename(ctx, "Nadie", "Alguien"))
	assert.Error(t, f.worker.Rename(ctx, "Mikel", domain.WorkerUnplanned))
}

func TestWorkerService_RenameRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.vacation.Add(ctx, "Mikel", monday, monday)
	require.NoError(t, err)

	failing := &testutil.FailOnNthExecUoW{
		DB:     f.db,
		FailOn: 5,
		Err:    fmt.Errorf("disk full"),
	}
	svc := NewWorkerService(f.rosterRp, f.overrides, failing)

	err = svc.Rename(ctx, "Mikel", "Mikelo")
	require.Error(t, err)

	// Nothing moved: the vacation still belongs to the old name and the
	// rename map is empty.
	vacations, err := f.vacRp.ListByWorker(ctx, "Mikel")
	require.NoError(t, err)
	assert.Len(t, vacations, 1)

	inputs, err := f.rosterRp.Inputs(ctx)
	require.NoError(t, err)
	assert.Empty(t, inputs.Renames)
}

func TestWorkerService_SetActiveRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.worker.SetActive(ctx, "Iban", false))
	views, err := f.worker.List(ctx)
	require.NoError(t, err)
	for _, v := range views {
		if v.Name == "Iban" {
			assert.False(t, v.Active)
		}
	}

	require.NoError(t, f.worker.SetActive(ctx, "Iban", true))
	assert.Error(t, f.worker.SetActive(ctx, "Nadie", false))
}

func TestWorkerService_SetOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Error(t, f.worker.SetOrder(ctx, []string{"Nadie"}))
	require.NoError(t, f.worker.SetOrder(ctx, []string{"Fabio", "Mikel"}))

	views, err := f.worker.List(ctx)
	require.NoError(t, err)
	require.True(t, len(views) >= 2)
	assert.Equal(t, "Fabio", views[0].Name)
	assert.Equal(t, "Mikel", views[1].Name)
}

func TestWorkerService_ManualEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.worker.AddManual(ctx, "", monday, 4, "")
	assert.Error(t, err, "note is required")
	_, err = f.worker.AddManual(ctx, "", monday, 0, "repaso")
	assert.Error(t, err, "hours must be positive")
	_, err = f.worker.AddManual(ctx, "Nadie", monday, 4, "repaso")
	assert.Error(t, err, "unknown worker")
	_, err = f.worker.AddManual(ctx, "", "garbage", 4, "repaso")
	assert.Error(t, err, "malformed day")

	e, err := f.worker.AddManual(ctx, "", "05/01/2026", 4, "repaso soldadura")
	require.NoError(t, err)
	assert.Equal(t, monday, e.Day, "day is normalized to ISO form")
	assert.NotEmpty(t, e.ID)

	entries, err := f.worker.ListManual(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// The entry shows up on the unplanned row of the rendered calendar.
	view, err := f.schedule.Preview(ctx)
	require.NoError(t, err)
	cell := view.Calendar.Cells[domain.WorkerUnplanned][monday]
	require.Len(t, cell, 1)
	assert.Equal(t, domain.ManualPhase, cell[0].Phase)
	assert.Equal(t, "repaso soldadura", cell[0].Project)

	require.NoError(t, f.worker.DeleteManual(ctx, e.ID))
	entries, err = f.worker.ListManual(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkerService_LimitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Error(t, f.worker.SetFlatLimit(ctx, "Mikel", 0))
	assert.Error(t, f.worker.SetFlatLimit(ctx, "Mikel", 13))
	assert.Error(t, f.worker.SetFlatLimit(ctx, "Nadie", 6))
	assert.NoError(t, f.worker.SetFlatLimit(ctx, "Mikel", 6))

	assert.Error(t, f.worker.SetDayLimit(ctx, "Mikel", monday, 0.5))
	assert.NoError(t, f.worker.SetDayLimit(ctx, "Mikel", monday, 4))

	assert.Error(t, f.worker.SetGlobalCap(ctx, monday, 20))
	assert.NoError(t, f.worker.SetGlobalCap(ctx, monday, 6))
}
