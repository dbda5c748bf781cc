package scheduler

import (
	"testing"
	"time"

	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testInput(projects ...*domain.Project) Input {
	return Input{
		Projects: projects,
		Roster:   roster.Build(roster.Inputs{}),
		Limits:   &roster.Limits{},
		Today:    monday,
	}
}

func simpleProject(id, name string, phase string, hours float64, worker, start string) *domain.Project {
	return &domain.Project{
		ID:        id,
		Name:      name,
		Client:    "Acme",
		Planned:   true,
		StartDate: start,
		Phases:    map[string]domain.Requirement{phase: domain.HoursReq(hours)},
		Assigned:  map[string]string{phase: worker},
	}
}

func TestRun_SingleTaskOnStartDay(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")

	result := Run(testInput(p))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-01")
	require.Len(t, tasks, 1)
	assert.Equal(t, 0.0, tasks[0].Start)
	assert.Equal(t, 8.0, tasks[0].Hours)
	assert.Equal(t, "montar", tasks[0].Phase)
	assert.Equal(t, "2024-01-01", p.EndDate)
	assert.Empty(t, result.Conflicts)
}

func TestRun_QueueAffinity_FullDayPushesToNextWorkday(t *testing.T) {
	p1 := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")
	p2 := simpleProject("p2", "P2", "montar", 4, "Mikel", "2024-01-02")

	result := Run(testInput(p1, p2))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-02")
	require.Len(t, tasks, 1)
	assert.Equal(t, "P2", tasks[0].Project)
	assert.Equal(t, 0.0, tasks[0].Start)
	assert.Equal(t, 4.0, tasks[0].Hours)
}

func TestRun_QueueAffinity_ResumesSameDayAfterQueue(t *testing.T) {
	p1 := simpleProject("p1", "P1", "montar", 4, "Mikel", "2024-01-01")
	p2 := simpleProject("p2", "P2", "montar", 2, "Mikel", "2024-01-01")

	result := Run(testInput(p1, p2))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-01")
	require.Len(t, tasks, 2)
	assert.Equal(t, "P1", tasks[0].Project)
	assert.Equal(t, "P2", tasks[1].Project)
	assert.Equal(t, 4.0, tasks[1].Start)
}

func TestRun_QueueAffinity_SuppressedByManualStart(t *testing.T) {
	p1 := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")
	p2 := simpleProject("p2", "P2", "montar", 4, "Mikel", "2024-01-01")
	p2.SegmentStarts = map[string][]string{"montar": {"2024-01-04"}}
	p2.SegmentStartHours = map[string][]float64{"montar": {2}}

	result := Run(testInput(p1, p2))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-04")
	require.Len(t, tasks, 1)
	assert.Equal(t, "P2", tasks[0].Project)
	assert.Equal(t, 2.0, tasks[0].Start)
}

func TestRun_InactiveWorkerRedirectedToUnplanned(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 20, "Mikel", "2024-01-01")
	in := testInput(p)
	in.Roster = roster.Build(roster.Inputs{Inactive: map[string]bool{"Mikel": true}})

	result := Run(in)

	assert.Empty(t, result.Schedule["Mikel"])
	var total float64
	wantDays := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i, day := range result.Schedule.Days(domain.WorkerUnplanned) {
		tasks := result.Schedule.TasksOn(domain.WorkerUnplanned, day)
		require.Len(t, tasks, 1)
		assert.Equal(t, wantDays[i], day)
		assert.Equal(t, 0.0, tasks[0].Start)
		assert.LessOrEqual(t, tasks[0].Hours, 8.0)
		total += tasks[0].Hours
	}
	assert.Equal(t, 20.0, total)
}

func TestRun_DueConflict(t *testing.T) {
	p := simpleProject("p1", "Bancada", "montar", 24, "Mikel", "2024-01-01")
	p.DueDate = "2024-01-02"
	p.DueConfirmed = true

	result := Run(testInput(p))

	require.Len(t, result.Conflicts, 1)
	c := result.Conflicts[0]
	assert.Equal(t, "No se cumple la fecha de entrega", c.Message)
	assert.Equal(t, "Bancada|No se cumple la fecha de entrega", c.Key)
	assert.Equal(t, "Acme", c.Client)
}

func TestRun_DueConflict_UnconfirmedWording(t *testing.T) {
	p := simpleProject("p1", "Bancada", "montar", 24, "Mikel", "2024-01-01")
	p.DueDate = "2024-01-02"

	result := Run(testInput(p))

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, domain.MsgDueMissedUnconfirmed, result.Conflicts[0].Message)
}

func TestRun_WeekendsNeverScheduled(t *testing.T) {
	// Friday start with enough hours to spill over the weekend.
	p := simpleProject("p1", "P1", "montar", 24, "Mikel", "2024-01-05")

	result := Run(testInput(p))

	assert.Equal(t, []string{"2024-01-05", "2024-01-08", "2024-01-09"}, result.Schedule.Days("Mikel"))
	assert.Equal(t, "2024-01-09", p.EndDate)
}

func TestRun_VacationBlocksAndPlaceholder(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")
	in := testInput(p)
	in.Vacations = []domain.Vacation{{Worker: "Mikel", Start: "2024-01-01", End: "2024-01-02"}}

	result := Run(in)

	for _, day := range []string{"2024-01-01", "2024-01-02"} {
		tasks := result.Schedule.TasksOn("Mikel", day)
		require.Len(t, tasks, 1, day)
		assert.Equal(t, domain.VacationPhase, tasks[0].Phase)
		assert.Equal(t, 8.0, tasks[0].Hours)
	}

	work := result.Schedule.TasksOn("Mikel", "2024-01-03")
	require.Len(t, work, 1)
	assert.Equal(t, "montar", work[0].Phase)
}

func TestRun_FrozenTasksReproducedVerbatim(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases: map[string]domain.Requirement{
			"montar": domain.HoursReq(4),
			"soldar": domain.HoursReq(4),
		},
		Assigned: map[string]string{"montar": "Mikel", "soldar": "Unai"},
		FrozenTasks: []domain.FrozenTask{
			{Worker: "Mikel", Day: "2024-01-03", Start: 2, Hours: 4, Phase: "montar"},
		},
	}

	result := Run(testInput(p))

	frozen := result.Schedule.TasksOn("Mikel", "2024-01-03")
	require.Len(t, frozen, 1)
	assert.True(t, frozen[0].Frozen)
	assert.Equal(t, 2.0, frozen[0].Start)
	assert.Equal(t, 4.0, frozen[0].Hours)

	// auto-placement for the next phase resumes strictly after the
	// latest frozen day
	soldar := result.Schedule.TasksOn("Unai", "2024-01-04")
	require.Len(t, soldar, 1)
	assert.Equal(t, "soldar", soldar[0].Phase)
}

func TestRun_FrozenSlotNeverOverlapped(t *testing.T) {
	frozenOwner := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-02",
		Phases:   map[string]domain.Requirement{"montar": domain.HoursReq(8)},
		Assigned: map[string]string{"montar": "Mikel"},
		FrozenTasks: []domain.FrozenTask{
			{Worker: "Mikel", Day: "2024-01-02", Start: 0, Hours: 8, Phase: "montar"},
		},
	}
	floating := simpleProject("p2", "P2", "montar", 8, "Mikel", "2024-01-02")

	result := Run(testInput(frozenOwner, floating))

	// the floating project lands after the frozen full day
	tasks := result.Schedule.TasksOn("Mikel", "2024-01-03")
	require.Len(t, tasks, 1)
	assert.Equal(t, "P2", tasks[0].Project)
	assert.Equal(t, "2024-01-03", floating.SegmentStarts["montar"][0])
}

func TestRun_SegmentStartRecordingIsIdempotent(t *testing.T) {
	p1 := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")
	p2 := simpleProject("p2", "P2", "montar", 4, "Mikel", "2024-01-02")

	first := Run(testInput(p1, p2))
	recorded := append([]string(nil), p2.SegmentStarts["montar"]...)

	second := Run(testInput(p1, p2))

	assert.Equal(t, recorded, p2.SegmentStarts["montar"])
	assert.Equal(t, calendarOf(first.Schedule), calendarOf(second.Schedule))
}

func TestRun_DeterministicAcrossPasses(t *testing.T) {
	build := func() []*domain.Project {
		p1 := simpleProject("p1", "P1", "montar", 12, "Mikel", "2024-01-01")
		p1.Phases["soldar"] = domain.SegmentsReq(4, 6)
		p1.SegmentWorkers = map[string][]string{"soldar": {"Unai", "Fabio"}}
		p2 := simpleProject("p2", "P2", "montar", 6, "Mikel", "2024-01-02")
		p3 := simpleProject("p3", "P3", "mecanizar", 10, "Mikel", "2024-01-01")
		return []*domain.Project{p1, p2, p3}
	}

	a := Run(testInput(build()...))
	b := Run(testInput(build()...))

	assert.Equal(t, calendarOf(a.Schedule), calendarOf(b.Schedule))
	assert.Equal(t, a.Conflicts, b.Conflicts)
}

func TestRun_UnplannedHasNoCeiling(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 200, "", "2024-01-01")

	result := Run(testInput(p))

	var total float64
	for _, day := range result.Schedule.Days(domain.WorkerUnplanned) {
		for _, task := range result.Schedule.TasksOn(domain.WorkerUnplanned, day) {
			assert.LessOrEqual(t, task.Hours, 8.0)
			assert.Equal(t, 0.0, task.Start)
			total += task.Hours
		}
	}
	assert.Equal(t, 200.0, total)
}

func TestRun_MachinePoolSharesDaysAcrossProjects(t *testing.T) {
	p1 := simpleProject("p1", "P1", "tratamiento", 8, "", "2024-01-01")
	p2 := simpleProject("p2", "P2", "tratamiento", 8, "", "2024-01-01")

	result := Run(testInput(p1, p2))

	tasks := result.Schedule.TasksOn(domain.PoolTratamiento, "2024-01-01")
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, 0.0, task.Start)
		assert.Equal(t, 8.0, task.Hours)
	}
}

func TestRun_MachinePhaseBlocksCappedPerDay(t *testing.T) {
	p := simpleProject("p1", "P1", "mecanizar", 20, "Mikel", "2024-01-01")

	result := Run(testInput(p))

	days := result.Schedule.Days("Mikel")
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, days)
	for _, day := range days {
		tasks := result.Schedule.TasksOn("Mikel", day)
		require.Len(t, tasks, 1)
		assert.Equal(t, 0.0, tasks[0].Start)
		assert.LessOrEqual(t, tasks[0].Hours, 8.0)
	}
}

func TestRun_ProcurementDateRange(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-04",
		Phases: map[string]domain.Requirement{
			"recepcionar material": domain.DateRangeReq("2024-01-09"),
		},
		Assigned: map[string]string{"recepcionar material": "Irene"},
	}

	result := Run(testInput(p))

	// Thursday through Tuesday inclusive, weekend skipped.
	assert.Equal(t, []string{"2024-01-04", "2024-01-05", "2024-01-08", "2024-01-09"}, result.Schedule.Days("Irene"))
	for _, day := range result.Schedule.Days("Irene") {
		tasks := result.Schedule.TasksOn("Irene", day)
		require.Len(t, tasks, 1)
		assert.Equal(t, 0.0, tasks[0].Hours)
	}
	assert.Equal(t, "2024-01-09", p.EndDate)
}

func TestRun_ProcurementDateRange_HonorsPinnedStart(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases: map[string]domain.Requirement{
			"recepcionar material": domain.DateRangeReq("2024-01-05"),
		},
		Assigned:      map[string]string{"recepcionar material": "Irene"},
		SegmentStarts: map[string][]string{"recepcionar material": {"2024-01-03"}},
	}

	result := Run(testInput(p))

	// The recorded start wins over the project cursor, so a replay does
	// not grow the range backwards.
	days := result.Schedule.Days("Irene")
	assert.Equal(t, []string{"2024-01-03", "2024-01-04", "2024-01-05"}, days)
	assert.NotContains(t, days, "2024-01-01")
	assert.Equal(t, []string{"2024-01-03"}, p.SegmentStarts["recepcionar material"])
}

func TestRun_DueStatusTagging(t *testing.T) {
	// 16h ending Tuesday with a Monday due date: Monday's block is
	// "before", Tuesday's is "after".
	p := simpleProject("p1", "P1", "montar", 16, "Mikel", "2024-01-01")
	p.DueDate = "2024-01-01"

	result := Run(testInput(p))

	mondayTask := result.Schedule.TasksOn("Mikel", "2024-01-01")[0]
	tuesdayTask := result.Schedule.TasksOn("Mikel", "2024-01-02")[0]
	assert.Equal(t, domain.DueBefore, mondayTask.DueStatus)
	assert.False(t, mondayTask.Late)
	assert.Equal(t, domain.DueAfter, tuesdayTask.DueStatus)
	assert.True(t, tuesdayTask.Late)
}

func TestRun_DueStatusMet(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 8, "Mikel", "2024-01-01")
	p.DueDate = "2024-01-05"

	result := Run(testInput(p))

	task := result.Schedule.TasksOn("Mikel", "2024-01-01")[0]
	assert.Equal(t, domain.DueMet, task.DueStatus)
}

func TestRun_DueStatusSpansSegments(t *testing.T) {
	// The second soldar segment overruns the due date, so the first one
	// is tagged "before" even though it fits on the due day itself.
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases:         map[string]domain.Requirement{"soldar": domain.SegmentsReq(8, 4)},
		SegmentWorkers: map[string][]string{"soldar": {"Unai", "Unai"}},
		DueDate:        "2024-01-01",
	}

	result := Run(testInput(p))

	first := result.Schedule.TasksOn("Unai", "2024-01-01")[0]
	second := result.Schedule.TasksOn("Unai", "2024-01-02")[0]
	assert.Equal(t, domain.DueBefore, first.DueStatus)
	assert.Equal(t, domain.DueAfter, second.DueStatus)
}

func TestRun_FrozenTasksCarryStatusTags(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases:       map[string]domain.Requirement{"montar": domain.HoursReq(8)},
		Assigned:     map[string]string{"montar": "Mikel"},
		DueDate:      "2024-01-01",
		DueConfirmed: true,
		KanbanFields: map[string]string{"Fecha Montaje": "2024-01-01"},
		FrozenTasks: []domain.FrozenTask{
			{Worker: "Mikel", Day: "2024-01-02", Start: 0, Hours: 8, Phase: "montar"},
		},
	}

	result := Run(testInput(p))

	task := result.Schedule.TasksOn("Mikel", "2024-01-02")[0]
	require.True(t, task.Frozen)
	assert.Equal(t, domain.DueAfter, task.DueStatus)
	assert.Equal(t, domain.PhaseDeadlineLate, task.Deadline)
	assert.True(t, task.Late)
}

func TestRun_PhaseDeadlineStatus(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 16, "Mikel", "2024-01-01")
	p.KanbanFields = map[string]string{"Fecha Montaje": "2024-01-01"}

	result := Run(testInput(p))

	task := result.Schedule.TasksOn("Mikel", "2024-01-01")[0]
	assert.Equal(t, domain.PhaseDeadlineLate, task.Deadline)

	met := simpleProject("p2", "P2", "montar", 8, "Iban", "2024-01-01")
	met.KanbanFields = map[string]string{"Fecha Montaje": "2024-01-05"}

	result = Run(testInput(met))
	task = result.Schedule.TasksOn("Iban", "2024-01-01")[0]
	assert.Equal(t, domain.PhaseDeadlineMet, task.Deadline)
}

func TestRun_ZeroRequirementSkipped(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases: map[string]domain.Requirement{
			"dibujo": domain.HoursReq(0),
			"montar": domain.HoursReq(8),
		},
		Assigned: map[string]string{"dibujo": "Pilar", "montar": "Mikel"},
	}

	result := Run(testInput(p))

	assert.Empty(t, result.Schedule["Pilar"])
	// the cursor did not advance for the skipped phase
	tasks := result.Schedule.TasksOn("Mikel", "2024-01-01")
	require.Len(t, tasks, 1)
}

func TestRun_PhaseCursorCarriedBetweenPhases(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases: map[string]domain.Requirement{
			"dibujo": domain.HoursReq(4),
			"soldar": domain.HoursReq(4),
		},
		Assigned: map[string]string{"dibujo": "Pilar", "soldar": "Unai"},
	}

	result := Run(testInput(p))

	// dibujo occupies Monday 0-4 on Pilar; soldar resumes at the cursor
	// (Monday hour 4) on Unai's empty day.
	soldar := result.Schedule.TasksOn("Unai", "2024-01-01")
	require.Len(t, soldar, 1)
	assert.Equal(t, 4.0, soldar[0].Start)
}

func TestRun_UnplannedProjectStartsToday(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 8, "Mikel", "2023-06-01")
	p.Planned = false

	result := Run(testInput(p))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-01")
	require.Len(t, tasks, 1)
}

func TestRun_MalformedStartDateFallsBackToToday(t *testing.T) {
	p := simpleProject("p1", "P1", "montar", 8, "Mikel", "corrupted")

	result := Run(testInput(p))

	tasks := result.Schedule.TasksOn("Mikel", "2024-01-01")
	require.Len(t, tasks, 1)
	assert.Empty(t, result.Conflicts)
}

func TestRun_FlatOverrideSplitsDay(t *testing.T) {
	p := simpleProject("p1", "P1", "soldar", 8, "Fabio", "2024-01-01")
	in := testInput(p)
	in.Limits = &roster.Limits{Flat: map[string]float64{"Fabio": 4}}

	result := Run(in)

	monday := result.Schedule.TasksOn("Fabio", "2024-01-01")
	tuesday := result.Schedule.TasksOn("Fabio", "2024-01-02")
	require.Len(t, monday, 1)
	require.Len(t, tuesday, 1)
	assert.Equal(t, 4.0, monday[0].Hours)
	assert.Equal(t, 4.0, tuesday[0].Hours)
}

func TestRun_SegmentsWithDifferentWorkers(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "P1", Client: "Acme", Planned: true, StartDate: "2024-01-01",
		Phases:         map[string]domain.Requirement{"soldar": domain.SegmentsReq(4, 6)},
		SegmentWorkers: map[string][]string{"soldar": {"Fabio", "Igor"}},
	}

	result := Run(testInput(p))

	fabio := result.Schedule.TasksOn("Fabio", "2024-01-01")
	require.Len(t, fabio, 1)
	require.NotNil(t, fabio[0].Part)
	assert.Equal(t, 0, *fabio[0].Part)
	assert.Equal(t, 4.0, fabio[0].Hours)

	// the second segment resumes at the cursor left by the first
	igor := result.Schedule.TasksOn("Igor", "2024-01-01")
	require.Len(t, igor, 1)
	require.NotNil(t, igor[0].Part)
	assert.Equal(t, 1, *igor[0].Part)
	assert.Equal(t, 4.0, igor[0].Start)
	assert.Equal(t, 4.0, igor[0].Hours)
}

// calendarOf flattens a schedule into a comparable structure.
func calendarOf(s Schedule) map[string]map[string][]domain.Task {
	out := make(map[string]map[string][]domain.Task)
	for _, w := range s.Workers() {
		byDay := make(map[string][]domain.Task)
		for _, d := range s.Days(w) {
			for _, t := range s.TasksOn(w, d) {
				byDay[d] = append(byDay[d], *t)
			}
		}
		out[w] = byDay
	}
	return out
}
