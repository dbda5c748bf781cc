// Package contract defines the data shapes exchanged between the service
// layer and its callers. The CLI renders these views without reaching into
// the scheduler's internal structures.
package contract

import (
	"sort"

	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/scheduler"
)

// TaskView is one placed block as shown on the calendar.
type TaskView struct {
	Project  string
	Client   string
	Phase    string
	Part     *int
	Day      string
	Start    float64
	Hours    float64
	Color    string
	Frozen   bool
	Blocked  bool
	Late     bool
	DueDate  string
	Status   domain.DueStatus
	Deadline domain.PhaseDeadlineStatus
}

// CalendarView is the full placement grid of one scheduling pass: every
// day that received work, every worker row, and the blocks per cell.
type CalendarView struct {
	Days    []string
	Workers []string
	// Cells indexes placed blocks by worker, then day. Blocks within a
	// cell are ordered by start hour.
	Cells map[string]map[string][]TaskView
}

// ScheduleView pairs the calendar with the conflicts the pass emitted.
type ScheduleView struct {
	Calendar  CalendarView
	Conflicts []domain.Conflict
}

// NewScheduleView flattens a scheduling result into its view form.
func NewScheduleView(res scheduler.Result) ScheduleView {
	view := ScheduleView{
		Calendar: CalendarView{
			Days:    res.Schedule.AllDays(),
			Workers: res.Schedule.Workers(),
			Cells:   make(map[string]map[string][]TaskView),
		},
		Conflicts: res.Conflicts,
	}
	for _, worker := range view.Calendar.Workers {
		row := make(map[string][]TaskView)
		for _, day := range view.Calendar.Days {
			for _, t := range res.Schedule.TasksOn(worker, day) {
				row[day] = append(row[day], taskView(t))
			}
		}
		view.Calendar.Cells[worker] = row
	}
	return view
}

func taskView(t *domain.Task) TaskView {
	return TaskView{
		Project:  t.Project,
		Client:   t.Client,
		Phase:    t.Phase,
		Part:     t.Part,
		Day:      t.Day,
		Start:    t.Start,
		Hours:    t.Hours,
		Color:    t.Color,
		Frozen:   t.Frozen,
		Blocked:  t.Blocked,
		Late:     t.Late,
		DueDate:  t.DueDate,
		Status:   t.DueStatus,
		Deadline: t.Deadline,
	}
}

// MergeManual overlays hand-placed blocks onto the grid. Entries land on
// their worker's row, or on the unplanned row when no worker is set, and
// missing day columns are inserted in order.
func (v *CalendarView) MergeManual(entries []domain.ManualEntry) {
	for _, e := range entries {
		worker := e.Worker
		if worker == "" {
			worker = domain.WorkerUnplanned
		}
		v.ensureDay(e.Day)
		v.ensureWorker(worker)
		v.Cells[worker][e.Day] = append(v.Cells[worker][e.Day], TaskView{
			Project: e.Note,
			Phase:   domain.ManualPhase,
			Day:     e.Day,
			Hours:   e.Hours,
		})
	}
}

func (v *CalendarView) ensureDay(day string) {
	i := sort.SearchStrings(v.Days, day)
	if i < len(v.Days) && v.Days[i] == day {
		return
	}
	v.Days = append(v.Days, "")
	copy(v.Days[i+1:], v.Days[i:])
	v.Days[i] = day
}

func (v *CalendarView) ensureWorker(worker string) {
	if v.Cells == nil {
		v.Cells = make(map[string]map[string][]TaskView)
	}
	if v.Cells[worker] == nil {
		v.Cells[worker] = make(map[string][]TaskView)
	}
	for _, w := range v.Workers {
		if w == worker {
			return
		}
	}
	v.Workers = append(v.Workers, worker)
}

// ProjectSummary is the project list row.
type ProjectSummary struct {
	ID        string
	Name      string
	Client    string
	StartDate string
	DueDate   string
	EndDate   string
	Phases    int
	Blocked   bool
	Planned   bool
}

// SummarizeProject builds the list row for a project.
func SummarizeProject(p *domain.Project) ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Name:      p.Name,
		Client:    p.Client,
		StartDate: p.StartDate,
		DueDate:   p.DueDate,
		EndDate:   p.EndDate,
		Phases:    len(p.Phases),
		Blocked:   p.Blocked,
		Planned:   p.Planned,
	}
}

// WorkerView is the worker list row: roster entry plus its persisted
// extras.
type WorkerView struct {
	Name         string
	Capabilities []string
	Active       bool
	Note         string
	FlatLimit    float64
	HasFlatLimit bool
}
