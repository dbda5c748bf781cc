package scheduler

import (
	"sort"
	"time"

	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/roster"
)

// Input is the immutable-for-the-pass snapshot a scheduling run works on.
// Everything is loaded up front; the pass never blocks on I/O.
type Input struct {
	Projects  []*domain.Project
	Roster    *roster.Roster
	Limits    *roster.Limits
	Vacations []domain.Vacation
	// Today anchors unplanned projects and malformed dates. Zero means
	// the current day in the workshop timezone.
	Today time.Time
}

// Result is the output of one scheduling pass. The schedule is always
// derived, never persisted; project mutations are limited to EndDate and
// the idempotent segment-start write-backs.
type Result struct {
	Schedule  Schedule
	Conflicts []domain.Conflict
}

// Run executes a full scheduling pass: pre-seed frozen tasks and vacation
// blocks, then place every project's phases in order, carrying a (day,
// hour) cursor between the phases of each project. Projects are processed
// in ascending start-date order, so later projects land in schedules
// already partially filled by earlier ones.
func Run(in Input) Result {
	today := in.Today
	if today.IsZero() {
		today = calendar.Today()
	}

	ps := &pass{
		sched:       make(Schedule),
		limits:      in.Limits,
		today:       today,
		frozenTasks: make(map[string][]*domain.Task),
	}

	seedFrozen(ps, in.Projects, today)
	seedVacations(ps, BuildVacationIndex(in.Vacations))

	ordered := append([]*domain.Project(nil), in.Projects...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return startOf(ordered[i], today).Before(startOf(ordered[j], today))
	})

	var conflicts []domain.Conflict
	for _, p := range ordered {
		if c, ok := scheduleProject(ps, in.Roster, p, today); ok {
			conflicts = append(conflicts, c)
		}
	}

	return Result{Schedule: ps.sched, Conflicts: conflicts}
}

func startOf(p *domain.Project, today time.Time) time.Time {
	if !p.Planned {
		return today
	}
	return calendar.ParseDayOr(p.StartDate, today)
}

// seedFrozen reserves every manually locked placement before any floating
// work is placed, so auto-placement never lands on top of a frozen slot.
func seedFrozen(ps *pass, projects []*domain.Project, today time.Time) {
	for _, p := range projects {
		for _, ft := range p.FrozenTasks {
			day := calendar.ParseDayOr(ft.Day, today)
			startsAt, endsAt := calendar.Timestamps(day, ft.Start, ft.Hours)
			t := &domain.Task{
				ProjectID:    p.ID,
				Project:      p.Name,
				Client:       p.Client,
				Phase:        ft.Phase,
				Part:         ft.Part,
				Day:          calendar.Day(day),
				Hours:        ft.Hours,
				Start:        ft.Start,
				StartsAt:     startsAt,
				EndsAt:       endsAt,
				Color:        p.Color,
				DueDate:      p.DueDate,
				DueConfirmed: p.DueConfirmed,
				Frozen:       true,
				Blocked:      p.Blocked,
			}
			if due, ok := calendar.ParseDay(p.DueDate); ok && day.After(due) {
				t.Late = true
			}
			ps.sched.add(ft.Worker, t.Day, t)
			key := phaseKey(p.ID, ft.Phase)
			ps.frozenTasks[key] = append(ps.frozenTasks[key], t)
		}
	}
}

// seedVacations reserves each blocked day with a full-day placeholder
// task, so every scan for existing work treats vacations uniformly.
func seedVacations(ps *pass, idx VacationIndex) {
	for _, worker := range idx.sortedWorkers() {
		for _, day := range idx.sortedDays(worker) {
			d, _ := parseDayKey(day)
			startsAt, endsAt := calendar.Timestamps(d, 0, calendar.HoursPerDay)
			ps.sched.add(worker, day, &domain.Task{
				Phase:    domain.VacationPhase,
				Day:      day,
				Hours:    calendar.HoursPerDay,
				Start:    0,
				StartsAt: startsAt,
				EndsAt:   endsAt,
			})
		}
	}
}

// scheduleProject drives the placement of one project, phase by phase,
// and reports a due-date conflict if the computed end date breaches it.
func scheduleProject(ps *pass, r *roster.Roster, p *domain.Project, today time.Time) (domain.Conflict, bool) {
	cursorDay := startOf(p, today)
	cursorHour := 0.0
	var endDate time.Time

	for _, phase := range p.OrderedPhaseKeys() {
		req := p.Phases[phase]
		if req.IsZero() {
			continue
		}

		// A frozen phase is reproduced verbatim by the pre-pass; the
		// cursor resumes strictly after its latest locked day.
		if frozen := p.FrozenForPhase(phase); len(frozen) > 0 {
			var latest time.Time
			for _, ft := range frozen {
				day := calendar.ParseDayOr(ft.Day, today)
				if day.After(latest) {
					latest = day
				}
				if day.After(endDate) {
					endDate = day
				}
			}
			ps.tagFrozen(p, phase, latest)
			if resume := calendar.NextWorkday(latest); resume.After(cursorDay) {
				cursorDay, cursorHour = resume, 0
			}
			continue
		}

		if req.Kind == domain.ReqDateRange {
			worker := resolveWorker(r, p, phase, 0)
			day, hour := cursorDay, cursorHour
			if pinnedDay, pinnedHour, ok := p.ManualStart(phase, 0); ok {
				day = calendar.ParseDayOr(pinnedDay, today)
				hour = pinnedHour
			}
			pl := ps.placeRange(worker, p, phase, day, hour, req.TargetDay)
			if pl.placed {
				p.RecordSegmentStart(phase, 0, calendar.Day(pl.firstDay), pl.firstHour)
				if pl.lastDay.After(endDate) {
					endDate = pl.lastDay
				}
				ps.finishPhase(p, phase, pl.lastDay)
			}
			cursorDay, cursorHour = pl.resumeDay, pl.resumeHour
			continue
		}

		var phaseLast time.Time
		for part, hours := range req.SegmentHours() {
			if hours <= 0 {
				continue
			}
			worker := resolveWorker(r, p, phase, part)

			day, hour := cursorDay, cursorHour
			manual := false
			if pinnedDay, pinnedHour, ok := p.ManualStart(phase, part); ok {
				day = calendar.ParseDayOr(pinnedDay, today)
				hour = pinnedHour
				manual = true
			}

			var partRef *int
			if req.Kind == domain.ReqSegments {
				idx := part
				partRef = &idx
			}

			pl := ps.place(worker, p, phase, partRef, day, hour, hours, manual)
			p.RecordSegmentStart(phase, part, calendar.Day(pl.firstDay), pl.firstHour)
			if pl.lastDay.After(phaseLast) {
				phaseLast = pl.lastDay
			}
			if pl.lastDay.After(endDate) {
				endDate = pl.lastDay
			}
			cursorDay, cursorHour = pl.resumeDay, pl.resumeHour
		}
		ps.finishPhase(p, phase, phaseLast)
	}

	if !endDate.IsZero() {
		p.EndDate = calendar.Day(endDate)
	}

	due, hasDue := calendar.ParseDay(p.DueDate)
	if hasDue && !endDate.IsZero() && endDate.After(due) {
		msg := domain.MsgDueMissed
		if !p.DueConfirmed {
			msg = domain.MsgDueMissedUnconfirmed
		}
		return domain.NewConflict(p.Name, p.Client, msg), true
	}
	return domain.Conflict{}, false
}

// resolveWorker picks the effective resource for a phase segment: the
// explicit assignment when it names an active worker, otherwise the
// machine pool for machine phases, otherwise the unplanned bucket. The
// calendar always has a home for every hour of work.
func resolveWorker(r *roster.Roster, p *domain.Project, phase string, part int) string {
	name := p.WorkerFor(phase, part)
	if name != "" && domain.IsVirtualWorker(name) {
		return name
	}
	if name != "" && r.IsActive(name) {
		return name
	}
	switch domain.BasePhase(phase) {
	case domain.PhaseMecanizar:
		return domain.PoolMecanizar
	case domain.PhaseTratamiento:
		return domain.PoolTratamiento
	default:
		return domain.WorkerUnplanned
	}
}
