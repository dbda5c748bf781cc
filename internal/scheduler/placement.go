package scheduler

import (
	"time"

	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/roster"
)

// pass holds the mutable state of one scheduling run.
type pass struct {
	sched  Schedule
	limits *roster.Limits
	today  time.Time

	// phaseTasks buffers the tasks placed by the current phase, across all
	// of its segments, so finishPhase can tag their statuses once the
	// phase's last day is known.
	phaseTasks []*domain.Task

	// frozenTasks holds the pre-seeded locked tasks per project phase so
	// they get the same status tags as floating work.
	frozenTasks map[string][]*domain.Task
}

func phaseKey(projectID, phase string) string {
	return projectID + "\x00" + phase
}

// placement is the result of placing one phase segment: the cursor where
// the project's next phase resumes, and the first/last days actually used.
type placement struct {
	resumeDay  time.Time
	resumeHour float64
	firstDay   time.Time
	firstHour  float64
	lastDay    time.Time
	placed     bool
}

// skipBlocked advances day past weekends and full-day vacation blocks,
// resetting the hour offset whenever the day moves.
func (ps *pass) skipBlocked(worker string, day time.Time, hour float64) (time.Time, float64) {
	for {
		if calendar.IsWeekend(day) {
			day = calendar.SkipWeekend(day)
			hour = 0
			continue
		}
		if ps.sched.hasVacation(worker, calendar.Day(day)) {
			day = calendar.NextWorkday(day)
			hour = 0
			continue
		}
		return day, hour
	}
}

// latestAssembly finds the worker's assembly-phase task with the latest
// day at or after from, used by the queue-affinity rule.
func (ps *pass) latestAssembly(worker string, from time.Time) (*domain.Task, time.Time, bool) {
	var best *domain.Task
	var bestDay time.Time
	for dayKey, tasks := range ps.sched[worker] {
		day, ok := parseDayKey(dayKey)
		if !ok || day.Before(from) {
			continue
		}
		for _, t := range tasks {
			if domain.BasePhase(t.Phase) != domain.PhaseMontar {
				continue
			}
			if best == nil || day.After(bestDay) || (day.Equal(bestDay) && t.End() > best.End()) {
				best = t
				bestDay = day
			}
		}
	}
	return best, bestDay, best != nil
}

// place allocates hours of one phase segment for a worker starting at the
// given cursor. It appends tasks to the shared schedule and returns the
// cursor for the project's next phase.
func (ps *pass) place(worker string, p *domain.Project, phase string, part *int, day time.Time, hour float64, hours float64, manual bool) placement {
	day, hour = ps.skipBlocked(worker, day, hour)

	// Queue affinity: assembly work for a real worker joins the end of
	// that worker's existing assembly queue unless the start was pinned
	// manually.
	if domain.BasePhase(phase) == domain.PhaseMontar && !manual && !domain.IsVirtualWorker(worker) {
		if prev, prevDay, ok := ps.latestAssembly(worker, day); ok {
			limit := ps.limits.For(worker, calendar.Day(prevDay), phase)
			if prev.End() < limit {
				day, hour = prevDay, prev.End()
			} else {
				day, hour = ps.skipBlocked(worker, calendar.NextWorkday(prevDay), 0)
			}
		}
	}

	if domain.IsMachinePhase(phase) || worker == domain.WorkerUnplanned {
		return ps.placeBlocks(worker, p, phase, part, day, hours)
	}
	return ps.placeHours(worker, p, phase, part, day, hour, hours)
}

// placeBlocks handles the infinite-capacity modes: the unplanned bucket
// and the machine pools. The requirement is split into blocks of at most
// one workday unit, one block per day, always at offset 0. Hour accounting
// per block is independent, so blocks from different projects share days.
func (ps *pass) placeBlocks(worker string, p *domain.Project, phase string, part *int, day time.Time, hours float64) placement {
	var pl placement
	remaining := hours
	for remaining > 0 {
		day, _ = ps.skipBlocked(worker, day, 0)
		alloc := remaining
		if alloc > calendar.HoursPerDay {
			alloc = calendar.HoursPerDay
		}
		t := ps.newTask(p, phase, part, day, 0, alloc)
		ps.sched.add(worker, calendar.Day(day), t)
		ps.recordPlaced(&pl, day, 0)
		remaining -= alloc
		day = calendar.NextWorkday(day)
	}
	pl.resumeDay, pl.resumeHour = day, 0
	return pl
}

// placeHours handles standard worker placement: scan the day's tasks for
// the first gap at or after the cursor and fill it, spilling the remainder
// onto following workdays.
func (ps *pass) placeHours(worker string, p *domain.Project, phase string, part *int, day time.Time, hour float64, hours float64) placement {
	var pl placement
	remaining := hours
	for remaining > 0 {
		day, hour = ps.skipBlocked(worker, day, hour)
		dayKey := calendar.Day(day)
		limit := ps.limits.For(worker, dayKey, phase)
		if hour >= limit {
			day, hour = calendar.NextWorkday(day), 0
			continue
		}

		pos := hour
		gapEnd := limit
		for _, t := range ps.sched.TasksOn(worker, dayKey) {
			if t.Start > pos {
				if t.Start < gapEnd {
					gapEnd = t.Start
				}
				break
			}
			if t.End() > pos {
				pos = t.End()
			}
		}

		gap := gapEnd - pos
		if gap <= 0 || pos >= limit {
			day, hour = calendar.NextWorkday(day), 0
			continue
		}

		alloc := remaining
		if alloc > gap {
			alloc = gap
		}
		t := ps.newTask(p, phase, part, day, pos, alloc)
		ps.sched.add(worker, dayKey, t)
		ps.recordPlaced(&pl, day, pos)
		remaining -= alloc

		if pos+alloc >= limit {
			day, hour = calendar.NextWorkday(day), 0
		} else {
			hour = pos + alloc
		}
	}
	pl.resumeDay, pl.resumeHour = day, hour
	return pl
}

// placeRange handles the procurement phase: a zero-hour marker task on
// every workday from the cursor through the target end day inclusive,
// with no hour accounting at all.
func (ps *pass) placeRange(worker string, p *domain.Project, phase string, day time.Time, hour float64, targetDay string) placement {
	var pl placement
	day, _ = ps.skipBlocked(worker, day, hour)
	target := calendar.ParseDayOr(targetDay, day)

	for d := day; !d.After(target); {
		t := ps.newTask(p, phase, nil, d, 0, 0)
		ps.sched.add(worker, calendar.Day(d), t)
		ps.recordPlaced(&pl, d, 0)
		d, _ = ps.skipBlocked(worker, calendar.NextWorkday(d), 0)
	}

	if !pl.placed {
		pl.resumeDay, pl.resumeHour = day, 0
		return pl
	}
	pl.resumeDay, pl.resumeHour = calendar.NextWorkday(pl.lastDay), 0
	return pl
}

func (ps *pass) recordPlaced(pl *placement, day time.Time, hour float64) {
	if !pl.placed {
		pl.firstDay, pl.firstHour = day, hour
		pl.placed = true
	}
	if day.After(pl.lastDay) {
		pl.lastDay = day
	}
}

// newTask builds a task with its derived timestamps and late flag.
func (ps *pass) newTask(p *domain.Project, phase string, part *int, day time.Time, start, hours float64) *domain.Task {
	startsAt, endsAt := calendar.Timestamps(day, start, hours)
	t := &domain.Task{
		ProjectID:    p.ID,
		Project:      p.Name,
		Client:       p.Client,
		Phase:        phase,
		Part:         part,
		Day:          calendar.Day(day),
		Hours:        hours,
		Start:        start,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Color:        p.Color,
		DueDate:      p.DueDate,
		DueConfirmed: p.DueConfirmed,
		Blocked:      p.Blocked,
	}
	if due, ok := calendar.ParseDay(p.DueDate); ok && day.After(due) {
		t.Late = true
	}
	ps.phaseTasks = append(ps.phaseTasks, t)
	return t
}

// finishPhase tags every task placed for the phase with its due status
// and phase-deadline status, then resets the phase buffer. It runs once
// per phase, after all of the phase's segments are placed, so the tags
// reflect the day the whole phase finishes.
func (ps *pass) finishPhase(p *domain.Project, phase string, lastDay time.Time) {
	tasks := ps.phaseTasks
	ps.phaseTasks = nil
	tagPhaseStatuses(p, phase, tasks, lastDay)
}

// tagFrozen applies the same status tags to a phase's pre-seeded locked
// tasks, using the latest locked day as the phase end.
func (ps *pass) tagFrozen(p *domain.Project, phase string, lastDay time.Time) {
	tagPhaseStatuses(p, phase, ps.frozenTasks[phaseKey(p.ID, phase)], lastDay)
}

func tagPhaseStatuses(p *domain.Project, phase string, tasks []*domain.Task, lastDay time.Time) {
	if len(tasks) == 0 || lastDay.IsZero() {
		return
	}

	if due, ok := calendar.ParseDay(p.DueDate); ok {
		if lastDay.After(due) {
			for _, t := range tasks {
				day, _ := parseDayKey(t.Day)
				if day.After(due) {
					t.DueStatus = domain.DueAfter
				} else {
					t.DueStatus = domain.DueBefore
				}
			}
		} else {
			for _, t := range tasks {
				t.DueStatus = domain.DueMet
			}
		}
	}

	if deadline, ok := calendar.ParseDay(p.PhaseDeadline(phase)); ok {
		status := domain.PhaseDeadlineMet
		if lastDay.After(deadline) {
			status = domain.PhaseDeadlineLate
		}
		for _, t := range tasks {
			t.Deadline = status
		}
	}
}
