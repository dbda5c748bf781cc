// Package scheduler implements the greedy placement engine: it allocates
// every project's phases, in order, onto a per-worker day calendar,
// honoring capacities, vacations, frozen tasks and due dates. A pass is
// deterministic and side-effect-free on its inputs except for the
// idempotent segment-start write-back on the project records.
package scheduler

import (
	"sort"
	"time"

	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/domain"
)

// Schedule is the per-worker, per-day task calendar produced by a pass.
// Days are keyed by calendar.DayLayout.
type Schedule map[string]map[string][]*domain.Task

// TasksOn returns the tasks for a worker on a day, sorted by start offset.
func (s Schedule) TasksOn(worker, day string) []*domain.Task {
	tasks := append([]*domain.Task(nil), s[worker][day]...)
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Start < tasks[j].Start })
	return tasks
}

// Days returns the sorted day keys that carry tasks for a worker.
func (s Schedule) Days(worker string) []string {
	days := make([]string, 0, len(s[worker]))
	for d := range s[worker] {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// AllDays returns the sorted union of day keys across all workers.
func (s Schedule) AllDays() []string {
	seen := make(map[string]bool)
	for _, byDay := range s {
		for d := range byDay {
			seen[d] = true
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Workers returns the sorted worker names present in the schedule.
func (s Schedule) Workers() []string {
	names := make([]string, 0, len(s))
	for w := range s {
		names = append(names, w)
	}
	sort.Strings(names)
	return names
}

func (s Schedule) add(worker, day string, t *domain.Task) {
	byDay, ok := s[worker]
	if !ok {
		byDay = make(map[string][]*domain.Task)
		s[worker] = byDay
	}
	byDay[day] = append(byDay[day], t)
}

// hasVacation reports whether the worker's day carries the full-day
// vacation placeholder seeded by the pre-pass.
func (s Schedule) hasVacation(worker, day string) bool {
	for _, t := range s[worker][day] {
		if t.Phase == domain.VacationPhase {
			return true
		}
	}
	return false
}

// VacationIndex maps worker → blocked day set, expanded from vacation
// records with weekends excluded.
type VacationIndex map[string]map[string]bool

// BuildVacationIndex expands every vacation record's inclusive date range.
// Records with malformed bounds are dropped; a corrupt row must not block
// the whole batch.
func BuildVacationIndex(vacations []domain.Vacation) VacationIndex {
	idx := make(VacationIndex)
	for _, v := range vacations {
		start, ok := calendar.ParseDay(v.Start)
		if !ok {
			continue
		}
		end, ok := calendar.ParseDay(v.End)
		if !ok {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if calendar.IsWeekend(d) {
				continue
			}
			days, ok := idx[v.Worker]
			if !ok {
				days = make(map[string]bool)
				idx[v.Worker] = days
			}
			days[calendar.Day(d)] = true
		}
	}
	return idx
}

// Blocked reports whether the worker is on vacation on the given day.
func (v VacationIndex) Blocked(worker, day string) bool {
	return v[worker][day]
}

// sortedDays returns the blocked days for deterministic seeding.
func (v VacationIndex) sortedDays(worker string) []string {
	days := make([]string, 0, len(v[worker]))
	for d := range v[worker] {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// sortedWorkers returns the workers with vacations in stable order.
func (v VacationIndex) sortedWorkers() []string {
	workers := make([]string, 0, len(v))
	for w := range v {
		workers = append(workers, w)
	}
	sort.Strings(workers)
	return workers
}

func parseDayKey(key string) (time.Time, bool) {
	return calendar.ParseDay(key)
}
