package service

import (
	"context"

	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/scheduler"
)

type ScheduleService interface {
	// Plan runs a full scheduling pass over the persisted state, writes
	// back the pinned segment starts and computed end dates, replaces the
	// stored conflict set and returns the resulting calendar.
	Plan(ctx context.Context) (contract.ScheduleView, error)
	// Preview runs the same pass without persisting anything.
	Preview(ctx context.Context) (contract.ScheduleView, error)
	Mapping(ctx context.Context) (map[string][]scheduler.SegmentRef, error)
	PhaseStarts(ctx context.Context) (map[string]map[string]string, error)
	// Freeze locks a phase's current placement so later passes reproduce
	// it verbatim. Unfreeze releases the lock and replays the schedule so
	// displaced work settles deterministically.
	Freeze(ctx context.Context, projectID, phase string) error
	Unfreeze(ctx context.Context, projectID, phase string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, idOrName string) (*domain.Project, error)
	List(ctx context.Context) ([]contract.ProjectSummary, error)
	Update(ctx context.Context, p *domain.Project) error
	SetPhase(ctx context.Context, idOrName, phase string, req domain.Requirement) error
	Assign(ctx context.Context, idOrName, phase, worker string, part *int) error
	SetBlocked(ctx context.Context, idOrName string, blocked bool) error
	Delete(ctx context.Context, idOrName string) error
}

type WorkerService interface {
	List(ctx context.Context) ([]contract.WorkerView, error)
	Add(ctx context.Context, name string) error
	// Rename cascades through every structure that references the worker
	// by name, atomically.
	Rename(ctx context.Context, oldName, newName string) error
	SetActive(ctx context.Context, name string, active bool) error
	// SetOrder pins the roster display order; workers not named keep
	// their table order after the pinned ones.
	SetOrder(ctx context.Context, names []string) error
	SetNote(ctx context.Context, name, note string) error
	SetFlatLimit(ctx context.Context, name string, hours float64) error
	ClearFlatLimit(ctx context.Context, name string) error
	SetDayLimit(ctx context.Context, name, day string, hours float64) error
	SetGlobalCap(ctx context.Context, day string, hours float64) error
	// Manual entries are hand-placed display blocks, parked on the
	// unplanned row unless a worker is named.
	ListManual(ctx context.Context) ([]domain.ManualEntry, error)
	AddManual(ctx context.Context, worker, day string, hours float64, note string) (domain.ManualEntry, error)
	DeleteManual(ctx context.Context, id string) error
}

type VacationService interface {
	List(ctx context.Context) ([]domain.Vacation, error)
	Add(ctx context.Context, worker, start, end string) (domain.Vacation, error)
	Delete(ctx context.Context, id string) error
}

type ConflictService interface {
	List(ctx context.Context, includeDismissed bool) ([]domain.Conflict, error)
	Dismiss(ctx context.Context, key string) error
}
