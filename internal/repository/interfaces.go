package repository

import (
	"context"

	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/roster"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// SaveScheduleState persists only the fields a scheduling pass writes
	// back: pinned segment starts, frozen tasks and the computed end date.
	SaveScheduleState(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type RosterRepo interface {
	Inputs(ctx context.Context) (roster.Inputs, error)
	AddWorker(ctx context.Context, name string) error
	// RenameWorker rewrites every roster-side record keyed by the old name
	// and records the rename so the static capability table resolves to the
	// new name. Project-side references are cascaded by the caller.
	RenameWorker(ctx context.Context, oldName, newName string) error
	SetOrder(ctx context.Context, names []string) error
	SetActive(ctx context.Context, name string, active bool) error
	Note(ctx context.Context, worker string) (string, error)
	SetNote(ctx context.Context, worker, note string) error
	ListManual(ctx context.Context) ([]domain.ManualEntry, error)
	AddManual(ctx context.Context, e domain.ManualEntry) error
	DeleteManual(ctx context.Context, id string) error
}

type OverrideRepo interface {
	// Limits returns the raw persisted override maps. Sanitization happens
	// at roster build time so stale rows never halt scheduling.
	Limits(ctx context.Context) (roster.Limits, error)
	SetFlat(ctx context.Context, worker string, hours float64) error
	ClearFlat(ctx context.Context, worker string) error
	SetDay(ctx context.Context, worker, day string, hours float64) error
	ClearDay(ctx context.Context, worker, day string) error
	SetGlobalCap(ctx context.Context, day string, hours float64) error
	ClearGlobalCap(ctx context.Context, day string) error
	RenameWorker(ctx context.Context, oldName, newName string) error
}

type VacationRepo interface {
	List(ctx context.Context) ([]domain.Vacation, error)
	ListByWorker(ctx context.Context, worker string) ([]domain.Vacation, error)
	Add(ctx context.Context, v domain.Vacation) error
	Delete(ctx context.Context, id string) error
	RenameWorker(ctx context.Context, oldName, newName string) error
}

type ConflictRepo interface {
	// ReplaceAll swaps the stored conflict set for the outcome of the
	// latest scheduling pass. Dismissals survive the swap: they are keyed
	// separately and re-applied on read.
	ReplaceAll(ctx context.Context, conflicts []domain.Conflict) error
	List(ctx context.Context) ([]domain.Conflict, error)
	ListActive(ctx context.Context) ([]domain.Conflict, error)
	Dismiss(ctx context.Context, key string) error
}
