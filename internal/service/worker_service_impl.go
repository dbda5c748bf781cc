package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/roster"
)

type workerService struct {
	roster    repository.RosterRepo
	overrides repository.OverrideRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewWorkerService(
	rosterRepo repository.RosterRepo,
	overrides repository.OverrideRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkerService {
	return &workerService{
		roster:    rosterRepo,
		overrides: overrides,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workerService) build(ctx context.Context) (*roster.Roster, error) {
	inputs, err := s.roster.Inputs(ctx)
	if err != nil {
		return nil, err
	}
	return roster.Build(inputs), nil
}

func (s *workerService) List(ctx context.Context) ([]contract.WorkerView, error) {
	ros, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	limits, err := s.overrides.Limits(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]contract.WorkerView, 0, len(ros.Workers()))
	for _, w := range ros.Workers() {
		note, err := s.roster.Note(ctx, w.Name)
		if err != nil {
			return nil, err
		}
		flat, hasFlat := limits.Flat[w.Name]
		views = append(views, contract.WorkerView{
			Name:         w.Name,
			Capabilities: w.Capabilities,
			Active:       w.Active,
			Note:         note,
			FlatLimit:    flat,
			HasFlatLimit: hasFlat,
		})
	}
	return views, nil
}

func (s *workerService) Add(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("worker name is required")
	}
	if domain.IsVirtualWorker(name) {
		return fmt.Errorf("%q is a reserved resource name", name)
	}
	ros, err := s.build(ctx)
	if err != nil {
		return err
	}
	if _, exists := ros.Get(name); exists {
		return fmt.Errorf("worker %q already exists", name)
	}
	return s.roster.AddWorker(ctx, name)
}

// Rename cascades through every structure that references the worker by
// name. The whole cascade runs in one transaction: a partial rename would
// silently detach assignments, overrides and vacations.
func (s *workerService) Rename(ctx context.Context, oldName, newName string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rename-worker",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"from": oldName, "to": newName},
		})
	}()

	ros, err := s.build(ctx)
	if err != nil {
		return err
	}
	if err = ros.ValidateRename(oldName, newName); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rosterRepo := repository.NewSQLiteRosterRepo(tx)
		overrideRepo := repository.NewSQLiteOverrideRepo(tx)
		vacationRepo := repository.NewSQLiteVacationRepo(tx)
		projectRepo := repository.NewSQLiteProjectRepo(tx)

		if err := rosterRepo.RenameWorker(ctx, oldName, newName); err != nil {
			return err
		}
		if err := overrideRepo.RenameWorker(ctx, oldName, newName); err != nil {
			return err
		}
		if err := vacationRepo.RenameWorker(ctx, oldName, newName); err != nil {
			return err
		}

		projects, err := projectRepo.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if roster.RenameInProject(p, oldName, newName) {
				if err := projectRepo.Update(ctx, p); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *workerService) SetActive(ctx context.Context, name string, active bool) error {
	ros, err := s.build(ctx)
	if err != nil {
		return err
	}
	if _, ok := ros.Get(name); !ok {
		return fmt.Errorf("worker not found: %q", name)
	}
	return s.roster.SetActive(ctx, name, active)
}

func (s *workerService) SetOrder(ctx context.Context, names []string) error {
	ros, err := s.build(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := ros.Get(name); !ok {
			return fmt.Errorf("worker not found: %q", name)
		}
	}
	return s.roster.SetOrder(ctx, names)
}

func (s *workerService) SetNote(ctx context.Context, name, note string) error {
	return s.roster.SetNote(ctx, name, note)
}

func (s *workerService) SetFlatLimit(ctx context.Context, name string, hours float64) error {
	if err := s.validateLimit(ctx, name, hours); err != nil {
		return err
	}
	return s.overrides.SetFlat(ctx, name, hours)
}

func (s *workerService) ClearFlatLimit(ctx context.Context, name string) error {
	return s.overrides.ClearFlat(ctx, name)
}

func (s *workerService) SetDayLimit(ctx context.Context, name, day string, hours float64) error {
	if err := s.validateLimit(ctx, name, hours); err != nil {
		return err
	}
	return s.overrides.SetDay(ctx, name, day, hours)
}

func (s *workerService) SetGlobalCap(ctx context.Context, day string, hours float64) error {
	if !roster.ValidOverride(hours) {
		return fmt.Errorf("hour limit must be between 1 and 12")
	}
	return s.overrides.SetGlobalCap(ctx, day, hours)
}

func (s *workerService) ListManual(ctx context.Context) ([]domain.ManualEntry, error) {
	return s.roster.ListManual(ctx)
}

func (s *workerService) AddManual(ctx context.Context, worker, day string, hours float64, note string) (domain.ManualEntry, error) {
	if note == "" {
		return domain.ManualEntry{}, fmt.Errorf("manual entry needs a note")
	}
	if hours <= 0 {
		return domain.ManualEntry{}, fmt.Errorf("manual entry needs positive hours")
	}
	parsed, ok := calendar.ParseDay(day)
	if !ok {
		return domain.ManualEntry{}, fmt.Errorf("invalid day: %q", day)
	}
	if worker != "" && !domain.IsVirtualWorker(worker) {
		ros, err := s.build(ctx)
		if err != nil {
			return domain.ManualEntry{}, err
		}
		if _, found := ros.Get(worker); !found {
			return domain.ManualEntry{}, fmt.Errorf("worker not found: %q", worker)
		}
	}

	e := domain.ManualEntry{
		ID:     uuid.NewString(),
		Worker: worker,
		Day:    calendar.Day(parsed),
		Hours:  hours,
		Note:   note,
	}
	if err := s.roster.AddManual(ctx, e); err != nil {
		return domain.ManualEntry{}, err
	}
	return e, nil
}

func (s *workerService) DeleteManual(ctx context.Context, id string) error {
	return s.roster.DeleteManual(ctx, id)
}

func (s *workerService) validateLimit(ctx context.Context, name string, hours float64) error {
	if !roster.ValidOverride(hours) {
		return fmt.Errorf("hour limit must be between 1 and 12")
	}
	ros, err := s.build(ctx)
	if err != nil {
		return err
	}
	if _, ok := ros.Get(name); !ok {
		return fmt.Errorf("worker not found: %q", name)
	}
	return nil
}
