package service

import (
	"context"
	"fmt"
	"time"

	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/roster"
	"github.com/imirazoki/lantegi/internal/scheduler"
)

type scheduleService struct {
	projects  repository.ProjectRepo
	roster    repository.RosterRepo
	overrides repository.OverrideRepo
	vacations repository.VacationRepo
	conflicts repository.ConflictRepo
	observer  UseCaseObserver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	rosterRepo repository.RosterRepo,
	overrides repository.OverrideRepo,
	vacations repository.VacationRepo,
	conflicts repository.ConflictRepo,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects:  projects,
		roster:    rosterRepo,
		overrides: overrides,
		vacations: vacations,
		conflicts: conflicts,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// snapshot loads everything a pass needs up front. Overrides are
// sanitized against the effective roster so stale rows never reach the
// placement loop.
func (s *scheduleService) snapshot(ctx context.Context) (scheduler.Input, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return scheduler.Input{}, err
	}
	inputs, err := s.roster.Inputs(ctx)
	if err != nil {
		return scheduler.Input{}, err
	}
	ros := roster.Build(inputs)

	raw, err := s.overrides.Limits(ctx)
	if err != nil {
		return scheduler.Input{}, err
	}
	limits := &roster.Limits{
		Flat:        roster.SanitizeFlat(raw.Flat, ros),
		PerDay:      roster.SanitizePerDay(raw.PerDay, ros),
		GlobalDaily: roster.SanitizeGlobalDaily(raw.GlobalDaily),
	}

	vacations, err := s.vacations.List(ctx)
	if err != nil {
		return scheduler.Input{}, err
	}

	return scheduler.Input{
		Projects:  projects,
		Roster:    ros,
		Limits:    limits,
		Vacations: vacations,
	}, nil
}

func (s *scheduleService) Plan(ctx context.Context) (view contract.ScheduleView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	in, err := s.snapshot(ctx)
	if err != nil {
		return contract.ScheduleView{}, err
	}
	fields["projects"] = len(in.Projects)

	res := scheduler.Run(in)
	fields["conflicts"] = len(res.Conflicts)

	// The pass wrote segment starts and end dates into the loaded
	// projects; persist them so the next pass replays identically.
	for _, p := range in.Projects {
		if err = s.projects.SaveScheduleState(ctx, p); err != nil {
			return contract.ScheduleView{}, err
		}
	}
	if err = s.conflicts.ReplaceAll(ctx, res.Conflicts); err != nil {
		return contract.ScheduleView{}, err
	}

	view = contract.NewScheduleView(res)
	if err = s.overlayManual(ctx, &view); err != nil {
		return contract.ScheduleView{}, err
	}
	return view, nil
}

// overlayManual adds the hand-placed blocks to the rendered grid. They
// are display-only and never constrain placement.
func (s *scheduleService) overlayManual(ctx context.Context, view *contract.ScheduleView) error {
	entries, err := s.roster.ListManual(ctx)
	if err != nil {
		return err
	}
	view.Calendar.MergeManual(entries)
	return nil
}

func (s *scheduleService) Preview(ctx context.Context) (contract.ScheduleView, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		return contract.ScheduleView{}, err
	}
	cloned := make([]*domain.Project, len(in.Projects))
	for i, p := range in.Projects {
		cloned[i] = p.Clone()
	}
	in.Projects = cloned
	view := contract.NewScheduleView(scheduler.Run(in))
	if err := s.overlayManual(ctx, &view); err != nil {
		return contract.ScheduleView{}, err
	}
	return view, nil
}

func (s *scheduleService) Mapping(ctx context.Context) (map[string][]scheduler.SegmentRef, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.Mapping(in), nil
}

func (s *scheduleService) PhaseStarts(ctx context.Context) (map[string]map[string]string, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.PhaseStarts(in), nil
}

func (s *scheduleService) Freeze(ctx context.Context, projectID, phase string) error {
	in, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	var target *domain.Project
	for _, p := range in.Projects {
		if p.ID == projectID {
			target = p
			break
		}
	}
	if target == nil {
		return fmt.Errorf("project not found: %q", projectID)
	}
	if len(target.FrozenForPhase(phase)) > 0 {
		return nil
	}

	res := scheduler.Run(in)
	var frozen []domain.FrozenTask
	for _, worker := range res.Schedule.Workers() {
		for _, day := range res.Schedule.AllDays() {
			for _, t := range res.Schedule.TasksOn(worker, day) {
				if t.ProjectID != projectID || t.Phase != phase || t.Frozen {
					continue
				}
				frozen = append(frozen, domain.FrozenTask{
					Worker: worker,
					Day:    t.Day,
					Start:  t.Start,
					Hours:  t.Hours,
					Phase:  t.Phase,
					Part:   t.Part,
				})
			}
		}
	}
	if len(frozen) == 0 {
		return fmt.Errorf("phase %q has no placed work to freeze", phase)
	}

	target.FrozenTasks = append(target.FrozenTasks, frozen...)
	return s.projects.SaveScheduleState(ctx, target)
}

func (s *scheduleService) Unfreeze(ctx context.Context, projectID, phase string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	kept := p.FrozenTasks[:0]
	for _, ft := range p.FrozenTasks {
		if ft.Phase != phase {
			kept = append(kept, ft)
		}
	}
	if len(kept) == len(p.FrozenTasks) {
		return fmt.Errorf("phase %q is not frozen", phase)
	}
	p.FrozenTasks = kept
	p.ClearSegmentStarts(phase)
	if err := s.projects.SaveScheduleState(ctx, p); err != nil {
		return err
	}

	// Replay immediately so the released phase and anything it displaced
	// settle into their new slots.
	_, err = s.Plan(ctx)
	return err
}
