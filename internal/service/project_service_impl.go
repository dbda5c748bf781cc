package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Phases == nil {
		p.Phases = make(map[string]domain.Requirement)
	}
	if p.Assigned == nil {
		p.Assigned = make(map[string]string)
	}
	return s.projects.Create(ctx, p)
}

// Get resolves a project by ID first, then by name, so commands accept
// either form.
func (s *projectService) Get(ctx context.Context, idOrName string) (*domain.Project, error) {
	if p, err := s.projects.GetByID(ctx, idOrName); err == nil {
		return p, nil
	}
	return s.projects.GetByName(ctx, idOrName)
}

func (s *projectService) List(ctx context.Context) ([]contract.ProjectSummary, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]contract.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = contract.SummarizeProject(p)
	}
	return summaries, nil
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetPhase(ctx context.Context, idOrName, phase string, req domain.Requirement) error {
	if rank, _ := domain.PhaseRank(phase); rank >= len(domain.PhaseOrder) {
		return fmt.Errorf("unknown phase: %q", phase)
	}
	p, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	if p.Phases == nil {
		p.Phases = make(map[string]domain.Requirement)
	}
	if req.IsZero() {
		delete(p.Phases, phase)
	} else {
		p.Phases[phase] = req
	}
	// Stale pins would replay the old shape.
	p.ClearSegmentStarts(phase)
	return s.projects.Update(ctx, p)
}

func (s *projectService) Assign(ctx context.Context, idOrName, phase, worker string, part *int) error {
	p, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	if _, ok := p.Phases[phase]; !ok {
		return fmt.Errorf("project has no phase %q", phase)
	}

	if part == nil {
		if p.Assigned == nil {
			p.Assigned = make(map[string]string)
		}
		p.Assigned[phase] = worker
	} else {
		if p.SegmentWorkers == nil {
			p.SegmentWorkers = make(map[string][]string)
		}
		ws := p.SegmentWorkers[phase]
		for len(ws) <= *part {
			ws = append(ws, "")
		}
		ws[*part] = worker
		p.SegmentWorkers[phase] = ws
	}
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetBlocked(ctx context.Context, idOrName string, blocked bool) error {
	p, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	p.Blocked = blocked
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, idOrName string) error {
	p, err := s.Get(ctx, idOrName)
	if err != nil {
		return err
	}
	return s.projects.Delete(ctx, p.ID)
}
