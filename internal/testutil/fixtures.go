package testutil

import (
	"github.com/google/uuid"
	"github.com/imirazoki/lantegi/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithClient(client string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = client
	}
}

func WithDueDate(day string, confirmed bool) ProjectOption {
	return func(p *domain.Project) {
		p.DueDate = day
		p.DueConfirmed = confirmed
	}
}

func WithPhase(phase string, req domain.Requirement, worker string) ProjectOption {
	return func(p *domain.Project) {
		p.Phases[phase] = req
		if worker != "" {
			p.Assigned[phase] = worker
		}
	}
}

func WithFrozenTask(ft domain.FrozenTask) ProjectOption {
	return func(p *domain.Project) {
		p.FrozenTasks = append(p.FrozenTasks, ft)
	}
}

func WithBlocked() ProjectOption {
	return func(p *domain.Project) {
		p.Blocked = true
	}
}

// NewTestProject builds a planned project starting on the given day with no
// phases; add them through options.
func NewTestProject(name, startDay string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Client:    "Acme",
		Planned:   true,
		StartDate: startDay,
		Phases:    make(map[string]domain.Requirement),
		Assigned:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestVacation builds a vacation record for an inclusive day range.
func NewTestVacation(worker, start, end string) domain.Vacation {
	return domain.Vacation{
		ID:     uuid.New().String(),
		Worker: worker,
		Start:  start,
		End:    end,
	}
}
