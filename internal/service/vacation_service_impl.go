package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/repository"
	"github.com/imirazoki/lantegi/internal/roster"
)

type vacationService struct {
	vacations repository.VacationRepo
	roster    repository.RosterRepo
}

func NewVacationService(vacations repository.VacationRepo, rosterRepo repository.RosterRepo) VacationService {
	return &vacationService{vacations: vacations, roster: rosterRepo}
}

func (s *vacationService) List(ctx context.Context) ([]domain.Vacation, error) {
	return s.vacations.List(ctx)
}

func (s *vacationService) Add(ctx context.Context, worker, start, end string) (domain.Vacation, error) {
	inputs, err := s.roster.Inputs(ctx)
	if err != nil {
		return domain.Vacation{}, err
	}
	if _, ok := roster.Build(inputs).Get(worker); !ok {
		return domain.Vacation{}, fmt.Errorf("worker not found: %q", worker)
	}

	startDay, ok := calendar.ParseDay(start)
	if !ok {
		return domain.Vacation{}, fmt.Errorf("invalid start day: %q", start)
	}
	endDay, ok := calendar.ParseDay(end)
	if !ok {
		return domain.Vacation{}, fmt.Errorf("invalid end day: %q", end)
	}
	if endDay.Before(startDay) {
		return domain.Vacation{}, fmt.Errorf("vacation ends before it starts")
	}

	v := domain.Vacation{
		ID:     uuid.New().String(),
		Worker: worker,
		Start:  calendar.Day(startDay),
		End:    calendar.Day(endDay),
	}
	if err := s.vacations.Add(ctx, v); err != nil {
		return domain.Vacation{}, err
	}
	return v, nil
}

func (s *vacationService) Delete(ctx context.Context, id string) error {
	return s.vacations.Delete(ctx, id)
}
