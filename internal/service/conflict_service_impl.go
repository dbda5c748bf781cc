package service

import (
	"context"

	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/repository"
)

type conflictService struct {
	conflicts repository.ConflictRepo
}

func NewConflictService(conflicts repository.ConflictRepo) ConflictService {
	return &conflictService{conflicts: conflicts}
}

func (s *conflictService) List(ctx context.Context, includeDismissed bool) ([]domain.Conflict, error) {
	if includeDismissed {
		return s.conflicts.List(ctx)
	}
	return s.conflicts.ListActive(ctx)
}

func (s *conflictService) Dismiss(ctx context.Context, key string) error {
	return s.conflicts.Dismiss(ctx, key)
}
