package service

import (
	"context"
	"fmt"

	dom "storefront/internal/domain"
	"storefront/internal/repo"
)

// TaskService exposes generated tasks to the back office.
type TaskService struct {
	repo repo.TaskRepo
	now  Clock
}

func NewTaskService(r repo.TaskRepo) *TaskService {
	return &TaskService{repo: r, now: systemClock}
}

func (s *TaskService) List(ctx context.Context, f dom.TaskFilter) ([]dom.Task, error) {
	if f.Status != "" && f.Status != dom.TaskOpen && f.Status != dom.TaskDone {
		return nil, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	return s.repo.List(ctx, f)
}

// Complete marks an open task done; unknown or already done tasks are not found.
func (s *TaskService) Complete(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.Complete(ctx, id, s.now())
	return t, mapRepoErr(err)
}
