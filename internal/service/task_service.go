package service

import (
	"context"
	"fmt"
	"time"

	"github.com/locvowork/todolist/internal/domain"
)

type TaskService interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, ownerID, text string, priority domain.Priority) (*domain.Task, error)
	UpdatePriority(ctx context.Context, ownerID, taskID string, priority domain.Priority) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

type taskService struct {
	repo domain.TaskRepository
	now  func() time.Time
}

// NewTaskService uses now as the clock for creation dates; nil means
// time.Now.
func NewTaskService(repo domain.TaskRepository, now func() time.Time) TaskService {
	if now == nil {
		now = time.Now
	}
	return &taskService{repo: repo, now: now}
}

func (s *taskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create stamps the task with the current time, truncated to milliseconds so
// every backend stores the same instant.
func (s *taskService) Create(ctx context.Context, ownerID, text string, priority domain.Priority) (*domain.Task, error) {
	created := s.now().UTC().Truncate(time.Millisecond)
	t := &domain.Task{
		Task:              text,
		Priority:          priority,
		DateCreated:       created,
		SuggestedDeadline: domain.ComputeDeadline(created, priority),
		OwnerID:           ownerID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdatePriority recomputes the deadline from the task's original creation
// date, not from the time of the update.
func (s *taskService) UpdatePriority(ctx context.Context, ownerID, taskID string, priority domain.Priority) (*domain.Task, error) {
	current, err := s.repo.FindOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	deadline := domain.ComputeDeadline(current.DateCreated, priority)
	updated, err := s.repo.UpdatePriority(ctx, ownerID, taskID, priority, deadline)
	if err != nil {
		return nil, fmt.Errorf("update priority: %w", err)
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.repo.Delete(ctx, ownerID, taskID)
}
