package domain

import (
	"context"
	"time"
)

// Task is a single to-do item owned by one user.
type Task struct {
	ID                string    `json:"_id"`
	Task              string    `json:"task"`
	Priority          Priority  `json:"priority"`
	DateCreated       time.Time `json:"dateCreated"`
	SuggestedDeadline time.Time `json:"suggestedDeadline"`
	OwnerID           string    `json:"ownerId"`
}

// TaskRepository persists tasks. Every method is scoped by ownerID: a task
// that exists under another owner behaves exactly like a missing one.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	// Create stores t and fills in t.ID.
	Create(ctx context.Context, t *Task) error
	// FindOwned returns ErrNotFound unless taskID exists under ownerID.
	FindOwned(ctx context.Context, ownerID, taskID string) (*Task, error)
	// UpdatePriority sets priority and suggested deadline on the owned task
	// and returns the stored result, or ErrNotFound.
	UpdatePriority(ctx context.Context, ownerID, taskID string, p Priority, deadline time.Time) (*Task, error)
	// Delete removes the owned task. Missing or foreign ids are a no-op.
	Delete(ctx context.Context, ownerID, taskID string) error
}
