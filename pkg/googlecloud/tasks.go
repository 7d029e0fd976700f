package googlecloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/todolist/internal/domain"
)

type TaskStore struct {
	ds *datastore.Client
}

// taskKey builds the key of taskID under ownerID. Both ids must parse; a
// task stored under a different owner has a different key and is simply not
// found.
func taskKey(ownerID, taskID string) (*datastore.Key, bool) {
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, false
	}
	id, ok := parseID(taskID)
	if !ok {
		return nil, false
	}
	return datastore.IDKey(KindTask, id, datastore.IDKey(KindUser, owner, nil)), true
}

// ListByOwner uses an ancestor query, which is strongly consistent, so a task
// created a moment ago is always listed.
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []domain.Task{}, nil
	}
	parentKey := datastore.IDKey(KindUser, owner, nil)
	query := datastore.NewQuery(KindTask).Ancestor(parentKey)

	var entities []taskEntity
	keys, err := s.ds.GetAll(ctx, query, &entities)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, len(keys))
	for i, key := range keys {
		tasks[i] = entities[i].toDomain(key.ID, owner)
	}
	return tasks, nil
}

func (s *TaskStore) Create(ctx context.Context, t *domain.Task) error {
	owner, ok := parseID(t.OwnerID)
	if !ok {
		return fmt.Errorf("create task: invalid owner id %q", t.OwnerID)
	}
	parentKey := datastore.IDKey(KindUser, owner, nil)
	// IncompleteKey will auto-generate an int64 ID
	key := datastore.IncompleteKey(KindTask, parentKey)

	newKey, err := s.ds.Put(ctx, key, &taskEntity{
		Task:              t.Task,
		Priority:          string(t.Priority),
		DateCreated:       t.DateCreated,
		SuggestedDeadline: t.SuggestedDeadline,
	})
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID = formatID(newKey.ID)
	return nil
}

func (s *TaskStore) FindOwned(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	key, ok := taskKey(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var e taskEntity
	if err := s.ds.Get(ctx, key, &e); err != nil {
		return nil, WrapDatastoreError(err)
	}
	t := e.toDomain(key.ID, key.Parent.ID)
	return &t, nil
}

func (s *TaskStore) UpdatePriority(ctx context.Context, ownerID, taskID string, p domain.Priority, deadline time.Time) (*domain.Task, error) {
	key, ok := taskKey(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	var updated taskEntity
	_, err := s.ds.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var e taskEntity
		if err := tx.Get(key, &e); err != nil {
			return WrapDatastoreError(err)
		}
		e.Priority = string(p)
		e.SuggestedDeadline = deadline
		if _, err := tx.Put(key, &e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		if IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task priority: %w", err)
	}

	t := updated.toDomain(key.ID, key.Parent.ID)
	return &t, nil
}

// Delete is idempotent: Datastore does not report deleting a missing key.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	key, ok := taskKey(ownerID, taskID)
	if !ok {
		return nil
	}
	if err := s.ds.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
