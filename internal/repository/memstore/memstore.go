// Package memstore keeps users, tasks and sessions in process memory. It is
// meant for local development and tests; nothing survives a restart.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/todolist/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byName   map[string]string
	tasks    map[string]domain.Task
	order    []string
	sessions map[string]domain.Session
	now      func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		byName:   make(map[string]string),
		tasks:    make(map[string]domain.Task),
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (s *Store) Users() *UserStore       { return &UserStore{s} }
func (s *Store) Tasks() *TaskStore       { return &TaskStore{s} }
func (s *Store) Sessions() *SessionStore { return &SessionStore{s} }

type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, taken := u.s.byName[user.Username]; taken {
		return domain.ErrConflict
	}
	user.ID = uuid.NewString()
	u.s.users[user.ID] = *user
	u.s.byName[user.Username] = user.ID
	return nil
}

func (u *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	id, ok := u.s.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := u.s.users[id]
	return &user, nil
}

func (u *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

type TaskStore struct{ s *Store }

// ListByOwner returns tasks in insertion order.
func (t *TaskStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := []domain.Task{}
	for _, id := range t.s.order {
		if task := t.s.tasks[id]; task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (t *TaskStore) Create(_ context.Context, task *domain.Task) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	task.ID = uuid.NewString()
	t.s.tasks[task.ID] = *task
	t.s.order = append(t.s.order, task.ID)
	return nil
}

// owned must be called with the lock held.
func (t *TaskStore) owned(ownerID, taskID string) (domain.Task, bool) {
	task, ok := t.s.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return domain.Task{}, false
	}
	return task, true
}

func (t *TaskStore) FindOwned(_ context.Context, ownerID, taskID string) (*domain.Task, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	task, ok := t.owned(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

func (t *TaskStore) UpdatePriority(_ context.Context, ownerID, taskID string, p domain.Priority, deadline time.Time) (*domain.Task, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	task, ok := t.owned(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	task.Priority = p
	task.SuggestedDeadline = deadline
	t.s.tasks[taskID] = task
	return &task, nil
}

func (t *TaskStore) Delete(_ context.Context, ownerID, taskID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.owned(ownerID, taskID); !ok {
		return nil
	}
	delete(t.s.tasks, taskID)
	for i, id := range t.s.order {
		if id == taskID {
			t.s.order = append(t.s.order[:i], t.s.order[i+1:]...)
			break
		}
	}
	return nil
}

type SessionStore struct{ s *Store }

func (ss *SessionStore) Save(_ context.Context, sess *domain.Session) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	ss.s.sessions[sess.ID] = *sess
	return nil
}

func (ss *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	sess, ok := ss.s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if sess.Expired(ss.s.now()) {
		delete(ss.s.sessions, id)
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (ss *SessionStore) Delete(_ context.Context, id string) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	delete(ss.s.sessions, id)
	return nil
}
