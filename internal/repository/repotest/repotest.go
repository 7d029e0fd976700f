// Package repotest holds behaviour checks shared by every storage backend.
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, users domain.UserRepository, prefix string) *domain.User {
	t.Helper()
	u := &domain.User{Username: prefix + "-" + uuid.NewString(), Password: "hash"}
	require.NoError(t, users.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}

func RunUserRepository(t *testing.T, users domain.UserRepository) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		u := newUser(t, users, "alice")

		byName, err := users.FindByUsername(ctx, u.Username)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
		assert.Equal(t, "hash", byName.Password)

		byID, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, byID.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		u := newUser(t, users, "dup")
		err := users.Create(ctx, &domain.User{Username: u.Username, Password: "other"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		u := newUser(t, users, "case")
		upper := &domain.User{Username: "CASE" + u.Username[len("case"):], Password: "x"}
		assert.NoError(t, users.Create(ctx, upper))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := users.FindByUsername(ctx, "nobody-"+uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = users.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func newTask(t *testing.T, tasks domain.TaskRepository, ownerID, text string, p domain.Priority, created time.Time) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Task:              text,
		Priority:          p,
		DateCreated:       created,
		SuggestedDeadline: domain.ComputeDeadline(created, p),
		OwnerID:           ownerID,
	}
	require.NoError(t, tasks.Create(context.Background(), task))
	require.NotEmpty(t, task.ID)
	return task
}

// RunTaskRepository checks ownership scoping. users is needed because some
// backends key tasks under their owner.
func RunTaskRepository(t *testing.T, users domain.UserRepository, tasks domain.TaskRepository) {
	ctx := context.Background()
	created := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)

	t.Run("list is scoped to owner", func(t *testing.T) {
		alice := newUser(t, users, "alice")
		bob := newUser(t, users, "bob")
		a := newTask(t, tasks, alice.ID, "buy milk", domain.PriorityHigh, created)
		newTask(t, tasks, bob.ID, "walk dog", domain.PriorityLow, created)

		list, err := tasks.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, a.ID, list[0].ID)
		assert.Equal(t, alice.ID, list[0].OwnerID)
		assert.True(t, created.Equal(list[0].DateCreated))
		assert.True(t, created.AddDate(0, 0, 2).Equal(list[0].SuggestedDeadline))
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		carol := newUser(t, users, "carol")
		list, err := tasks.ListByOwner(ctx, carol.ID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("concurrent creates stay scoped", func(t *testing.T) {
		alice := newUser(t, users, "alice")
		bob := newUser(t, users, "bob")

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = tasks.Create(ctx, &domain.Task{Task: "a", Priority: domain.PriorityLow, DateCreated: created, OwnerID: alice.ID})
			}()
			go func() {
				defer wg.Done()
				_ = tasks.Create(ctx, &domain.Task{Task: "b", Priority: domain.PriorityLow, DateCreated: created, OwnerID: bob.ID})
			}()
		}
		wg.Wait()

		list, err := tasks.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, list, 5)
		for _, task := range list {
			assert.Equal(t, alice.ID, task.OwnerID)
			assert.Equal(t, "a", task.Task)
		}
	})

	t.Run("update priority", func(t *testing.T) {
		alice := newUser(t, users, "alice")
		task := newTask(t, tasks, alice.ID, "file taxes", domain.PriorityUrgent, created)

		deadline := domain.ComputeDeadline(created, domain.PriorityLow)
		updated, err := tasks.UpdatePriority(ctx, alice.ID, task.ID, domain.PriorityLow, deadline)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityLow, updated.Priority)
		assert.True(t, deadline.Equal(updated.SuggestedDeadline))
		assert.True(t, created.Equal(updated.DateCreated))

		stored, err := tasks.FindOwned(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityLow, stored.Priority)
		assert.Equal(t, "file taxes", stored.Task)
	})

	t.Run("foreign or missing ids are not found", func(t *testing.T) {
		alice := newUser(t, users, "alice")
		mallory := newUser(t, users, "mallory")
		task := newTask(t, tasks, alice.ID, "secret", domain.PriorityMedium, created)

		_, err := tasks.FindOwned(ctx, mallory.ID, task.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = tasks.UpdatePriority(ctx, mallory.ID, task.ID, domain.PriorityUrgent, created)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = tasks.UpdatePriority(ctx, alice.ID, "does-not-exist", domain.PriorityUrgent, created)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		stored, err := tasks.FindOwned(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, stored.Priority)
		assert.True(t, domain.ComputeDeadline(created, domain.PriorityMedium).Equal(stored.SuggestedDeadline))
	})

	t.Run("delete is scoped and idempotent", func(t *testing.T) {
		alice := newUser(t, users, "alice")
		mallory := newUser(t, users, "mallory")
		keep := newTask(t, tasks, alice.ID, "keep", domain.PriorityHigh, created)
		drop := newTask(t, tasks, alice.ID, "drop", domain.PriorityHigh, created)

		assert.NoError(t, tasks.Delete(ctx, mallory.ID, keep.ID))
		assert.NoError(t, tasks.Delete(ctx, alice.ID, "does-not-exist"))
		assert.NoError(t, tasks.Delete(ctx, alice.ID, drop.ID))
		assert.NoError(t, tasks.Delete(ctx, alice.ID, drop.ID))

		list, err := tasks.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)
	})
}

func RunSessionStore(t *testing.T, sessions domain.SessionStore) {
	ctx := context.Background()

	t.Run("save get delete", func(t *testing.T) {
		s := &domain.Session{ID: uuid.NewString(), UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, sessions.Save(ctx, s))

		got, err := sessions.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)

		require.NoError(t, sessions.Delete(ctx, s.ID))
		_, err = sessions.Get(ctx, s.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, sessions.Delete(ctx, s.ID))
	})

	t.Run("expired", func(t *testing.T) {
		s := &domain.Session{ID: uuid.NewString(), UserID: "user-2", ExpiresAt: time.Now().Add(-time.Minute)}
		require.NoError(t, sessions.Save(ctx, s))
		_, err := sessions.Get(ctx, s.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := sessions.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
