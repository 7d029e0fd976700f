package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/repository/memstore"
	"github.com/locvowork/todolist/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, time.February, 27, 8, 15, 0, 0, time.UTC)}
	svc := service.NewTaskService(memstore.New().Tasks(), clock.Now)
	created := clock.t

	task, err := svc.Create(ctx, "alice", "buy milk", domain.PriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, created, task.DateCreated)
	assert.Equal(t, created.AddDate(0, 0, 1), task.SuggestedDeadline)

	// A week later the user relaxes the priority; the deadline still counts
	// from the day the task was created.
	clock.t = created.AddDate(0, 0, 7)
	updated, err := svc.UpdatePriority(ctx, "alice", task.ID, domain.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.Equal(t, created, updated.DateCreated)
	assert.Equal(t, time.Date(2024, time.March, 28, 8, 15, 0, 0, time.UTC), updated.SuggestedDeadline)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, updated.SuggestedDeadline, list[0].SuggestedDeadline)

	require.NoError(t, svc.Delete(ctx, "alice", task.ID))
	list, err = svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateUnknownPriority(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}
	svc := service.NewTaskService(memstore.New().Tasks(), clock.Now)

	task, err := svc.Create(context.Background(), "alice", "someday", "Whenever")
	require.NoError(t, err)
	assert.Equal(t, domain.Priority("Whenever"), task.Priority)
	assert.Equal(t, task.DateCreated, task.SuggestedDeadline)
}

func TestCreateTruncatesToMillis(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 10, 0, 0, 123456789, time.UTC)}
	svc := service.NewTaskService(memstore.New().Tasks(), clock.Now)

	task, err := svc.Create(context.Background(), "alice", "x", domain.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 123000000, task.DateCreated.Nanosecond())
}

func TestOwnershipOpacity(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaskService(memstore.New().Tasks(), nil)

	task, err := svc.Create(ctx, "alice", "private", domain.PriorityMedium)
	require.NoError(t, err)

	_, foreign := svc.UpdatePriority(ctx, "bob", task.ID, domain.PriorityUrgent)
	_, missing := svc.UpdatePriority(ctx, "bob", "no-such-task", domain.PriorityUrgent)
	assert.ErrorIs(t, foreign, domain.ErrNotFound)
	assert.ErrorIs(t, missing, domain.ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, "bob", task.ID))

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.PriorityMedium, list[0].Priority)

	bobs, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobs)
}
