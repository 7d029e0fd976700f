package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/locvowork/todolist/internal/domain"
)

type TaskStore struct {
	db *sql.DB
}

const taskColumns = `id, task, priority, date_created, suggested_deadline, owner_id`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t         domain.Task
		id, owner int64
		priority  string
	)
	if err := row.Scan(&id, &t.Task, &priority, &t.DateCreated, &t.SuggestedDeadline, &owner); err != nil {
		return t, err
	}
	t.ID = strconv.FormatInt(id, 10)
	t.OwnerID = strconv.FormatInt(owner, 10)
	t.Priority = domain.Priority(priority)
	t.DateCreated = t.DateCreated.UTC()
	t.SuggestedDeadline = t.SuggestedDeadline.UTC()
	return t, nil
}

// ownedIDs parses both ids; every owned-task statement filters on the pair.
func ownedIDs(ownerID, taskID string) (owner, id int64, ok bool) {
	if owner, ok = parseID(ownerID); !ok {
		return 0, 0, false
	}
	if id, ok = parseID(taskID); !ok {
		return 0, 0, false
	}
	return owner, id, true
}

func (s *TaskStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks := []domain.Task{}
	owner, ok := parseID(ownerID)
	if !ok {
		return tasks, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Create(ctx context.Context, t *domain.Task) error {
	owner, ok := parseID(t.OwnerID)
	if !ok {
		return fmt.Errorf("insert task: invalid owner id %q", t.OwnerID)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (task, priority, date_created, suggested_deadline, owner_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, t.Task, string(t.Priority), t.DateCreated, t.SuggestedDeadline, owner).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = strconv.FormatInt(id, 10)
	return nil
}

func (s *TaskStore) FindOwned(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	owner, id, ok := ownedIDs(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	t, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`, id, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

func (s *TaskStore) UpdatePriority(ctx context.Context, ownerID, taskID string, p domain.Priority, deadline time.Time) (*domain.Task, error) {
	owner, id, ok := ownedIDs(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	t, err := scanTask(s.db.QueryRowContext(ctx, `
		UPDATE tasks SET priority = $1, suggested_deadline = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING `+taskColumns,
		string(p), deadline, id, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	owner, id, ok := ownedIDs(ownerID, taskID)
	if !ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, owner); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
