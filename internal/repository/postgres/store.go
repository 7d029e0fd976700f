// Package postgres stores users, tasks and sessions in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/locvowork/todolist/internal/domain"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

// New applies the schema and returns the store.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Users() *UserStore       { return &UserStore{db: s.db} }
func (s *Store) Tasks() *TaskStore       { return &TaskStore{db: s.db} }
func (s *Store) Sessions() *SessionStore { return &SessionStore{db: s.db} }

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`,
		u.Username, u.Password).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = strconv.FormatInt(id, 10)
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = $1`, username))
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE id = $1`, n))
}

func (s *UserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	if err := row.Scan(&id, &u.Username, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

type SessionStore struct {
	db *sql.DB
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at
	`, sess.ID, sess.UserID, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess := domain.Session{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE id = $1 AND expires_at > $2`,
		id, time.Now()).Scan(&sess.UserID, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and reports how many.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
