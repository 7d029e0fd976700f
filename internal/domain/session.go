package domain

import (
	"context"
	"time"
)

// Session is the server-side half of a login. The browser only ever sees ID.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
