// Package session implements cookie sessions backed by a domain.SessionStore.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/logger"
	"github.com/locvowork/todolist/internal/service/serviceutils"
)

const contextKey = "session"

type Options struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

type Manager struct {
	store domain.SessionStore
	codec codec
	opts  Options
	now   func() time.Time
}

func NewManager(store domain.SessionStore, opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if opts.CookieName == "" {
		opts.CookieName = "connect.sid"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 14 * 24 * time.Hour
	}
	return &Manager{
		store: store,
		codec: codec{secret: []byte(opts.Secret)},
		opts:  opts,
		now:   time.Now,
	}, nil
}

// Middleware resolves the session cookie, if any, and stores the session in
// the request context. Requests without a valid session pass through
// anonymously.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := m.load(c); sess != nil {
				c.Set(contextKey, sess)
			}
			return next(c)
		}
	}
}

func (m *Manager) load(c echo.Context) *domain.Session {
	cookie, err := c.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	id, err := m.codec.decode(cookie.Value)
	if err != nil {
		return nil
	}

	ctx := c.Request().Context()
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.ErrorLog(ctx, "failed to load session: %v", err)
		}
		return nil
	}
	return sess
}

// Start issues a fresh session for userID, replacing any session the request
// already carried.
func (m *Manager) Start(c echo.Context, userID string) (*domain.Session, error) {
	ctx := c.Request().Context()
	if old, ok := FromContext(c); ok {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			logger.WarnLog(ctx, "failed to drop previous session: %v", err)
		}
	}

	now := m.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.opts.MaxAge),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	value, err := m.codec.encode(sess.ID, now, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}
	c.SetCookie(m.cookie(value, sess.ExpiresAt, int(m.opts.MaxAge.Seconds())))
	c.Set(contextKey, sess)
	return sess, nil
}

// Destroy removes the current session from the store and clears the cookie.
// Without a session it only clears the cookie.
func (m *Manager) Destroy(c echo.Context) error {
	if sess, ok := FromContext(c); ok {
		if err := m.store.Delete(c.Request().Context(), sess.ID); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
	}
	c.SetCookie(m.cookie("", time.Unix(0, 0), -1))
	c.Set(contextKey, nil)
	return nil
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func FromContext(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(contextKey).(*domain.Session)
	return sess, ok && sess != nil
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	if sess, ok := FromContext(c); ok {
		return sess.UserID
	}
	return ""
}

// RequireAuth stops anonymous requests with 401 before they reach a handler.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == "" {
				return serviceutils.ResponseMessage(c, http.StatusUnauthorized, "You must be logged in.")
			}
			return next(c)
		}
	}
}
