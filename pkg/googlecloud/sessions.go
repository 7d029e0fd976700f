package googlecloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/logger"
)

type SessionStore struct {
	ds *datastore.Client
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	key := datastore.NameKey(KindSession, sess.ID, nil)
	if _, err := s.ds.Put(ctx, key, &sessionEntity{UserID: sess.UserID, ExpiresAt: sess.ExpiresAt}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get treats an expired session as missing and removes it.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := datastore.NameKey(KindSession, id, nil)
	var e sessionEntity
	if err := s.ds.Get(ctx, key, &e); err != nil {
		return nil, WrapDatastoreError(err)
	}

	sess := &domain.Session{ID: id, UserID: e.UserID, ExpiresAt: e.ExpiresAt}
	if sess.Expired(time.Now()) {
		if err := s.ds.Delete(ctx, key); err != nil {
			logger.WarnLog(ctx, "failed to drop expired session: %v", err)
		}
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ds.Delete(ctx, datastore.NameKey(KindSession, id, nil)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
