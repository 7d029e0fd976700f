package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/locvowork/todolist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionStore keeps one document per session. The TTL index on "expires"
// lets MongoDB reap old sessions; Get still checks expiry because the reaper
// runs about once a minute.
type SessionStore struct {
	coll *mongo.Collection
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	doc := sessionDoc{ID: sess.ID, UserID: sess.UserID, Expires: sess.ExpiresAt}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, doc, opts); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var doc sessionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, wrapFindError(err)
	}
	sess := &domain.Session{ID: doc.ID, UserID: doc.UserID, ExpiresAt: doc.Expires}
	if sess.Expired(time.Now()) {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
