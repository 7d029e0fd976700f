// Package mongostore stores users, tasks and sessions in MongoDB, using the
// same collection names and document shapes as the original Node service so
// an existing todoDB can be reused.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/locvowork/todolist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collUsers    = "users"
	collTasks    = "tasks"
	collSessions = "sessions"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection and makes sure the indexes
// the stores rely on exist.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	if _, err := s.db.Collection(collTasks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create tasks index: %w", err)
	}
	if _, err := s.db.Collection(collSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}); err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *Store) Users() *UserStore       { return &UserStore{coll: s.db.Collection(collUsers)} }
func (s *Store) Tasks() *TaskStore       { return &TaskStore{coll: s.db.Collection(collTasks)} }
func (s *Store) Sessions() *SessionStore { return &SessionStore{coll: s.db.Collection(collSessions)} }

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

type taskDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Task              string             `bson:"task"`
	Priority          string             `bson:"priority"`
	DateCreated       time.Time          `bson:"dateCreated"`
	SuggestedDeadline time.Time          `bson:"suggestedDeadline"`
	OwnerID           primitive.ObjectID `bson:"ownerId"`
}

type sessionDoc struct {
	ID      string    `bson:"_id"`
	UserID  string    `bson:"userId"`
	Expires time.Time `bson:"expires"`
}

func (d *taskDoc) toDomain() domain.Task {
	return domain.Task{
		ID:                d.ID.Hex(),
		Task:              d.Task,
		Priority:          domain.Priority(d.Priority),
		DateCreated:       d.DateCreated.UTC(),
		SuggestedDeadline: d.SuggestedDeadline.UTC(),
		OwnerID:           d.OwnerID.Hex(),
	}
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{ID: d.ID.Hex(), Username: d.Username, Password: d.Password}
}

func wrapFindError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}
