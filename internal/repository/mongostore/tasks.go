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
)

type TaskStore struct {
	coll *mongo.Collection
}

// ownedFilter is the only place a task filter is built: a task matches only
// together with its owner.
func ownedFilter(ownerID, taskID string) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": id, "ownerId": owner}, true
}

func (s *TaskStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []domain.Task{}, nil
	}

	cur, err := s.coll.Find(ctx, bson.M{"ownerId": owner})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].toDomain()
	}
	return tasks, nil
}

func (s *TaskStore) Create(ctx context.Context, t *domain.Task) error {
	owner, err := primitive.ObjectIDFromHex(t.OwnerID)
	if err != nil {
		return fmt.Errorf("insert task: invalid owner id %q", t.OwnerID)
	}

	res, err := s.coll.InsertOne(ctx, taskDoc{
		Task:              t.Task,
		Priority:          string(t.Priority),
		DateCreated:       t.DateCreated,
		SuggestedDeadline: t.SuggestedDeadline,
		OwnerID:           owner,
	})
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *TaskStore) FindOwned(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	filter, ok := ownedFilter(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var doc taskDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, wrapFindError(err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (s *TaskStore) UpdatePriority(ctx context.Context, ownerID, taskID string, p domain.Priority, deadline time.Time) (*domain.Task, error) {
	filter, ok := ownedFilter(ownerID, taskID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"priority":          string(p),
		"suggestedDeadline": deadline,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDoc
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	t := doc.toDomain()
	return &t, nil
}

func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID string) error {
	filter, ok := ownedFilter(ownerID, taskID)
	if !ok {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
