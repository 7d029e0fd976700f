package mongostore

import (
	"context"
	"fmt"

	"github.com/locvowork/todolist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	coll *mongo.Collection
}

// Create relies on the unique username index, so two concurrent
// registrations of the same name cannot both succeed.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	res, err := s.coll.InsertOne(ctx, userDoc{Username: u.Username, Password: u.Password})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return nil, wrapFindError(err)
	}
	return doc.toDomain(), nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapFindError(err)
	}
	return doc.toDomain(), nil
}
