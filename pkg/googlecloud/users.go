package googlecloud

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/todolist/internal/domain"
)

type UserStore struct {
	ds *datastore.Client
}

// Create claims the username and stores the user in one transaction. The ID
// is allocated up front since a transactional Put does not return the final
// key.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	keys, err := s.ds.AllocateIDs(ctx, []*datastore.Key{datastore.IncompleteKey(KindUser, nil)})
	if err != nil {
		return fmt.Errorf("allocate user id: %w", err)
	}
	userKey := keys[0]
	nameKey := datastore.NameKey(KindUsername, u.Username, nil)

	_, err = s.ds.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var existing usernameEntity
		err := tx.Get(nameKey, &existing)
		if err == nil {
			return domain.ErrConflict
		}
		if !errors.Is(err, datastore.ErrNoSuchEntity) {
			return err
		}

		if _, err := tx.Put(userKey, &userEntity{Username: u.Username, Password: u.Password}); err != nil {
			return err
		}
		_, err = tx.Put(nameKey, &usernameEntity{UserID: userKey.ID})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}

	u.ID = formatID(userKey.ID)
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var idx usernameEntity
	if err := s.ds.Get(ctx, datastore.NameKey(KindUsername, username, nil), &idx); err != nil {
		return nil, WrapDatastoreError(err)
	}
	return s.get(ctx, idx.UserID)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.get(ctx, n)
}

func (s *UserStore) get(ctx context.Context, id int64) (*domain.User, error) {
	var e userEntity
	if err := s.ds.Get(ctx, datastore.IDKey(KindUser, id, nil), &e); err != nil {
		return nil, WrapDatastoreError(err)
	}
	return &domain.User{ID: formatID(id), Username: e.Username, Password: e.Password}, nil
}
