package googlecloud

import (
	"errors"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/todolist/internal/domain"
)

// WrapDatastoreError converts Datastore-specific errors to domain errors.
func WrapDatastoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return domain.ErrNotFound
	}
	return err
}

// IsNotFoundError checks if an error is a not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, datastore.ErrNoSuchEntity)
}
