package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/repository/memstore"
	"github.com/locvowork/todolist/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() service.UserService {
	return service.NewUserService(memstore.New().Users(), bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	u, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "pw1", u.Password, "password must not be stored as typed")

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, domain.ErrConflict)

	found, err := svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
}

func TestRegisterInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	tests := map[string][2]string{
		"empty username":    {"", "pw"},
		"empty password":    {"bob", ""},
		"password too long": {"bob", strings.Repeat("p", 73)},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, in[0], in[1])
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	registered, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, wrongPassword := svc.Authenticate(ctx, "alice", "pw2")
	_, unknownUser := svc.Authenticate(ctx, "mallory", "pw1")
	_, wrongCase := svc.Authenticate(ctx, "Alice", "pw1")

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, wrongCase, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestFindByIDMissing(t *testing.T) {
	_, err := newUserService().FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterPasswordTooLong(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "bob", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "bob", strings.Repeat("p", 72))
	assert.NoError(t, err)
}
