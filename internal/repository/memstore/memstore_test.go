package memstore_test

import (
	"testing"

	"github.com/locvowork/todolist/internal/repository/memstore"
	"github.com/locvowork/todolist/internal/repository/repotest"
)

func TestUsers(t *testing.T) {
	repotest.RunUserRepository(t, memstore.New().Users())
}

func TestTasks(t *testing.T) {
	s := memstore.New()
	repotest.RunTaskRepository(t, s.Users(), s.Tasks())
}

func TestSessions(t *testing.T) {
	repotest.RunSessionStore(t, memstore.New().Sessions())
}
