package googlecloud

import (
	"strconv"
	"time"

	"github.com/locvowork/todolist/internal/domain"
)

const (
	KindUser     = "User"
	KindUsername = "Username"
	KindTask     = "Task"
	KindSession  = "Session"
)

// userEntity is keyed by an auto-allocated int64 ID.
type userEntity struct {
	Username string `datastore:"username"`
	Password string `datastore:"password,noindex"`
}

// usernameEntity is keyed by the username itself and points at the user.
// It is what makes usernames unique.
type usernameEntity struct {
	UserID int64 `datastore:"user_id,noindex"`
}

// taskEntity lives under its owner's User key, so the owner is part of the
// task's identity.
type taskEntity struct {
	Task              string    `datastore:"task,noindex"`
	Priority          string    `datastore:"priority"`
	DateCreated       time.Time `datastore:"date_created"`
	SuggestedDeadline time.Time `datastore:"suggested_deadline"`
}

// sessionEntity is keyed by the session id.
type sessionEntity struct {
	UserID    string    `datastore:"user_id,noindex"`
	ExpiresAt time.Time `datastore:"expires_at"`
}

func (e *taskEntity) toDomain(id int64, ownerID int64) domain.Task {
	return domain.Task{
		ID:                formatID(id),
		Task:              e.Task,
		Priority:          domain.Priority(e.Priority),
		DateCreated:       e.DateCreated.UTC(),
		SuggestedDeadline: e.SuggestedDeadline.UTC(),
		OwnerID:           formatID(ownerID),
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID turns an opaque id back into a Datastore key id. Anything that is
// not a positive integer cannot name an entity.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
