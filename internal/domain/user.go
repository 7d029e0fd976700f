package domain

import "context"

// User is a registered account. Password holds the bcrypt hash, never the
// value the user typed.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type UserRepository interface {
	// Create stores u and fills in u.ID. It returns ErrConflict when the
	// username is already taken.
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
