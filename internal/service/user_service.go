package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/todolist/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

// ErrPasswordTooLong is an ErrInvalidInput for passwords bcrypt cannot hash
// in full.
var ErrPasswordTooLong = fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, domain.ErrInvalidInput)

type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type userService struct {
	repo domain.UserRepository
	cost int
}

// NewUserService hashes passwords with the given bcrypt cost; pass 0 for
// bcrypt.DefaultCost.
func NewUserService(repo domain.UserRepository, cost int) UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, cost: cost}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Username: username, Password: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate reports ErrUnauthorized for an unknown user and for a wrong
// password alike.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
