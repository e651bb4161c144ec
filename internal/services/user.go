package services

import (
	"context"
	"errors"
	"strings"

	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, id int64, upd types.UserUpdate) (types.User, error)
}

// UserService encapsulates profile use-cases of the signed in user.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Me returns the principal's own user record.
func (s *UserService) Me(ctx context.Context, principalID int64) (types.User, error) {
	return s.repo.GetByID(ctx, principalID)
}

// Exists reports whether a user with id is still present.
func (s *UserService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Edit applies upd to the principal's own profile.
func (s *UserService) Edit(ctx context.Context, principalID int64, upd types.UserUpdate) (types.User, error) {
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		upd.Email = &email
	}
	if upd.IsEmpty() {
		return s.repo.GetByID(ctx, principalID)
	}

	user, err := s.repo.Update(ctx, principalID, upd)
	if errors.Is(err, store.ErrConflict) {
		return types.User{}, ErrCredentialsTaken
	}
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
