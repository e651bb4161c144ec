package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/articled/apiserver/internal/auth"
	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
)

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthResult is returned by a successful signup or signin.
type AuthResult struct {
	AccessToken string     `json:"access_token"`
	User        types.User `json:"user"`
}

// AuthService signs users up and in.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new user and returns an access token for it.
func (s *AuthService) Signup(ctx context.Context, email, password string) (AuthResult, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, types.User{
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return AuthResult{}, ErrCredentialsTaken
		}
		return AuthResult{}, err
	}

	return s.result(user)
}

// Signin verifies the credentials and returns an access token.
func (s *AuthService) Signin(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	return s.result(user)
}

func (s *AuthService) result(user types.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{AccessToken: token, User: user}, nil
}
