package services

import (
	"context"
	"testing"
	"time"

	"github.com/articled/apiserver/internal/auth"
	"github.com/articled/apiserver/internal/db/dbtest"
	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
	"github.com/stretchr/testify/require"
)

func TestUserService_MeAndEdit(t *testing.T) {
	ctx := context.Background()
	repo := store.NewUserRepository(dbtest.Open(t))
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	authSvc := NewAuthService(repo, tokens)
	users := NewUserService(repo)

	alice, err := authSvc.Signup(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	bob, err := authSvc.Signup(ctx, "bob@example.com", "pw")
	require.NoError(t, err)

	me, err := users.Me(ctx, alice.User.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", me.Email)

	edited, err := users.Edit(ctx, alice.User.ID, types.UserUpdate{FirstName: strPtr("Alice")})
	require.NoError(t, err)
	require.Equal(t, "Alice", edited.FirstName)
	require.Equal(t, "alice@example.com", edited.Email)

	edited, err = users.Edit(ctx, alice.User.ID, types.UserUpdate{Email: strPtr(" Alice@New.example.com ")})
	require.NoError(t, err)
	require.Equal(t, "alice@new.example.com", edited.Email)
	require.Equal(t, "Alice", edited.FirstName)

	_, err = users.Edit(ctx, alice.User.ID, types.UserUpdate{Email: strPtr(bob.User.Email)})
	require.ErrorIs(t, err, ErrCredentialsTaken)

	unchanged, err := users.Edit(ctx, bob.User.ID, types.UserUpdate{})
	require.NoError(t, err)
	require.Equal(t, bob.User.ID, unchanged.ID)
}

func TestUserService_Exists(t *testing.T) {
	ctx := context.Background()
	repo := store.NewUserRepository(dbtest.Open(t))
	users := NewUserService(repo)

	created, err := repo.Create(ctx, types.User{Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	ok, err := users.Exists(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = users.Exists(ctx, created.ID+100)
	require.NoError(t, err)
	require.False(t, ok)
}
