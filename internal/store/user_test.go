package store_test

import (
	"context"
	"testing"

	"github.com/articled/apiserver/internal/db/dbtest"
	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) *store.UserRepository {
	t.Helper()
	return store.NewUserRepository(dbtest.Open(t))
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	users := newUserRepo(t)
	ctx := context.Background()

	created, err := users.Create(ctx, types.User{Email: "muneer@example.com", PasswordHash: "hash", FirstName: "Muneer"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "muneer@example.com", byID.Email)
	require.Equal(t, "hash", byID.PasswordHash)
	require.Equal(t, "Muneer", byID.FirstName)
	require.Empty(t, byID.LastName)

	byEmail, err := users.GetByEmail(ctx, "muneer@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_GetMissing(t *testing.T) {
	users := newUserRepo(t)
	ctx := context.Background()

	_, err := users.GetByID(ctx, 1)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users := newUserRepo(t)
	ctx := context.Background()

	_, err := users.Create(ctx, types.User{Email: "dup@example.com", PasswordHash: "a"})
	require.NoError(t, err)

	_, err = users.Create(ctx, types.User{Email: "dup@example.com", PasswordHash: "b"})
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestUserRepository_UpdatePartial(t *testing.T) {
	users := newUserRepo(t)
	ctx := context.Background()

	created, err := users.Create(ctx, types.User{Email: "a@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	other, err := users.Create(ctx, types.User{Email: "b@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	first, last := "Muneer", "Khan"
	updated, err := users.Update(ctx, created.ID, types.UserUpdate{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "a@example.com", updated.Email)
	require.Equal(t, "Muneer", updated.FirstName)
	require.Equal(t, "Khan", updated.LastName)

	taken := other.Email
	_, err = users.Update(ctx, created.ID, types.UserUpdate{Email: &taken})
	require.ErrorIs(t, err, store.ErrConflict)

	_, err = users.Update(ctx, 999, types.UserUpdate{FirstName: &first})
	require.ErrorIs(t, err, store.ErrNotFound)
}
