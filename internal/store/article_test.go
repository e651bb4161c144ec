package store_test

import (
	"context"
	"testing"

	"github.com/articled/apiserver/internal/db/dbtest"
	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var ignoreTimestamps = cmpopts.IgnoreFields(types.Article{}, "CreatedAt", "UpdatedAt")

func newArticleRepo(t *testing.T) (*store.ArticleRepository, *store.UserRepository) {
	t.Helper()
	conn := dbtest.Open(t)
	return store.NewArticleRepository(conn), store.NewUserRepository(conn)
}

func seedUser(t *testing.T, users *store.UserRepository, email string) types.User {
	t.Helper()
	user, err := users.Create(context.Background(), types.User{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return user
}

func TestArticleRepository_CreateAndFind(t *testing.T) {
	articles, users := newArticleRepo(t)
	ctx := context.Background()
	owner := seedUser(t, users, "owner@example.com")

	created, err := articles.Create(ctx, types.Article{
		OwnerID: owner.ID,
		Title:   "First article",
		Slug:    "First-article",
		Body:    "my test article body",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := articles.FindByID(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, fetched, ignoreTimestamps); diff != "" {
		t.Fatalf("fetched article mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepository_FindByIDMissing(t *testing.T) {
	articles, _ := newArticleRepo(t)

	_, err := articles.FindByID(context.Background(), 4242)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestArticleRepository_FindManyByOwner(t *testing.T) {
	articles, users := newArticleRepo(t)
	ctx := context.Background()
	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")

	empty, err := articles.FindManyByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	var want []types.Article
	for _, title := range []string{"one", "two", "three"} {
		a, err := articles.Create(ctx, types.Article{OwnerID: alice.ID, Title: title, Slug: title, Body: "b"})
		require.NoError(t, err)
		want = append(want, a)
	}
	_, err = articles.Create(ctx, types.Article{OwnerID: bob.ID, Title: "bob's", Slug: "bob's", Body: "b"})
	require.NoError(t, err)

	got, err := articles.FindManyByOwner(ctx, alice.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
		t.Fatalf("owner articles mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepository_UpdatePartial(t *testing.T) {
	articles, users := newArticleRepo(t)
	ctx := context.Background()
	owner := seedUser(t, users, "owner@example.com")

	created, err := articles.Create(ctx, types.Article{OwnerID: owner.ID, Title: "old title", Slug: "old-title", Body: "old body"})
	require.NoError(t, err)

	body := "new body"
	updated, err := articles.Update(ctx, created.ID, types.ArticleUpdate{Body: &body})
	require.NoError(t, err)
	require.Equal(t, "old title", updated.Title)
	require.Equal(t, "old-title", updated.Slug)
	require.Equal(t, "new body", updated.Body)
	require.Equal(t, owner.ID, updated.OwnerID)

	title, slug := "new title", "new-title"
	updated, err = articles.Update(ctx, created.ID, types.ArticleUpdate{Title: &title, Slug: &slug})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "new-title", updated.Slug)
	require.Equal(t, "new body", updated.Body)
}

func TestArticleRepository_UpdateMissing(t *testing.T) {
	articles, _ := newArticleRepo(t)

	body := "x"
	_, err := articles.Update(context.Background(), 99, types.ArticleUpdate{Body: &body})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestArticleRepository_Delete(t *testing.T) {
	articles, users := newArticleRepo(t)
	ctx := context.Background()
	owner := seedUser(t, users, "owner@example.com")

	created, err := articles.Create(ctx, types.Article{OwnerID: owner.ID, Title: "t", Slug: "t", Body: "b"})
	require.NoError(t, err)

	require.NoError(t, articles.Delete(ctx, created.ID))
	require.ErrorIs(t, articles.Delete(ctx, created.ID), store.ErrNotFound)

	_, err = articles.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestArticleRepository_CreateRequiresExistingOwner(t *testing.T) {
	articles, _ := newArticleRepo(t)

	_, err := articles.Create(context.Background(), types.Article{OwnerID: 777, Title: "t", Slug: "t", Body: "b"})
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)
}
