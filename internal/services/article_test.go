package services

import (
	"context"
	"testing"

	"github.com/articled/apiserver/types"
	"github.com/stretchr/testify/require"
)

func TestArticleService_CreateAssignsOwnerAndSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	article, err := svc.Create(context.Background(), 7, "First article", "my test article body")
	require.NoError(t, err)
	require.Equal(t, int64(7), article.OwnerID)
	require.Equal(t, "First-article", article.Slug)
	require.Equal(t, "my test article body", article.Body)
	require.NotZero(t, article.ID)
}

func TestArticleService_ListIsOwnerScoped(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	empty, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, empty)

	a1, err := svc.Create(ctx, 1, "one", "b")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "two", "b")
	require.NoError(t, err)
	a3, err := svc.Create(ctx, 1, "three", "b")
	require.NoError(t, err)

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []types.Article{a1, a3}, got)
}

func TestArticleService_GetDeniesAbsentAndForeign(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", "b")
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = svc.Get(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ctx, 1, 999)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestArticleService_GetPropagatesStoreErrors(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.err = errBoom
	svc := NewArticleService(repo)

	_, err := svc.Get(context.Background(), 1, 1)
	require.ErrorIs(t, err, errBoom)
	require.NotErrorIs(t, err, ErrAccessDenied)
}

func TestArticleService_EditRederivesSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "First article", "body")
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, 1, created.ID, types.ArticleUpdate{Body: strPtr("new body")})
	require.NoError(t, err)
	require.Equal(t, "First article", edited.Title)
	require.Equal(t, "First-article", edited.Slug)
	require.Equal(t, "new body", edited.Body)

	edited, err = svc.Edit(ctx, 1, created.ID, types.ArticleUpdate{Title: strPtr("test title")})
	require.NoError(t, err)
	require.Equal(t, "test title", edited.Title)
	require.Equal(t, "test-title", edited.Slug)
	require.Equal(t, "new body", edited.Body)
	require.Equal(t, int64(1), edited.OwnerID)

	edited, err = svc.Edit(ctx, 1, created.ID, types.ArticleUpdate{Title: strPtr(" First article ")})
	require.NoError(t, err)
	require.Equal(t, " First article ", edited.Title)
	require.Equal(t, "-First-article-", edited.Slug)
}

func TestArticleService_CreateKeepsPaddingInSlug(t *testing.T) {
	svc := NewArticleService(newFakeArticleRepo())

	article, err := svc.Create(context.Background(), 1, " First article ", "b")
	require.NoError(t, err)
	require.Equal(t, " First article ", article.Title)
	require.Equal(t, "-First-article-", article.Slug)
}

func TestArticleService_EditIgnoresSuppliedSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "title", "body")
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, 1, created.ID, types.ArticleUpdate{Slug: strPtr("hijacked"), Body: strPtr("b2")})
	require.NoError(t, err)
	require.Equal(t, "title", edited.Slug)
}

func TestArticleService_EditDeniedBeforeWrite(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", "body")
	require.NoError(t, err)

	_, err = svc.Edit(ctx, 2, created.ID, types.ArticleUpdate{Title: strPtr("stolen")})
	require.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.Edit(ctx, 2, 999, types.ArticleUpdate{Title: strPtr("stolen")})
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Zero(t, repo.updates)

	unchanged, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", unchanged.Title)
}

func TestArticleService_EditWithoutFieldsReturnsCurrent(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", "body")
	require.NoError(t, err)

	got, err := svc.Edit(ctx, 1, created.ID, types.ArticleUpdate{})
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Zero(t, repo.updates)
}

func TestArticleService_Delete(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "mine", "body")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrAccessDenied)
	require.Zero(t, repo.deletes)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrAccessDenied)
	require.Equal(t, 1, repo.deletes)

	_, err = svc.Get(ctx, 1, created.ID)
	require.ErrorIs(t, err, ErrAccessDenied)
}
