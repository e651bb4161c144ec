package services

import (
	"context"
	"errors"

	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article types.Article) (types.Article, error)
	FindByID(ctx context.Context, id int64) (types.Article, error)
	FindManyByOwner(ctx context.Context, ownerID int64) ([]types.Article, error)
	Update(ctx context.Context, id int64, upd types.ArticleUpdate) (types.Article, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleLifecycle is the owner-scoped set of article use-cases. Every
// method acts on behalf of principalID.
type ArticleLifecycle interface {
	List(ctx context.Context, principalID int64) ([]types.Article, error)
	Get(ctx context.Context, principalID, articleID int64) (types.Article, error)
	Create(ctx context.Context, principalID int64, title, body string) (types.Article, error)
	Edit(ctx context.Context, principalID, articleID int64, upd types.ArticleUpdate) (types.Article, error)
	Delete(ctx context.Context, principalID, articleID int64) error
}

var _ ArticleLifecycle = (*ArticleService)(nil)

// ArticleService encapsulates article use-cases.
type ArticleService struct {
	repo ArticleRepository
}

func NewArticleService(repo ArticleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

// List returns the principal's own articles in creation order.
func (s *ArticleService) List(ctx context.Context, principalID int64) ([]types.Article, error) {
	return s.repo.FindManyByOwner(ctx, principalID)
}

// Get returns the article if the principal owns it.
func (s *ArticleService) Get(ctx context.Context, principalID, articleID int64) (types.Article, error) {
	return s.load(ctx, principalID, articleID)
}

// Create stores a new article owned by the principal.
func (s *ArticleService) Create(ctx context.Context, principalID int64, title, body string) (types.Article, error) {
	return s.repo.Create(ctx, types.Article{
		OwnerID: principalID,
		Title:   title,
		Slug:    Slugify(title),
		Body:    body,
	})
}

// Edit applies upd to an article the principal owns. The slug follows the
// title and cannot be set directly.
func (s *ArticleService) Edit(ctx context.Context, principalID, articleID int64, upd types.ArticleUpdate) (types.Article, error) {
	current, err := s.load(ctx, principalID, articleID)
	if err != nil {
		return types.Article{}, err
	}

	upd.Slug = nil
	if upd.Title != nil {
		slug := Slugify(*upd.Title)
		upd.Slug = &slug
	}
	if upd.Title == nil && upd.Body == nil {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, articleID, upd)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between the ownership check and the write.
		return types.Article{}, ErrAccessDenied
	}
	return updated, err
}

// Delete removes an article the principal owns.
func (s *ArticleService) Delete(ctx context.Context, principalID, articleID int64) error {
	if _, err := s.load(ctx, principalID, articleID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, articleID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccessDenied
	}
	return err
}

func (s *ArticleService) load(ctx context.Context, principalID, articleID int64) (types.Article, error) {
	var found *types.Article
	article, err := s.repo.FindByID(ctx, articleID)
	switch {
	case err == nil:
		found = &article
	case !errors.Is(err, store.ErrNotFound):
		return types.Article{}, err
	}

	if err := Authorize(principalID, found); err != nil {
		return types.Article{}, err
	}
	return article, nil
}
