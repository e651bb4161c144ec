package services

import (
	"context"

	"github.com/articled/apiserver/internal/metric"
	"github.com/articled/apiserver/types"
	"github.com/prometheus/client_golang/prometheus"
)

var _ ArticleLifecycle = (*ArticleMetrics)(nil)

type ArticleMetrics struct {
	// RED metrics
	rec *metric.REDClient

	articleService ArticleLifecycle
}

// NewArticleMetrics returns a metrics service middleware for the article lifecycle.
// ErrAccessDenied is counted as "denied" rather than "error".
func NewArticleMetrics(reg prometheus.Registerer, s ArticleLifecycle) *ArticleMetrics {
	return &ArticleMetrics{
		rec:            metric.New(reg, "article", ErrAccessDenied),
		articleService: s,
	}
}

func (m *ArticleMetrics) List(ctx context.Context, principalID int64) ([]types.Article, error) {
	rec := m.rec.Record("list")
	articles, err := m.articleService.List(ctx, principalID)
	return articles, rec(err)
}

func (m *ArticleMetrics) Get(ctx context.Context, principalID, articleID int64) (types.Article, error) {
	rec := m.rec.Record("get")
	article, err := m.articleService.Get(ctx, principalID, articleID)
	return article, rec(err)
}

func (m *ArticleMetrics) Create(ctx context.Context, principalID int64, title, body string) (types.Article, error) {
	rec := m.rec.Record("create")
	article, err := m.articleService.Create(ctx, principalID, title, body)
	return article, rec(err)
}

func (m *ArticleMetrics) Edit(ctx context.Context, principalID, articleID int64, upd types.ArticleUpdate) (types.Article, error) {
	rec := m.rec.Record("edit")
	article, err := m.articleService.Edit(ctx, principalID, articleID, upd)
	return article, rec(err)
}

func (m *ArticleMetrics) Delete(ctx context.Context, principalID, articleID int64) error {
	rec := m.rec.Record("delete")
	err := m.articleService.Delete(ctx, principalID, articleID)
	return rec(err)
}
