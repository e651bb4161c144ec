package services

import (
	"context"
	"time"

	"github.com/articled/apiserver/types"
	"go.uber.org/zap"
)

var _ ArticleLifecycle = (*ArticleLogger)(nil)

type ArticleLogger struct {
	logger         *zap.Logger
	articleService ArticleLifecycle
}

// NewArticleLogger returns a logging service middleware for the article lifecycle.
func NewArticleLogger(log *zap.Logger, s ArticleLifecycle) *ArticleLogger {
	return &ArticleLogger{
		logger:         log,
		articleService: s,
	}
}

func (l *ArticleLogger) List(ctx context.Context, principalID int64) (articles []types.Article, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to list articles", zap.Int64("principal_id", principalID), zap.Error(err), dur)
			return
		}
		l.logger.Debug("article list", zap.Int64("principal_id", principalID), zap.Int("count", len(articles)), dur)
	}(time.Now())
	return l.articleService.List(ctx, principalID)
}

func (l *ArticleLogger) Get(ctx context.Context, principalID, articleID int64) (a types.Article, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find article", zap.Int64("principal_id", principalID), zap.Int64("article_id", articleID), zap.Error(err), dur)
			return
		}
		l.logger.Debug("article find by ID", zap.Int64("article_id", articleID), dur)
	}(time.Now())
	return l.articleService.Get(ctx, principalID, articleID)
}

func (l *ArticleLogger) Create(ctx context.Context, principalID int64, title, body string) (a types.Article, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create article", zap.Int64("principal_id", principalID), zap.Error(err), dur)
			return
		}
		l.logger.Debug("article create", zap.Int64("article_id", a.ID), zap.String("slug", a.Slug), dur)
	}(time.Now())
	return l.articleService.Create(ctx, principalID, title, body)
}

func (l *ArticleLogger) Edit(ctx context.Context, principalID, articleID int64, upd types.ArticleUpdate) (a types.Article, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update article", zap.Int64("principal_id", principalID), zap.Int64("article_id", articleID), zap.Error(err), dur)
			return
		}
		l.logger.Debug("article update", zap.Int64("article_id", articleID), dur)
	}(time.Now())
	return l.articleService.Edit(ctx, principalID, articleID, upd)
}

func (l *ArticleLogger) Delete(ctx context.Context, principalID, articleID int64) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to delete article", zap.Int64("principal_id", principalID), zap.Int64("article_id", articleID), zap.Error(err), dur)
			return
		}
		l.logger.Debug("article delete", zap.Int64("article_id", articleID), dur)
	}(time.Now())
	return l.articleService.Delete(ctx, principalID, articleID)
}
