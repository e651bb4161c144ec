package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/articled/apiserver/types"
	"go.uber.org/zap"
)

// EventPublisher delivers a payload to a broker channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

var _ ArticleLifecycle = (*ArticleEvents)(nil)

// ArticleEvents publishes an ArticleEvent after every successful mutation.
// Publish failures are logged; the mutation has already been stored.
type ArticleEvents struct {
	publisher      EventPublisher
	channel        string
	logger         *zap.Logger
	articleService ArticleLifecycle
	now            func() time.Time
}

func NewArticleEvents(log *zap.Logger, publisher EventPublisher, channel string, s ArticleLifecycle) *ArticleEvents {
	return &ArticleEvents{
		publisher:      publisher,
		channel:        channel,
		logger:         log,
		articleService: s,
		now:            time.Now,
	}
}

func (e *ArticleEvents) List(ctx context.Context, principalID int64) ([]types.Article, error) {
	return e.articleService.List(ctx, principalID)
}

func (e *ArticleEvents) Get(ctx context.Context, principalID, articleID int64) (types.Article, error) {
	return e.articleService.Get(ctx, principalID, articleID)
}

func (e *ArticleEvents) Create(ctx context.Context, principalID int64, title, body string) (types.Article, error) {
	article, err := e.articleService.Create(ctx, principalID, title, body)
	if err != nil {
		return article, err
	}
	e.publish(ctx, types.ArticleCreated, article.ID, article.OwnerID, article.Slug)
	return article, nil
}

func (e *ArticleEvents) Edit(ctx context.Context, principalID, articleID int64, upd types.ArticleUpdate) (types.Article, error) {
	article, err := e.articleService.Edit(ctx, principalID, articleID, upd)
	if err != nil {
		return article, err
	}
	// Nothing was written.
	if upd.Title == nil && upd.Body == nil {
		return article, nil
	}
	e.publish(ctx, types.ArticleUpdated, article.ID, article.OwnerID, article.Slug)
	return article, nil
}

func (e *ArticleEvents) Delete(ctx context.Context, principalID, articleID int64) error {
	if err := e.articleService.Delete(ctx, principalID, articleID); err != nil {
		return err
	}
	e.publish(ctx, types.ArticleDeleted, articleID, principalID, "")
	return nil
}

func (e *ArticleEvents) publish(ctx context.Context, typ types.ArticleEventType, articleID, ownerID int64, slug string) {
	event := types.ArticleEvent{
		Type:       typ,
		ArticleID:  articleID,
		OwnerID:    ownerID,
		Slug:       slug,
		OccurredAt: e.now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("failed to encode article event", zap.String("type", string(typ)), zap.Error(err))
		return
	}

	attrs := map[string]string{
		"type":     string(typ),
		"owner_id": strconv.FormatInt(ownerID, 10),
	}
	id, err := e.publisher.Publish(ctx, e.channel, data, attrs)
	if err != nil {
		e.logger.Error("failed to publish article event",
			zap.String("type", string(typ)),
			zap.Int64("article_id", articleID),
			zap.Error(err),
		)
		return
	}
	e.logger.Debug("article event published", zap.String("type", string(typ)), zap.String("message_id", id))
}
