package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/articled/apiserver/config"
	"github.com/articled/apiserver/internal/mq"
	"github.com/articled/apiserver/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect article lifecycle events",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Consume and log article events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if errors.Is(err, mq.ErrDisabled) {
			return errors.New("MQ_BACKEND is not set")
		}
		if err != nil {
			return err
		}
		defer queue.Close()

		logger.Info("tailing article events", zap.String("backend", cfg.MQ.Backend), zap.String("channel", cfg.MQ.Channel))
		err = queue.SubscribeArticleEvents(ctx, cfg.MQ.Channel,
			func(_ context.Context, event types.ArticleEvent) error {
				logger.Info("article event",
					zap.String("type", string(event.Type)),
					zap.Int64("article_id", event.ArticleID),
					zap.Int64("owner_id", event.OwnerID),
					zap.String("slug", event.Slug),
					zap.Time("occurred_at", event.OccurredAt),
				)
				return nil
			},
			func(msg mq.Message, err error) {
				logger.Warn("skipping invalid message", zap.String("id", msg.ID), zap.Error(err))
			},
		)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}
