package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/articled/apiserver/config"
	"github.com/articled/apiserver/internal/auth"
	"github.com/articled/apiserver/internal/db"
	"github.com/articled/apiserver/internal/handlers"
	"github.com/articled/apiserver/internal/mq"
	"github.com/articled/apiserver/internal/services"
	"github.com/articled/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// Deps are the collaborators the HTTP router is built from.
type Deps struct {
	DB       handlers.Pinger
	Logger   *zap.Logger
	Tokens   handlers.TokenParser
	Auth     *services.AuthService
	Users    *services.UserService
	Articles services.ArticleLifecycle
	Gatherer prometheus.Gatherer
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	db         *sql.DB
	queue      *mq.MQ
	logger     *zap.Logger
}

// New opens the database and broker and wires the article stack.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.MigrateSQLite(dbConn); err != nil {
			_ = dbConn.Close()
			return nil, err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	userRepo := store.NewUserRepository(dbConn)
	articleRepo := store.NewArticleRepository(dbConn)

	var articles services.ArticleLifecycle = services.NewArticleService(articleRepo)
	articles = services.NewArticleLogger(logger.With(zap.String("service", "article")), articles)
	articles = services.NewArticleMetrics(registry, articles)

	queue, err := mq.Open(ctx, cfg.MQ)
	switch {
	case errors.Is(err, mq.ErrDisabled):
		logger.Info("article events disabled")
	case err != nil:
		_ = dbConn.Close()
		return nil, err
	default:
		articles = services.NewArticleEvents(logger, queue, cfg.MQ.Channel, articles)
		logger.Info("publishing article events", zap.String("backend", cfg.MQ.Backend), zap.String("channel", cfg.MQ.Channel))
	}

	router := NewRouter(Deps{
		DB:       dbConn,
		Logger:   logger,
		Tokens:   tokens,
		Auth:     services.NewAuthService(userRepo, tokens),
		Users:    services.NewUserService(userRepo),
		Articles: articles,
		Gatherer: registry,
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		db:         dbConn,
		queue:      queue,
		logger:     logger,
	}, nil
}

// NewRouter builds the HTTP routes over d.
func NewRouter(d Deps) *chi.Mux {
	authMiddleware := handlers.RequireAuth(d.Tokens, d.Users, d.Logger)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		handlers.RequestLogger(d.Logger),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
	)
	router.Get("/healthz", handlers.Healthz(d.DB, d.Logger))
	router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, d.Auth, d.Logger)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, d.Users, authMiddleware, d.Logger)
	})
	router.Route("/articles", func(r chi.Router) {
		handlers.ArticleRouter(r, d.Articles, authMiddleware, d.Logger)
	})
	return router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the broker and database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.queue != nil {
		if qerr := s.queue.Close(); qerr != nil {
			s.logger.Warn("failed to close message broker", zap.Error(qerr))
		}
	}
	if s.db != nil {
		if dberr := s.db.Close(); dberr != nil && err == nil {
			err = dberr
		}
	}
	return err
}
