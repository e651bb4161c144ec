package handlers

import (
	"errors"
	"net/http"

	"github.com/articled/apiserver/internal/services"
	"github.com/articled/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const articleNotFound = "article not found"

// ArticleHandler provides HTTP handlers for the signed in user's articles.
type ArticleHandler struct {
	articles services.ArticleLifecycle
	logger   *zap.Logger
}

func NewArticleHandler(articles services.ArticleLifecycle, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, logger: logger}
}

// ArticleRouter registers article routes on the given router. Every route requires authMiddleware.
func ArticleRouter(r chi.Router, articles services.ArticleLifecycle, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewArticleHandler(articles, logger)

	r.Use(authMiddleware)
	r.Get("/", handler.ListArticles)
	r.Post("/", handler.CreateArticle)
	r.Route("/{articleID}", func(r chi.Router) {
		r.Get("/", handler.GetArticle)
		r.Patch("/", handler.EditArticle)
		r.Delete("/", handler.DeleteArticle)
	})
}

func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	principalID, ok := h.principal(w, r)
	if !ok {
		return
	}

	articles, err := h.articles.List(r.Context(), principalID)
	if err != nil {
		h.fail(w, err, "failed to list articles", principalID, 0)
		return
	}
	if articles == nil {
		articles = []types.Article{}
	}

	writeJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	principalID, ok := h.principal(w, r)
	if !ok {
		return
	}
	articleID, err := parseID(r, "articleID", "article")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	article, err := h.articles.Get(r.Context(), principalID, articleID)
	if err != nil {
		h.fail(w, err, "failed to fetch article", principalID, articleID)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	principalID, ok := h.principal(w, r)
	if !ok {
		return
	}

	req := &CreateArticleRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	article, err := h.articles.Create(r.Context(), principalID, req.Title, req.Body)
	if err != nil {
		h.fail(w, err, "failed to create article", principalID, 0)
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) EditArticle(w http.ResponseWriter, r *http.Request) {
	principalID, ok := h.principal(w, r)
	if !ok {
		return
	}
	articleID, err := parseID(r, "articleID", "article")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &EditArticleRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	article, err := h.articles.Edit(r.Context(), principalID, articleID, types.ArticleUpdate{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		h.fail(w, err, "failed to update article", principalID, articleID)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	principalID, ok := h.principal(w, r)
	if !ok {
		return
	}
	articleID, err := parseID(r, "articleID", "article")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.articles.Delete(r.Context(), principalID, articleID); err != nil {
		h.fail(w, err, "failed to delete article", principalID, articleID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ArticleHandler) principal(w http.ResponseWriter, r *http.Request) (int64, bool) {
	principalID, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return principalID, true
}

// fail answers 404 for denied access so foreign articles look absent.
func (h *ArticleHandler) fail(w http.ResponseWriter, err error, message string, principalID, articleID int64) {
	if errors.Is(err, services.ErrAccessDenied) {
		writeError(w, http.StatusNotFound, articleNotFound)
		return
	}
	h.logger.Error(message,
		zap.Int64("principal_id", principalID),
		zap.Int64("article_id", articleID),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, message)
}
