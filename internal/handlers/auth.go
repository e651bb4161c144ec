package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/articled/apiserver/internal/auth"
	"github.com/articled/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// TokenParser resolves an access token to a user id.
type TokenParser interface {
	Parse(token string) (int64, error)
}

// UserChecker reports whether a user still exists.
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// AuthHandler provides signup and signin endpoints.
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, logger *zap.Logger) {
	handler := NewAuthHandler(authService, logger)

	r.Post("/signup", handler.Signup)
	r.Post("/signin", handler.Signin)
}

// RequireAuth enforces bearer token authentication and stores the principal
// id in the request context. Tokens of deleted users are refused.
func RequireAuth(tokens TokenParser, users UserChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			principalID, err := tokens.Parse(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			exists, err := users.Exists(r.Context(), principalID)
			if err != nil {
				logger.Error("failed to load principal", zap.Int64("principal_id", principalID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to authenticate")
				return
			}
			if !exists {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principalID)))
		})
	}
}

// Signup creates a new user account and returns an access token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req := &AuthRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	result, err := h.authService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrCredentialsTaken) {
			writeError(w, http.StatusConflict, "credentials taken")
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Signin verifies credentials and returns an access token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	req := &AuthRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	result, err := h.authService.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("signin failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
