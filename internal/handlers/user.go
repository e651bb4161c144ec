package handlers

import (
	"errors"
	"net/http"

	"github.com/articled/apiserver/internal/services"
	"github.com/articled/apiserver/internal/store"
	"github.com/articled/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// UserHandler serves the signed in user's own profile.
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// UserRouter registers user routes on the given router. Every route requires authMiddleware.
func UserRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewUserHandler(userService, logger)

	r.Use(authMiddleware)
	r.Get("/me", handler.Me)
	r.Patch("/", handler.Edit)
}

// Me returns the current authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principalID, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.Me(r.Context(), principalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.logger.Error("failed to load user", zap.Int64("principal_id", principalID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Edit applies a partial update to the current user's profile.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	principalID, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req := &EditUserRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	user, err := h.userService.Edit(r.Context(), principalID, types.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsTaken):
			writeError(w, http.StatusConflict, "credentials taken")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			h.logger.Error("failed to update user", zap.Int64("principal_id", principalID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}
