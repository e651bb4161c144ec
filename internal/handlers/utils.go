package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const contextPrincipalKey contextKey = "principal"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func withPrincipal(ctx context.Context, principalID int64) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, principalID)
}

func principalFromContext(ctx context.Context) (int64, error) {
	principalID, ok := ctx.Value(contextPrincipalKey).(int64)
	if !ok {
		return 0, errors.New("missing principal")
	}
	if principalID < 1 {
		return 0, errors.New("invalid principal")
	}
	return principalID, nil
}

func parseID(r *http.Request, param, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name + " id")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
