package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"neurobeats/config"
	"neurobeats/core/auth"
	"neurobeats/core/catalog"
	"neurobeats/core/player"
	"neurobeats/core/session"
	"neurobeats/repository"
)

// contextKey is the type for request-context keys set by middleware.
type contextKey string

const (
	ctxUserID   contextKey = "userID"
	ctxUsername contextKey = "username"
)

// APIHandler handles all API requests.
type APIHandler struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	prefRepo    repository.PreferenceRepository
	historyRepo repository.HistoryRepository
	catalog     *catalog.Service
	players     *player.Manager
	bridge      *session.Bridge
	tokens      *auth.TokenIssuer
	cfg         *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	prefRepo repository.PreferenceRepository,
	historyRepo repository.HistoryRepository,
	catalogSvc *catalog.Service,
	players *player.Manager,
	bridge *session.Bridge,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		prefRepo:    prefRepo,
		historyRepo: historyRepo,
		catalog:     catalogSvc,
		players:     players,
		bridge:      bridge,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationErrors writes the field-tagged validation failures of a form.
func writeValidationErrors(w http.ResponseWriter, errs []*auth.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": errs,
	})
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(ctxUserID).(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(ctxUsername).(string)
	if !ok {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}
