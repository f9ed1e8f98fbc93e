package server

import (
	"encoding/json"
	"net/http"

	"neurobeats/core/onboarding"
	"neurobeats/logger"
	"neurobeats/model"
)

// GetPreferencesHandler returns the authenticated user's preferences row.
func (h *APIHandler) GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	prefs, err := h.prefRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		logger.Error("[Preferences] failed to load preferences", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	if prefs == nil {
		writeError(w, http.StatusNotFound, "Preferences not found")
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// UpdatePreferencesRequest carries a partial preferences update. Pointer
// fields distinguish "leave unchanged" from "set empty".
type UpdatePreferencesRequest struct {
	FavoriteGenres       *model.StringList           `json:"favoriteGenres"`
	SelectedSongs        *model.StringList           `json:"selectedSongs"`
	ThemePreference      *string                     `json:"themePreference"`
	NotificationSettings *model.NotificationSettings `json:"notificationSettings"`
	OnboardingCompleted  *bool                       `json:"onboardingCompleted"`
}

// UpdatePreferencesHandler applies a partial preferences update. Completing
// onboarding is just this update with onboardingCompleted true.
func (h *APIHandler) UpdatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.prefRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		logger.Error("[Preferences] failed to load preferences", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	if prefs == nil {
		writeError(w, http.StatusNotFound, "Preferences not found")
		return
	}

	if req.FavoriteGenres != nil {
		prefs.FavoriteGenres = *req.FavoriteGenres
	}
	if req.SelectedSongs != nil {
		prefs.SelectedSongs = *req.SelectedSongs
	}
	if req.ThemePreference != nil {
		prefs.ThemePreference = *req.ThemePreference
	}
	if req.NotificationSettings != nil {
		prefs.NotificationSettings = *req.NotificationSettings
	}
	if req.OnboardingCompleted != nil {
		prefs.OnboardingCompleted = *req.OnboardingCompleted
	}

	if err := h.prefRepo.Update(r.Context(), prefs); err != nil {
		logger.Error("[Preferences] failed to update preferences", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// OnboardingStatusHandler computes the onboarding gate for the session.
func (h *APIHandler) OnboardingStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	prefs, err := h.prefRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		// Treat a failed fetch like an in-flight one: the decision defers
		// rather than flashing the main UI.
		logger.Warn("[Onboarding] failed to load preferences", logger.Int64("userId", userID), logger.ErrorField(err))
		prefs = nil
	}

	decision := onboarding.Decide(true, prefs)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"decision":             decision,
		"shouldShowOnboarding": decision == onboarding.DecisionShow,
	})
}
