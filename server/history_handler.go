package server

import (
	"encoding/json"
	"net/http"

	"neurobeats/logger"
)

// RecordPlayHandler appends a listening history entry for the caller.
func (h *APIHandler) RecordPlayHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		TrackID      string `json:"trackId"`
		PlayDuration int    `json:"playDuration"`
		Completed    bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TrackID == "" {
		writeError(w, http.StatusBadRequest, "Track ID is required")
		return
	}
	if req.PlayDuration < 0 {
		writeError(w, http.StatusBadRequest, "Play duration must not be negative")
		return
	}

	entry, err := h.historyRepo.Append(r.Context(), userID, req.TrackID, req.PlayDuration, req.Completed)
	if err != nil {
		logger.Error("failed to record play", logger.Int64("userID", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to record play")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// RecentHistoryHandler lists the caller's most recent plays.
func (h *APIHandler) RecentHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entries, err := h.historyRepo.Recent(r.Context(), userID, parseLimit(r, 50, 100))
	if err != nil {
		logger.Error("failed to load history", logger.Int64("userID", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
		"count":   len(entries),
	})
}
