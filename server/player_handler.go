package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"neurobeats/model"

	"github.com/gorilla/mux"
)

// PlayerStateHandler returns the caller's full player snapshot.
func (h *APIHandler) PlayerStateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.players.StoreFor(userID).Snapshot())
}

// SetCurrentTrackHandler replaces the track under the playhead.
func (h *APIHandler) SetCurrentTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if track.ID == "" {
		writeError(w, http.StatusBadRequest, "Track ID is required")
		return
	}

	store := h.players.StoreFor(userID)
	store.SetCurrentTrack(track)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SetPlayingHandler flips the playing flag.
func (h *APIHandler) SetPlayingHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		IsPlaying bool `json:"isPlaying"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := h.players.StoreFor(userID)
	store.SetIsPlaying(req.IsPlaying)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SetVolumeHandler sets the playback volume. The store itself accepts any
// value, so the range check lives here at the API edge.
func (h *APIHandler) SetVolumeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Volume < 0 || req.Volume > 1 {
		writeError(w, http.StatusBadRequest, "Volume must be between 0 and 1")
		return
	}

	store := h.players.StoreFor(userID)
	store.SetVolume(req.Volume)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SetProgressHandler records the playhead position in seconds.
func (h *APIHandler) SetProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Progress < 0 {
		writeError(w, http.StatusBadRequest, "Progress must not be negative")
		return
	}

	store := h.players.StoreFor(userID)
	store.SetProgress(req.Progress)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SetDurationHandler records the current track's duration in seconds.
func (h *APIHandler) SetDurationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "Duration must not be negative")
		return
	}

	store := h.players.StoreFor(userID)
	store.SetDuration(req.Duration)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// AddToQueueHandler appends a track to the caller's queue.
func (h *APIHandler) AddToQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if track.ID == "" {
		writeError(w, http.StatusBadRequest, "Track ID is required")
		return
	}

	store := h.players.StoreFor(userID)
	store.AddToQueue(track)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// RemoveFromQueueHandler drops the queue entry at the given position.
func (h *APIHandler) RemoveFromQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "Invalid queue index")
		return
	}

	store := h.players.StoreFor(userID)
	store.RemoveFromQueue(index)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// ClearQueueHandler empties the queue and resets the index. The current
// track and playback state stay as they are.
func (h *APIHandler) ClearQueueHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := h.players.StoreFor(userID)
	store.ClearQueue()
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// NextTrackHandler advances the playhead.
func (h *APIHandler) NextTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := h.players.StoreFor(userID)
	store.NextTrack()
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// PreviousTrackHandler moves the playhead back.
func (h *APIHandler) PreviousTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := h.players.StoreFor(userID)
	store.PreviousTrack()
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// ToggleShuffleHandler flips shuffle mode.
func (h *APIHandler) ToggleShuffleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := h.players.StoreFor(userID)
	store.ToggleShuffle()
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// ToggleRepeatHandler cycles the repeat mode none -> all -> one.
func (h *APIHandler) ToggleRepeatHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := h.players.StoreFor(userID)
	store.ToggleRepeat()
	writeJSON(w, http.StatusOK, store.Snapshot())
}
