package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"neurobeats/core/auth"
	"neurobeats/logger"
	"neurobeats/storage"
)

// GetProfileHandler returns the authenticated user's profile row.
func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := h.profileRepo.GetProfile(userID)
	if err != nil {
		logger.Error("[Profile] failed to load profile", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfileRequest carries the user-editable profile fields. Pointer
// fields distinguish "leave unchanged" from "set empty".
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatarUrl"`
}

// UpdateProfileHandler applies a partial profile update.
func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profileRepo.GetProfile(userID)
	if err != nil {
		logger.Error("[Profile] failed to load profile", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if verr := auth.ValidateUsername(username); verr != nil {
			writeValidationErrors(w, []*auth.ValidationError{verr})
			return
		}
		available, err := h.profileRepo.IsUsernameAvailable(username, userID)
		if err != nil {
			logger.Error("[Profile] availability check failed", logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Failed to check username")
			return
		}
		if !available {
			writeValidationErrors(w, []*auth.ValidationError{
				{Field: "username", Message: "username is already taken"},
			})
			return
		}
		profile.Username = username
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Avatar != nil {
		profile.AvatarURL = *req.Avatar
	}

	if err := h.profileRepo.UpdateProfile(profile); err != nil {
		logger.Error("[Profile] failed to update profile", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	// The users row backs login by username, so it has to mirror the profile.
	if err := h.userRepo.UpdateIdentity(userID, profile.Email, profile.Username, profile.AvatarURL); err != nil {
		logger.Error("[Profile] failed to refresh identity row", logger.Int64("userId", userID), logger.ErrorField(err))
	}

	writeJSON(w, http.StatusOK, profile)
}

// CheckUsernameHandler reports whether a username is free.
func (h *APIHandler) CheckUsernameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	username := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("username")))
	if verr := auth.ValidateUsername(username); verr != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"available": false})
		return
	}

	available, err := h.profileRepo.IsUsernameAvailable(username, userID)
	if err != nil {
		logger.Error("[Profile] availability check failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to check username")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadAvatarHandler stores an avatar image and writes its URL back onto
// the profile row.
func (h *APIHandler) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		// Fall back on the filename extension for clients that send a generic type.
		ext = strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			writeError(w, http.StatusBadRequest, "Unsupported avatar format")
			return
		}
	}

	url, err := storage.UploadAvatar(r.Context(), h.cfg, userID, file, header.Size, contentType, ext)
	if err != nil {
		logger.Error("[Avatar] upload failed", logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	profile, err := h.profileRepo.GetProfile(userID)
	if err == nil && profile != nil {
		profile.AvatarURL = url
		err = h.profileRepo.UpdateProfile(profile)
	}
	if err != nil {
		// Keep the upload; only the profile pointer write failed.
		logger.Error("[Avatar] failed to store avatar URL", logger.Int64("userId", userID), logger.ErrorField(err))
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": url})
}
