package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"neurobeats/core/auth"
	"neurobeats/logger"
	"neurobeats/model"
	"neurobeats/repository"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Identifier string `json:"identifier"` // Username or email
	Password   string `json:"password"`
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// authResponse is the body returned on successful login/registration.
type authResponse struct {
	Token string     `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func toUserPayload(user *model.User) userPayload {
	return userPayload{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName.String,
		AvatarURL: user.AvatarURL.String,
	}
}

// RegisterHandler handles user registration requests.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := auth.ValidateRegistration(req.Email, req.Password, req.Username); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if req.FullName != "" {
		user.FullName.String = req.FullName
		user.FullName.Valid = true
	}

	userID, err := h.userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.Warn("[Register] username or email already exists",
				logger.String("username", req.Username),
				logger.String("email", req.Email))
			writeError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		logger.Error("[Register] failed to create user", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.ID = userID

	token, err := h.tokens.GenerateToken(userID, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// First sighting of this identity: mirror it into the profile store.
	h.bridge.Resolve(r.Context(), user)

	logger.Info("[Register] user registered", logger.Int64("userId", userID), logger.String("username", user.Username))
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserPayload(user)})
}

// LoginHandler handles user login requests.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("[Login] failed to decode request body", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username/email and password are required")
		return
	}

	// Email or username login.
	var user *model.User
	var err error
	if strings.Contains(req.Identifier, "@") {
		user, err = h.userRepo.GetUserByEmail(strings.ToLower(req.Identifier))
	} else {
		user, err = h.userRepo.GetUserByUsername(strings.ToLower(req.Identifier))
	}
	if err != nil {
		logger.Error("[Login] failed to query user", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		logger.Warn("[Login] user not found", logger.String("identifier", req.Identifier))
		writeError(w, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("[Login] password verification failed", logger.String("username", user.Username))
		writeError(w, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		logger.Error("[Login] failed to generate token", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.bridge.Resolve(r.Context(), user)

	logger.Info("[Login] login successful", logger.String("username", user.Username))
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserPayload(user)})
}

// MeHandler returns the authenticated user's identity.
func (h *APIHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Error("[Me] failed to query user", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	writeJSON(w, http.StatusOK, toUserPayload(user))
}

// LogoutHandler records a sign-out. Tokens are stateless, so the server-side
// effect is re-arming the profile-sync marker.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	h.bridge.Logout(userID)
	h.players.Drop(userID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// AuthMiddleware checks for a valid JWT token and puts the claimed user ID
// and username on the request context before calling the next handler.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.ParseToken(parts[1])
		if err != nil {
			// Identity errors degrade to unauthenticated, never crash.
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
