package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neurobeats/core/auth"
)

func newAuthTestHandler() *APIHandler {
	return &APIHandler{tokens: auth.NewTokenIssuer("test-secret", time.Hour)}
}

func protectedEcho(h *APIHandler) http.HandlerFunc {
	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "missing identity")
			return
		}
		username, _ := GetUsernameFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]interface{}{"userId": userID, "username": username})
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	h := newAuthTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/player", nil)
	rec := httptest.NewRecorder()

	protectedEcho(h)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	h := newAuthTestHandler()
	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/player", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		protectedEcho(h)(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	h := newAuthTestHandler()

	other := auth.NewTokenIssuer("other-secret", time.Hour)
	token, err := other.GenerateToken(1, "neo")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/player", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedEcho(h)(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for foreign token, got %d", rec.Code)
	}
}

func TestAuthMiddlewarePassesIdentity(t *testing.T) {
	h := newAuthTestHandler()
	token, err := h.tokens.GenerateToken(42, "neo")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/player", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedEcho(h)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		UserID   int64  `json:"userId"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != 42 || body.Username != "neo" {
		t.Errorf("unexpected identity: %+v", body)
	}
}
