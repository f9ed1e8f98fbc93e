package server

import (
	"net/http"
	"time"

	"neurobeats/logger"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// PlayerStreamHandler pushes player snapshots over a websocket. Browsers
// cannot set an Authorization header on a websocket, so the token comes in
// as a query parameter instead of going through AuthMiddleware.
func (h *APIHandler) PlayerStreamHandler(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	claims, err := h.tokens.ParseToken(tokenStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	store := h.players.StoreFor(claims.UserID)
	updates, cancel := store.Subscribe()
	defer cancel()

	// Reader goroutine drains control frames and unblocks the writer when
	// the peer goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(store.Snapshot()); err != nil {
		logger.Warn("websocket write", logger.ErrorField(err))
		return
	}

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(state); err != nil {
				logger.Warn("websocket write", logger.ErrorField(err))
				return
			}
		case <-closed:
			return
		}
	}
}
