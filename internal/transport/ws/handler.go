package ws

import (
	"net/http"

	"github.com/tasktrail/backend/internal/auth"
	"github.com/tasktrail/backend/internal/logger"
	"github.com/tasktrail/backend/internal/repository"
	"nhooyr.io/websocket"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (WebSocket can't send headers).
// The same rules as the HTTP middleware apply: the token must verify and
// must still be the user's stored session token.
func ServeWS(hub *Hub, tokens *auth.TokenManager, userRepo repository.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		user, err := userRepo.GetByID(r.Context(), userID)
		if err != nil {
			http.Error(w, "something went wrong", http.StatusInternalServerError)
			return
		}
		if user == nil || user.Token == nil || *user.Token != tokenStr {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			logger.Warn("ws: accept error", "error", err)
			return
		}

		client := NewClient(hub, conn, user.ID)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
