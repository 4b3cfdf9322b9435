package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// GetThreats returns active threat advisories, newest first (GET /api/threats?limit=N).
func GetThreats(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	threats, err := services.GetActiveThreats(limit)
	if err != nil {
		log.Printf("[GetThreats] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to fetch threats"})
		return
	}

	writeJSON(w, http.StatusOK, threats)
}

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ThreatFeedWebSocket streams newly published advisories to the dashboard
// (GET /ws/threats). Runs behind RequireAuth, which also accepts the session
// token via the `token` query parameter for browser WebSocket clients.
func ThreatFeedWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	services.RegisterFeedConnection(userID, conn)
	defer services.UnregisterFeedConnection(userID)

	// The feed is one-way; reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
