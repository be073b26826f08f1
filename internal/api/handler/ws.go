package handler

import (
	"net/http"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Lock down in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection to a WebSocket and registers
// it with the connection registry. The connection starts anonymous; it is
// bound to the caller's identity only when the client sends an
// authenticate event matching the session token it presented here.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	userID, _, err := h.parseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &realtime.WebSocketClient{
		ConnID:     uuid.New().String(),
		Conn:       conn,
		Registry:   h.Registry,
		Send:       make(chan models.Event, 256),
		AuthUserID: userID,
	}

	h.Registry.Register(client)
	client.Run()
}
