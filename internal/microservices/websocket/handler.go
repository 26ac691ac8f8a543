package websocket

import (
	"net/http"
	"time"

	"fandomhub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests to notification streams
type Handler struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	sendBuffer int
}

// NewHandler builds the upgrade handler. An empty allowedOrigins accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string, sendBuffer int) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &Handler{
		hub:        hub,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// ServeWS must run behind WebSocketAuthMiddleware
// GET /ws/notifications
func (h *Handler) ServeWS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	username, _ := c.Get(middleware.ContextUsername)
	name, _ := username.(string)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.hub.logger.Warn("websocket_upgrade_failed", "user_id", userID, "error", err)
		return
	}

	client := NewClient(h.hub, conn, userID, name, h.sendBuffer)
	if !h.hub.Join(client) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(WriteWait))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
