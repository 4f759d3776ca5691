package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/middleware"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/realtime"
)

type WSHandler struct {
	hub    *realtime.Hub
	secret []byte
}

func NewWSHandler(hub *realtime.Hub, secret []byte) *WSHandler {
	return &WSHandler{hub: hub, secret: secret}
}

// GET /ws?token=... upgrades the connection. The token travels as a query
// parameter because browsers cannot set headers on websocket handshakes.
func (h *WSHandler) Serve(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	claims, err := middleware.ParseToken(tokenStr, h.secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := realtime.Upgrade(c.Writer, c.Request)
	if err != nil {
		log.Printf("[ws][upgrade][err] user=%d: %v", claims.UserID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket upgrade failed"})
		return
	}

	h.hub.Register(conn)
	h.hub.Join(realtime.UserRoom(claims.UserID), conn)
	log.Printf("[ws][connect] user=%d", claims.UserID)

	go h.readLoop(conn, claims.UserID)
}

func (h *WSHandler) readLoop(conn *realtime.Conn, userID int64) {
	defer func() {
		h.hub.Unregister(conn)
		log.Printf("[ws][disconnect] user=%d", userID)
	}()

	for {
		var msg realtime.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "join":
			if msg.Room != "" {
				h.hub.Join(msg.Room, conn)
			}
		case "leave":
			if msg.Room != "" {
				h.hub.Leave(msg.Room, conn)
			}
		}
	}
}
