// File: /controllers/notification_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"friendloop-api/realtime"
	"friendloop-api/services"
)

// NotificationController upgrades websocket connections into hub entries.
// The credential is validated once, at connection establishment; a bad token
// terminates the connection without registering it.
type NotificationController struct {
	hub      *realtime.Hub
	tokens   *services.TokenService
	upgrader websocket.Upgrader
}

func NewNotificationController(hub *realtime.Hub, tokens *services.TokenService) *NotificationController {
	return &NotificationController{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS handles GET /ws. The token arrives in the "token" query parameter
// or the Authorization header.
func (nc *NotificationController) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	claims, err := nc.tokens.Verify(token)
	if err != nil {
		// Terminate before the upgrade; no descriptive error is owed to an
		// unauthenticated peer.
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := nc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	realtime.Serve(nc.hub, claims.UserID, conn)
}
