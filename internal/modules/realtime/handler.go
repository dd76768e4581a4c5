package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resortdesk/internal/pkg/jwt"
	"resortdesk/internal/pkg/response"
)

type Handler struct {
	hub *Hub
	jwt *jwt.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{hub: hub, jwt: jwtService}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/rooms", h.RoomFeed)
}

// RoomFeed upgrades to a websocket. Browsers cannot set headers on the
// handshake, so the JWT comes in the token query parameter.
func (h *Handler) RoomFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}
