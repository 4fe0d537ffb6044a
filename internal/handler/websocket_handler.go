package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProfileFeed godoc
// @Summary      Profile change feed (WebSocket)
// @Description  Sends the current profile, then every saved or reset profile for the same user.
// @Description  <br>
// @Description  **Not a plain HTTP API.** Connect with `ws://` or `wss://`.
// @Description  When auth is on, pass the JWT in the `token` query parameter.
// @Tags         WebSocket (Profile)
// @Param        token    query     string  false  "JWT token"
// @Success      101      {string}  string  "101 Switching Protocols"
// @Failure      401      {object}  handler.ErrorResponse "missing or invalid token"
// @Router       /ws/profile [get]
func (h *ProfileHandler) ProfileFeed(c *gin.Context) {
	username := ""
	if h.issuer != nil {
		claims, err := h.issuer.ValidateToken(c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
			return
		}
		username = claims.Username
	}
	store := h.store(username)
	log := h.log.With(zap.String("key", store.Key()))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	// subscribe before the snapshot so no save falls in between
	updates, unsubscribe := h.hub.Subscribe(store.Key())
	defer unsubscribe()

	state, err := store.Load(c.Request.Context())
	if err != nil {
		log.Error("failed to load profile for feed", zap.Error(err))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to load profile"))
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(state); err != nil {
		log.Warn("failed to send profile snapshot", zap.Error(err))
		return
	}
	log.Debug("profile feed opened")

	// the client sends nothing; reading only detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			log.Debug("profile feed closed")
			return
		case state, ok := <-updates:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(state); err != nil {
				log.Warn("failed to send profile update", zap.Error(err))
				return
			}
		}
	}
}
