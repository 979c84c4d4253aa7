package handlers

import (
	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/utils"
	"github.com/anjiri1684/taskmate/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type authFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// ServeEventsWs authenticates the first frame, then keeps the connection
// registered with the hub until the client goes away.
func ServeEventsWs(c *websocketcontrib.Conn) {
	var auth authFrame
	if err := c.ReadJSON(&auth); err != nil || auth.Type != "auth" {
		logger.Log.Info("WebSocket auth failed: invalid or missing auth message", zap.Error(err))
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	userID, err := utils.ParseToken(auth.Token)
	if err != nil {
		logger.Log.Info("WebSocket auth failed: invalid token", zap.Error(err))
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	logger.Log.Debug("WebSocket client authenticated", zap.String("user_id", userID.String()))
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// Clients only listen; reading keeps the connection alive and notices closes.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsUnexpectedCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				logger.Log.Warn("WebSocket read error", zap.String("user_id", userID.String()), zap.Error(err))
			}
			return
		}
	}
}
