package routes

import (
	"github.com/anjiri1684/taskmate/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	chat := app.Group("/api/chat")
	chat.Post("", handlers.Chat)
	chat.Get("/health", handlers.ChatHealth)

	chat.Use("/ws", requireUpgrade)
	chat.Get("/ws", websocket.New(handlers.ServeChatWs))
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}
