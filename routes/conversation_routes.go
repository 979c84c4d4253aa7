package routes

import (
	"github.com/anjiri1684/taskmate/handlers"
	"github.com/anjiri1684/taskmate/middleware"
	"github.com/gofiber/fiber/v2"
)

func ConversationRoutes(app *fiber.App) {
	conversations := app.Group("/api/v1/conversations", middleware.Protected()...)
	conversations.Get("", handlers.GetUserConversations)
	conversations.Post("", handlers.CreateConversation)
	conversations.Get("/:conversationId", handlers.GetConversation)
	conversations.Patch("/:conversationId", handlers.RenameConversation)
	conversations.Delete("/:conversationId", handlers.DeleteConversation)
	conversations.Get("/:conversationId/messages", handlers.GetConversationMessages)
	conversations.Post("/:conversationId/messages", handlers.PostConversationMessage)
	conversations.Post("/:conversationId/export", handlers.ExportConversation)
}
