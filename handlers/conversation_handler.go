package handlers

import (
	"errors"

	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/middleware"
	"github.com/anjiri1684/taskmate/models"
	"github.com/anjiri1684/taskmate/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConversationRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}

type MessageRequest struct {
	Role      models.MessageRole     `json:"role"`
	Content   string                 `json:"content" validate:"notblank,max=50000"`
	ToolCalls map[string]interface{} `json:"tool_calls"`
}

// ownedConversation loads :conversationId and checks the caller owns it.
func ownedConversation(c *fiber.Ctx) (*models.Conversation, *fiber.Error) {
	id, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid conversation ID")
	}

	conversation, err := services.GetConversation(c.UserContext(), id)
	if errors.Is(err, services.ErrConversationNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	}
	if err != nil {
		logger.Log.Error("Failed to load conversation", zap.String("conversation_id", id.String()), zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load conversation")
	}
	if conversation.UserID != middleware.UserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not have access to this conversation")
	}
	return conversation, nil
}

func errorJSON(c *fiber.Ctx, e *fiber.Error) error {
	return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
}

func GetUserConversations(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", services.DefaultPageSize)

	conversations, err := services.ListConversations(c.UserContext(), middleware.UserID(c), page, pageSize)
	if err != nil {
		logger.Log.Error("Failed to list conversations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}
	return c.JSON(conversations)
}

func CreateConversation(c *fiber.Ctx) error {
	var req ConversationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	conversation, err := services.CreateConversation(c.UserContext(), middleware.UserID(c), req.Title)
	if errors.Is(err, services.ErrInvalidTitle) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.Log.Error("Failed to create conversation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create conversation"})
	}
	return c.Status(fiber.StatusCreated).JSON(conversation)
}

func GetConversation(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}
	return c.JSON(conversation)
}

func RenameConversation(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}

	var req ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	renamed, err := services.RenameConversation(c.UserContext(), conversation.ID, req.Title)
	if errors.Is(err, services.ErrInvalidTitle) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.Log.Error("Failed to rename conversation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update conversation"})
	}
	return c.JSON(renamed)
}

func DeleteConversation(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}

	err := services.DeleteConversation(c.UserContext(), conversation.ID)
	if errors.Is(err, services.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}
	if err != nil {
		logger.Log.Error("Failed to delete conversation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete conversation"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetConversationMessages(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 50)

	messages, err := services.ListMessages(c.UserContext(), conversation.ID, page, pageSize)
	if err != nil {
		logger.Log.Error("Failed to fetch messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(messages)
}

func PostConversationMessage(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	message, err := services.AppendMessage(c.UserContext(), services.NewMessage{
		ConversationID: conversation.ID,
		UserID:         middleware.UserID(c),
		Role:           req.Role,
		Content:        req.Content,
		ToolCalls:      req.ToolCalls,
	})
	switch {
	case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	case err != nil:
		logger.Log.Error("Failed to save message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func ExportConversation(c *fiber.Ctx) error {
	conversation, ferr := ownedConversation(c)
	if ferr != nil {
		return errorJSON(c, ferr)
	}

	messages, err := services.ListAllMessages(c.UserContext(), conversation.ID)
	if err != nil {
		logger.Log.Error("Failed to fetch messages for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	url, err := services.ExportTranscript(c.UserContext(), conversation, messages)
	if errors.Is(err, services.ErrExportNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Transcript export is not available"})
	}
	if err != nil {
		logger.Log.Error("Failed to export transcript", zap.String("conversation_id", conversation.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export transcript"})
	}
	return c.JSON(fiber.Map{"url": url})
}
