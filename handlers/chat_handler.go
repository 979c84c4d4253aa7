package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/services"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	errEmptyMessage   = "Message cannot be empty"
	errChatProcessing = "Error processing chat message"
	logPreviewRunes   = 50
)

type ChatRequest struct {
	Message string `json:"message" validate:"notblank"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func preview(message string) string {
	if utf8.RuneCountInString(message) <= logPreviewRunes {
		return message
	}
	return string([]rune(message)[:logPreviewRunes]) + "..."
}

func answer(message string) ChatResponse {
	reply := services.SelectReply(message)
	logger.Log.Info("Chat message processed",
		zap.String("intent", services.MatchIntent(message)),
		zap.String("message", preview(message)))
	return ChatResponse{Reply: reply}
}

func Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errEmptyMessage})
	}

	if err := c.JSON(answer(req.Message)); err != nil {
		logger.Log.Error("Chat error", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, errChatProcessing)
	}
	return nil
}

func ChatHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "chat_api_healthy"})
}

// ServeChatWs answers every {"message": ...} frame with a {"reply": ...} frame.
func ServeChatWs(c *websocketcontrib.Conn) {
	defer c.Close()

	for {
		var req ChatRequest
		if err := c.ReadJSON(&req); err != nil {
			if websocketcontrib.IsUnexpectedCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				logger.Log.Warn("Chat websocket read error", zap.Error(err))
			}
			return
		}

		var out interface{}
		if strings.TrimSpace(req.Message) == "" {
			out = fiber.Map{"error": errEmptyMessage}
		} else {
			out = answer(req.Message)
		}
		if err := c.WriteJSON(out); err != nil {
			logger.Log.Warn("Chat websocket write error", zap.Error(err))
			return
		}
	}
}
