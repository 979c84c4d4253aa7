package middleware

import (
	"strings"

	config "github.com/anjiri1684/taskmate/configs"
	"github.com/anjiri1684/taskmate/utils"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// Protected verifies the bearer token and resolves the caller's user id.
func Protected() []fiber.Handler {
	return []fiber.Handler{
		jwtware.New(jwtware.Config{
			SigningKey:   []byte(config.Config("JWT_SECRET")),
			ErrorHandler: jwtError,
		}),
		currentUser,
	}
}

func currentUser(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
	}
	c.Locals(userIDKey, userID)
	return c.Next()
}

// UserID returns the id resolved by Protected. Only valid behind it.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}
