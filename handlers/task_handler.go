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

type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"notblank,max=255"`
	Description string            `json:"description" validate:"max=5000"`
	Status      models.TaskStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=255"`
	Description *string            `json:"description" validate:"omitempty,max=5000"`
	Status      *models.TaskStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	case errors.Is(err, services.ErrInvalidTaskStatus), errors.Is(err, services.ErrInvalidTaskTitle):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.Log.Error("Task operation failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process task"})
}

func taskID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("taskId"))
	return id, err == nil
}

func ListTasks(c *fiber.Ctx) error {
	tasks, err := services.ListTasks(c.UserContext(), middleware.UserID(c), models.TaskStatus(c.Query("status")))
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(tasks)
}

func CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := services.CreateTask(c.UserContext(), middleware.UserID(c), req.Title, req.Description, req.Status)
	if err != nil {
		return taskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func GetTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	task, err := services.GetTask(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(task)
}

func UpdateTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := services.UpdateTask(c.UserContext(), middleware.UserID(c), id, services.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(task)
}

func DeleteTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}
	if err := services.DeleteTask(c.UserContext(), middleware.UserID(c), id); err != nil {
		return taskError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
