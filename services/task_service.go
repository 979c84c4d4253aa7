package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/taskmate/database"
	"github.com/anjiri1684/taskmate/models"
	"github.com/anjiri1684/taskmate/websocket"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("status must be one of 'pending', 'in-progress', 'completed'")
	ErrInvalidTaskTitle  = errors.New("title is required")
)

const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

type TaskChanges struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

func publishTask(eventType string, task *models.Task) {
	websocket.Publish(&websocket.Event{UserID: task.UserID, Type: eventType, Payload: task})
}

func CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string, status models.TaskStatus) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTaskTitle
	}
	if status == "" {
		status = models.TaskPending
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task := models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      status,
	}
	if err := database.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, errors.Wrap(err, "create task")
	}

	publishTask(EventTaskCreated, &task)
	return &task, nil
}

// ListTasks returns the owner's tasks, newest first. An empty status lists all.
func ListTasks(ctx context.Context, ownerID uuid.UUID, status models.TaskStatus) ([]models.Task, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	query := database.DB.WithContext(ctx).Where("user_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	tasks := []models.Task{}
	if err := query.Order("created_at desc").Order("id").Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	return tasks, nil
}

// GetTask loads a task owned by ownerID. Tasks of other users are reported as missing.
func GetTask(ctx context.Context, ownerID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := database.DB.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get task %s", id)
	}
	return &task, nil
}

func UpdateTask(ctx context.Context, ownerID, id uuid.UUID, changes TaskChanges) (*models.Task, error) {
	task, err := GetTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		if title == "" {
			return nil, ErrInvalidTaskTitle
		}
		task.Title = title
	}
	if changes.Description != nil {
		task.Description = strings.TrimSpace(*changes.Description)
	}
	if changes.Status != nil {
		if !changes.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *changes.Status
	}

	if err := database.DB.WithContext(ctx).Save(task).Error; err != nil {
		return nil, errors.Wrapf(err, "update task %s", id)
	}

	publishTask(EventTaskUpdated, task)
	return task, nil
}

func DeleteTask(ctx context.Context, ownerID, id uuid.UUID) error {
	task, err := GetTask(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := database.DB.WithContext(ctx).Delete(task).Error; err != nil {
		return errors.Wrapf(err, "delete task %s", id)
	}

	publishTask(EventTaskDeleted, task)
	return nil
}
