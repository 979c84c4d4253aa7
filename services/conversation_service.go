package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anjiri1684/taskmate/database"
	"github.com/anjiri1684/taskmate/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidTitle         = errors.New("title must be at most 255 characters")
	ErrInvalidRole          = errors.New("role must be 'user' or 'assistant'")
	ErrInvalidContent       = errors.New("content must be non-empty and at most 50000 characters")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 100000
)

// Pagination normalizes 1-based page numbers and page sizes into limit/offset.
// Pages past MaxPage are clamped so the offset stays small and non-negative.
func Pagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

func normalizeTitle(title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > models.ConversationTitleMaxLength {
		return nil, ErrInvalidTitle
	}
	return &trimmed, nil
}

func CreateConversation(ctx context.Context, ownerID uuid.UUID, title *string) (*models.Conversation, error) {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	conversation := models.Conversation{UserID: ownerID, Title: normalized}
	if err := database.DB.WithContext(ctx).Create(&conversation).Error; err != nil {
		return nil, errors.Wrap(err, "create conversation")
	}
	return &conversation, nil
}

func GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := database.DB.WithContext(ctx).First(&conversation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get conversation %s", id)
	}
	return &conversation, nil
}

// ListConversations returns the owner's conversations, most recently active first.
func ListConversations(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]models.Conversation, error) {
	limit, offset := Pagination(page, pageSize)

	conversations := []models.Conversation{}
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at desc").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "list conversations")
	}
	return conversations, nil
}

func RenameConversation(ctx context.Context, id uuid.UUID, title *string) (*models.Conversation, error) {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	conversation, err := GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	conversation.Title = normalized
	if err := database.DB.WithContext(ctx).Save(conversation).Error; err != nil {
		return nil, errors.Wrapf(err, "rename conversation %s", id)
	}
	return conversation, nil
}

// DeleteConversation removes the conversation and every message in it in one
// transaction. The foreign key cascade covers the same rows.
func DeleteConversation(ctx context.Context, id uuid.UUID) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return errors.Wrapf(err, "delete messages of conversation %s", id)
		}
		result := tx.Where("id = ?", id).Delete(&models.Conversation{})
		if result.Error != nil {
			return errors.Wrapf(result.Error, "delete conversation %s", id)
		}
		if result.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
}

type NewMessage struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	Role           models.MessageRole
	Content        string
	ToolCalls      map[string]interface{}
}

func validateMessage(msg NewMessage) error {
	if !msg.Role.Valid() {
		return ErrInvalidRole
	}
	if strings.TrimSpace(msg.Content) == "" || utf8.RuneCountInString(msg.Content) > models.MessageContentMaxLength {
		return ErrInvalidContent
	}
	return nil
}

// AppendMessage stores msg and bumps the conversation's updated_at.
func AppendMessage(ctx context.Context, msg NewMessage) (*models.Message, error) {
	if err := validateMessage(msg); err != nil {
		return nil, err
	}

	message := models.Message{
		ConversationID: msg.ConversationID,
		UserID:         msg.UserID,
		Role:           msg.Role,
		Content:        msg.Content,
	}
	if msg.ToolCalls != nil {
		message.ToolCalls = datatypes.JSONMap(msg.ToolCalls)
	}

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("updated_at", time.Now())
		if result.Error != nil {
			return errors.Wrap(result.Error, "touch conversation")
		}
		if result.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		if err := tx.Create(&message).Error; err != nil {
			return errors.Wrap(err, "create message")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns a page of the conversation's messages, oldest first.
func ListMessages(ctx context.Context, conversationID uuid.UUID, page, pageSize int) ([]models.Message, error) {
	limit, offset := Pagination(page, pageSize)

	messages := []models.Message{}
	err := database.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}
	return messages, nil
}

func CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count messages")
	}
	return count, nil
}

// ListAllMessages returns every message of the conversation, oldest first.
func ListAllMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	messages := []models.Message{}
	err := database.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "list all messages")
	}
	return messages, nil
}
