package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MessageContentMaxLength = 50000

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (r MessageRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one turn of a Conversation. UserID records the author and is not
// checked against the conversation owner.
type Message struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"conversation_id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Role           MessageRole       `gorm:"size:16;not null;check:chk_messages_role,role IN ('user','assistant')" json:"role"`
	Content        string            `gorm:"type:text;not null" json:"content"`
	ToolCalls      datatypes.JSONMap `json:"tool_calls,omitempty"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`

	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
