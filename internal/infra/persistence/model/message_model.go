package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageModel mirrors the 'messages' table. Each row is one entry of a conversation log.
type MessageModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationKey string    `gorm:"type:varchar(120);not null;index:idx_messages_conversation,priority:1"`
	SenderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	Content         string    `gorm:"type:text;not null"`
	Attachments     []string  `gorm:"type:jsonb;serializer:json"`
	Timestamp       time.Time `gorm:"not null;index:idx_messages_conversation,priority:2"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}
