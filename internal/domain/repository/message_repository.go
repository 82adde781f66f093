package repository

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageRepository stores conversation logs.
type MessageRepository interface {
	// Append adds msg to the end of its conversation.
	Append(ctx context.Context, msg *entity.Message) error

	// FindConversation returns messages of the conversation in timestamp order.
	FindConversation(ctx context.Context, key string) ([]*entity.Message, error)

	// FindConversationsForUser lists conversations userID takes part in, most recent first.
	FindConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)
}
