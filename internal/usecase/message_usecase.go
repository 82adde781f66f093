package usecase

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// SendMessageInput defines one outgoing message.
type SendMessageInput struct {
	ReceiverID  uuid.UUID
	ProductID   uuid.UUID
	Content     string
	Attachments []string
}

// MessageUsecase defines the product-scoped conversation log between two users.
type MessageUsecase interface {
	Send(ctx context.Context, senderID uuid.UUID, input *SendMessageInput) (*entity.Message, error)

	// History returns the whole log between userID and otherUserID about productID, oldest first.
	History(ctx context.Context, userID, otherUserID, productID uuid.UUID) ([]*entity.Message, error)

	Conversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)
}
