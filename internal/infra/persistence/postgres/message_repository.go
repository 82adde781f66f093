package postgres

import (
	"context"
	"slices"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// messageRepository implements the repository.MessageRepository interface.
// A conversation is the set of rows sharing a conversation_key.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{
		db: db,
	}
}

// Append inserts msg as the newest row of its conversation.
func (repo *messageRepository) Append(ctx context.Context, msg *entity.Message) error {
	if err := repo.db.WithContext(ctx).Create(fromMessageDomain(msg)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append message")
	}

	return nil
}

// FindConversation returns the log ordered by timestamp.
func (repo *messageRepository) FindConversation(ctx context.Context, key string) ([]*entity.Message, error) {
	var messageModels []*model.MessageModel

	if err := repo.db.WithContext(ctx).
		Where("conversation_key = ?", key).
		Order("timestamp ASC").
		Find(&messageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find conversation")
	}

	messages := make([]*entity.Message, 0, len(messageModels))
	for _, messageM := range messageModels {
		messages = append(messages, toMessageDomain(messageM))
	}

	return messages, nil
}

// FindConversationsForUser returns the latest message of every conversation the user is part of.
func (repo *messageRepository) FindConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var latest []*model.MessageModel

	if err := repo.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (conversation_key) * FROM messages
			WHERE sender_id = ? OR receiver_id = ?
			ORDER BY conversation_key, timestamp DESC`, userID, userID).
		Scan(&latest).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find conversations")
	}

	conversations := make([]*entity.Conversation, 0, len(latest))
	for _, messageM := range latest {
		msg := toMessageDomain(messageM)
		first, second := entity.OrderedPair(msg.SenderID, msg.ReceiverID)
		conversations = append(conversations, &entity.Conversation{
			Key:           msg.ConversationKey,
			ProductID:     msg.ProductID,
			Participants:  [2]uuid.UUID{first, second},
			LastMessage:   msg,
			LastMessageAt: msg.Timestamp,
		})
	}

	slices.SortFunc(conversations, func(a, b *entity.Conversation) int {
		return b.LastMessageAt.Compare(a.LastMessageAt)
	})

	return conversations, nil
}

// --- Mapper Functions ---

func toMessageDomain(data *model.MessageModel) *entity.Message {
	if data == nil {
		return nil
	}

	return &entity.Message{
		ID:              data.ID,
		ConversationKey: data.ConversationKey,
		SenderID:        data.SenderID,
		ReceiverID:      data.ReceiverID,
		ProductID:       data.ProductID,
		Content:         data.Content,
		Attachments:     data.Attachments,
		Timestamp:       data.Timestamp,
	}
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	if data == nil {
		return nil
	}

	return &model.MessageModel{
		ID:              data.ID,
		ConversationKey: data.ConversationKey,
		SenderID:        data.SenderID,
		ReceiverID:      data.ReceiverID,
		ProductID:       data.ProductID,
		Content:         data.Content,
		Attachments:     data.Attachments,
		Timestamp:       data.Timestamp,
	}
}
