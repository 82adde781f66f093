package localstore

import (
	"context"
	"fmt"
	"slices"

	"educycle/internal/domain/entity"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// messageKey sorts chronologically within a conversation; the id breaks timestamp ties.
func messageKey(msg *entity.Message) string {
	return fmt.Sprintf("%s%s:%020d:%s", messageKeyPrefix, msg.ConversationKey, msg.Timestamp.UnixNano(), msg.ID)
}

func conversationKey(userID uuid.UUID, convKey string) string {
	return conversationPrefix + userID.String() + ":" + convKey
}

// messageRepository implements repository.MessageRepository on Badger.
// Each participant gets a conv key holding the latest message of the conversation.
type messageRepository struct {
	store kv
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *badger.DB) repository.MessageRepository {
	return &messageRepository{store: kv{db: db}}
}

// Append writes the message and refreshes both participants' conversation summaries.
func (repo *messageRepository) Append(ctx context.Context, msg *entity.Message) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		if err := setJSON(txn, messageKey(msg), msg); err != nil {
			return err
		}

		first, second := entity.OrderedPair(msg.SenderID, msg.ReceiverID)
		summary := &entity.Conversation{
			Key:           msg.ConversationKey,
			ProductID:     msg.ProductID,
			Participants:  [2]uuid.UUID{first, second},
			LastMessage:   msg,
			LastMessageAt: msg.Timestamp,
		}
		for _, participant := range summary.Participants {
			if err := setJSON(txn, conversationKey(participant, msg.ConversationKey), summary); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindConversation returns the log in timestamp order.
func (repo *messageRepository) FindConversation(_ context.Context, key string) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		messages, err = scanJSON[entity.Message](txn, messageKeyPrefix+key+":")

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find conversation")
	}

	if messages == nil {
		messages = []*entity.Message{}
	}

	return messages, nil
}

// FindConversationsForUser lists the user's conversation summaries, most recent first.
func (repo *messageRepository) FindConversationsForUser(_ context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var conversations []*entity.Conversation
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		conversations, err = scanJSON[entity.Conversation](txn, conversationPrefix+userID.String()+":")

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find conversations")
	}

	if conversations == nil {
		conversations = []*entity.Conversation{}
	}
	slices.SortStableFunc(conversations, func(a, b *entity.Conversation) int {
		return b.LastMessageAt.Compare(a.LastMessageAt)
	})

	return conversations, nil
}
