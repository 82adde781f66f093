package entity

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Message is one line of a conversation about a product.
type Message struct {
	ID              uuid.UUID `json:"id"`
	ConversationKey string    `json:"conversationKey"`
	SenderID        uuid.UUID `json:"senderId"`
	ReceiverID      uuid.UUID `json:"receiverId"`
	ProductID       uuid.UUID `json:"productId"`
	Content         string    `json:"content"`
	Attachments     []string  `json:"attachments,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Conversation summarises a conversation log for one participant.
type Conversation struct {
	Key           string       `json:"key"`
	ProductID     uuid.UUID    `json:"productId"`
	Participants  [2]uuid.UUID `json:"participants"`
	LastMessage   *Message     `json:"lastMessage,omitempty"`
	LastMessageAt time.Time    `json:"lastMessageAt"`
}

// ConversationKey identifies the log for an unordered participant pair and a product.
// ConversationKey(a, b, p) == ConversationKey(b, a, p).
func ConversationKey(userA, userB, productID uuid.UUID) string {
	first, second := OrderedPair(userA, userB)

	return first.String() + "_" + second.String() + "_" + productID.String()
}

// OrderedPair returns the two ids in byte order.
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}

	return b, a
}
