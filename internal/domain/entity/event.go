package entity

// Event types published on the marketplace topic.
const (
	EventOrderConfirmed = "order.confirmed"
	EventMessageSent    = "message.sent"
)

// MarketplaceEvent is the payload carried through Pub/Sub to the notifier.
type MarketplaceEvent struct {
	RequestID   string `json:"request_id,omitempty"`
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	RecipientID string `json:"recipient_id"`
	ActorID     string `json:"actor_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	OrderID     string `json:"order_id,omitempty"`
	Preview     string `json:"preview,omitempty"`
}
