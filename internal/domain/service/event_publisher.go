package service

import (
	"context"

	"educycle/internal/domain/entity"
)

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends a marketplace event for async processing
	Publish(ctx context.Context, event *entity.MarketplaceEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
