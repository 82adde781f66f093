package pubsub

import (
	"context"

	"educycle/internal/domain/entity"
	"educycle/internal/domain/service"
	"educycle/internal/infra/metrics"
)

// instrumentedPublisher counts events the underlying publisher failed to hand off.
type instrumentedPublisher struct {
	next service.EventPublisher
}

func (p *instrumentedPublisher) Publish(ctx context.Context, event *entity.MarketplaceEvent) error {
	err := p.next.Publish(ctx, event)
	if err != nil {
		metrics.RecordPublishFailure(event.Type)
	}

	return err
}

func (p *instrumentedPublisher) Close() error {
	return p.next.Close()
}
