package impl

import (
	"context"
	"log/slog"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	"educycle/internal/domain/service"

	"github.com/google/uuid"
)

const previewRunes = 80

// publishBestEffort hands event to the publisher. Failures are logged, never returned.
func publishBestEffort(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *entity.MarketplaceEvent) {
	if publisher == nil {
		return
	}

	event.EventID = uuid.New().String()
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish marketplace event",
			slog.String("type", event.Type),
			slog.String("recipient_id", event.RecipientID),
			slog.Any("error", err),
		)
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}

	return string(runes[:previewRunes]) + "…"
}
