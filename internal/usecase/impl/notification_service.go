package impl

import (
	"context"
	"log/slog"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500
)

type notificationService struct {
	deviceRepo      repository.DeviceRepository
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(
	deviceRepo repository.DeviceRepository,
	notificationSvc service.NotificationService,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		deviceRepo:      deviceRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// Dispatch pushes event to every active device of its recipient.
// Store failures are retryable; malformed events are not.
func (s *notificationService) Dispatch(ctx context.Context, event *entity.MarketplaceEvent) (*usecase.DispatchResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	title, body, ok := notificationContent(event)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown event type " + event.Type)
	}

	recipientID, err := uuid.Parse(event.RecipientID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid recipient_id")
	}

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, recipientID)
	if err != nil {
		return nil, usecase.NewRetryableError(errors.Wrap(err, "failed to fetch devices"))
	}

	result := &usecase.DispatchResult{Devices: len(devices)}
	if len(devices) == 0 {
		logger.Info("[Worker] No devices for recipient", slog.String("recipient_id", event.RecipientID))

		return result, nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{
		"event_id":   event.EventID,
		"type":       event.Type,
		"product_id": event.ProductID,
		"actor_id":   event.ActorID,
	}
	if event.OrderID != "" {
		data["order_id"] = event.OrderID
	}

	var invalidTokens []string
	for idx := 0; idx < len(tokens); idx += firebaseBatchSize {
		end := min(idx+firebaseBatchSize, len(tokens))
		batch := tokens[idx:end]

		successCount, failureCount, batchInvalid, sendErr := s.notificationSvc.SendBatchNotification(ctx, batch, title, body, data)
		if sendErr != nil {
			logger.Error("[Worker] Failed to send batch",
				slog.Int("batch_start", idx),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", sendErr),
			)
			result.Failed += len(batch)

			continue
		}

		result.Sent += successCount
		result.Failed += failureCount
		invalidTokens = append(invalidTokens, batchInvalid...)
	}

	result.InvalidTokens = len(invalidTokens)
	if len(invalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateByTokens(ctx, invalidTokens); err != nil {
			logger.Warn("[Worker] Failed to deactivate invalid tokens", slog.Any("error", err))
		}
	}

	logger.Info("[Worker] Notification sending completed",
		slog.String("event_id", event.EventID),
		slog.Int("total_sent", result.Sent),
		slog.Int("total_failed", result.Failed),
		slog.Int("invalid_tokens", result.InvalidTokens),
	)

	return result, nil
}

func notificationContent(event *entity.MarketplaceEvent) (title, body string, ok bool) {
	switch event.Type {
	case entity.EventOrderConfirmed:
		return "New order received", event.ProductName + " was ordered (" + event.OrderID + ")", true
	case entity.EventMessageSent:
		title = "New message"
		if event.ProductName != "" {
			title = "New message about " + event.ProductName
		}

		return title, event.Preview, true
	}

	return "", "", false
}
