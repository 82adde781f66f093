package usecase

import (
	"context"
	"fmt"

	"educycle/internal/domain/entity"

	"github.com/pkg/errors"
)

// DispatchResult summarises one fan-out.
type DispatchResult struct {
	Devices       int
	Sent          int
	Failed        int
	InvalidTokens int
}

// NotificationUsecase turns marketplace events into push notifications.
type NotificationUsecase interface {
	Dispatch(ctx context.Context, event *entity.MarketplaceEvent) (*DispatchResult, error)
}

// RetryableError marks a failure the queue should redeliver.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps err as retryable.
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err asks for redelivery.
func IsRetryable(err error) bool {
	var re *RetryableError

	return errors.As(err, &re)
}
