package repository

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists the order. Returns ErrOrderIDConflict when OrderID is taken.
	Create(ctx context.Context, order *entity.Order) error

	// FindByBuyer returns the buyer's orders, newest first.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)
}
