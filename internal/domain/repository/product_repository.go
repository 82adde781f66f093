package repository

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error

	// FindByID returns ErrProductNotFound when no product matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs returns the products that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// Find returns products matching filter, newest first.
	Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// Update overwrites the editable fields of the product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete returns ErrProductNotFound when no product matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetSaver adds or removes userID from the product's savedBy set.
	SetSaver(ctx context.Context, productID, userID uuid.UUID, saved bool) error
}
