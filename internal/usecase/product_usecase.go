package usecase

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines a new listing.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Condition   entity.Condition
	Category    entity.Category
	Images      []string
}

// UpdateProductInput carries a partial listing. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Condition   *entity.Condition
	Category    *entity.Category
	Images      []string
	Status      *entity.ProductStatus
}

// ProductView is a product with its seller summary joined in.
type ProductView struct {
	*entity.Product
	Seller *entity.SellerSummary `json:"seller,omitempty"`
}

// ToggleSaveOutput reports the product after a save toggle and whether it is now saved.
type ToggleSaveOutput struct {
	Product *entity.Product
	IsSaved bool
}

// ProductUsecase defines listing management, browsing and bookmarking.
type ProductUsecase interface {
	List(ctx context.Context, filter entity.ProductFilter) ([]*ProductView, error)
	Search(ctx context.Context, query string, category entity.Category) ([]*ProductView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	Create(ctx context.Context, sellerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	Update(ctx context.Context, requesterID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	UpdatePrice(ctx context.Context, requesterID, id uuid.UUID, price float64) (*entity.Product, error)
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
	ToggleSave(ctx context.Context, userID, id uuid.UUID) (*ToggleSaveOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ProductView, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]*ProductView, error)

	// ShareQRCode renders a PNG QR code pointing at the product page.
	ShareQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
