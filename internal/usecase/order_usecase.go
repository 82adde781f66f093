package usecase

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateOrderInput is the checkout request. ProductRef is the raw reference sent by the client.
type CreateOrderInput struct {
	ProductRef       string
	ShippingDetails  *entity.ShippingDetails
	PaymentMethod    entity.PaymentMethod
	PaymentReference string
	TotalAmount      *float64
}

// OrderView is an order with the product joined in. Product is nil once the listing is deleted.
type OrderView struct {
	*entity.Order
	Product *entity.Product `json:"product"`
}

// OrderUsecase defines checkout and order history.
type OrderUsecase interface {
	Create(ctx context.Context, buyerID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	ListForUser(ctx context.Context, buyerID uuid.UUID) ([]*OrderView, error)
}
