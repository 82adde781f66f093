package postgres

import (
	"context"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order. The unique index on order_id rejects collisions.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := repo.db.WithContext(ctx).Create(fromOrderDomain(order)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOrderIDConflict.WrapMessage("order id " + order.OrderID + " already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	return nil
}

// FindByBuyer retrieves the buyer's orders, newest first.
func (repo *orderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by buyer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:               data.ID,
		OrderID:          data.OrderID,
		BuyerID:          data.BuyerID,
		ProductID:        data.ProductID,
		ShippingDetails:  entity.ShippingDetails(data.ShippingDetails),
		PaymentMethod:    entity.PaymentMethod(data.PaymentMethod),
		PaymentReference: data.PaymentReference,
		Status:           entity.OrderStatus(data.Status),
		OrderDate:        data.OrderDate,
		TotalAmount:      data.TotalAmount,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:               data.ID,
		OrderID:          data.OrderID,
		BuyerID:          data.BuyerID,
		ProductID:        data.ProductID,
		ShippingDetails:  model.ShippingDetailsModel(data.ShippingDetails),
		PaymentMethod:    string(data.PaymentMethod),
		PaymentReference: data.PaymentReference,
		Status:           string(data.Status),
		OrderDate:        data.OrderDate,
		TotalAmount:      data.TotalAmount,
	}
}
