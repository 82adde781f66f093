package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
	newOrderID  func() string
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
		newOrderID:  entity.NewOrderID,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a confirmed order. The total is taken from the caller as-is.
func (srv *orderService) Create(ctx context.Context, buyerID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	productID, err := validateOrder(input)
	if err != nil {
		return nil, err
	}

	if _, err := srv.userRepo.FindByID(ctx, buyerID); err != nil {
		return nil, errors.Wrap(err, "failed to load buyer")
	}
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}

	order := &entity.Order{
		ID:               uuid.New(),
		OrderID:          srv.newOrderID(),
		BuyerID:          buyerID,
		ProductID:        product.ID,
		ShippingDetails:  *input.ShippingDetails,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: strings.TrimSpace(input.PaymentReference),
		Status:           entity.OrderStatusConfirmed,
		OrderDate:        time.Now().UTC(),
		TotalAmount:      *input.TotalAmount,
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		srv.log(ctx).Error("Failed to persist order", slog.String("orderID", order.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order confirmed",
		slog.String("orderID", order.OrderID),
		slog.Any("buyerID", buyerID),
		slog.Any("productID", product.ID),
	)

	publishBestEffort(ctx, srv.publisher, srv.log(ctx), &entity.MarketplaceEvent{
		Type:        entity.EventOrderConfirmed,
		RecipientID: product.SellerID.String(),
		ActorID:     buyerID.String(),
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		OrderID:     order.OrderID,
	})

	return order, nil
}

// ListForUser returns the buyer's orders newest first. Deleted products join as nil.
func (srv *orderService) ListForUser(ctx context.Context, buyerID uuid.UUID) ([]*usecase.OrderView, error) {
	orders, err := srv.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	productIDs := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		productIDs = entity.AddID(productIDs, order.ProductID)
	}

	products := make(map[uuid.UUID]*entity.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := srv.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load ordered products")
		}
		for _, product := range found {
			products[product.ID] = product
		}
	}

	views := make([]*usecase.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, &usecase.OrderView{
			Order:   order,
			Product: products[order.ProductID],
		})
	}

	return views, nil
}

func validateOrder(input *usecase.CreateOrderInput) (uuid.UUID, error) {
	var missing []string
	if strings.TrimSpace(input.ProductRef) == "" {
		missing = append(missing, "product")
	}
	if input.ShippingDetails == nil {
		missing = append(missing, "shippingDetails")
	}
	if input.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	if input.TotalAmount == nil {
		missing = append(missing, "totalAmount")
	}
	if len(missing) > 0 {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("missing required fields: " + strings.Join(missing, ", "))
	}

	if !input.PaymentMethod.Valid() {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("paymentMethod must be card or cash")
	}
	if *input.TotalAmount <= 0 {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("totalAmount must be positive")
	}

	productID, err := uuid.Parse(strings.TrimSpace(input.ProductRef))
	if err != nil || productID == uuid.Nil {
		return uuid.Nil, domainerrors.ErrInvalidProductReference.WrapMessage(input.ProductRef)
	}

	return productID, nil
}
