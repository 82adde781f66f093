package handler

import (
	"net/http"

	"educycle/internal/delivery/api/response"
	"educycle/internal/domain/entity"
	"educycle/internal/infra/metrics"
	"educycle/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves checkout and order history.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(orderUC usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// CreateOrderRequest is the body of POST /api/orders. Presence checks happen in
// the use case so a malformed product reference gets its own error code.
type CreateOrderRequest struct {
	Product          string                  `json:"product"`
	ShippingDetails  *entity.ShippingDetails `json:"shippingDetails"`
	PaymentMethod    string                  `json:"paymentMethod"`
	PaymentReference string                  `json:"paymentReference"`
	TotalAmount      *float64                `json:"totalAmount"`
}

// Create places an order for the authenticated buyer.
func (h *OrderHandler) Create(c echo.Context) error {
	buyerID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.Create(c.Request().Context(), buyerID, &usecase.CreateOrderInput{
		ProductRef:       req.Product,
		ShippingDetails:  req.ShippingDetails,
		PaymentMethod:    entity.PaymentMethod(req.PaymentMethod),
		PaymentReference: req.PaymentReference,
		TotalAmount:      req.TotalAmount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.RecordMarketplaceEvent("order_created")

	return response.Success(c, http.StatusCreated, order)
}

// ListMine returns the authenticated buyer's orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	buyerID, err := currentUser(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListForUser(c.Request().Context(), buyerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders)
}
