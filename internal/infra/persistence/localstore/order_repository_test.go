package localstore

import (
	"context"
	"testing"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(buyerID uuid.UUID, orderDate time.Time) *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		OrderID:       entity.NewOrderID(),
		BuyerID:       buyerID,
		ProductID:     uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
		Status:        entity.OrderStatusConfirmed,
		OrderDate:     orderDate,
		TotalAmount:   42,
		ShippingDetails: entity.ShippingDetails{
			FullName: "Alice",
			City:     "Pune",
		},
	}
}

func TestOrderRepository_CreateAndFindByBuyer(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	buyer, otherBuyer := uuid.New(), uuid.New()
	now := time.Now().UTC()
	older := newTestOrder(buyer, now.Add(-time.Hour))
	newer := newTestOrder(buyer, now)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, newTestOrder(otherBuyer, now)))

	orders, err := repo.FindByBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.OrderID, orders[0].OrderID)
	assert.Equal(t, older.OrderID, orders[1].OrderID)
	assert.Equal(t, "Pune", orders[0].ShippingDetails.City)
}

func TestOrderRepository_FindByBuyer_Empty(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	orders, err := repo.FindByBuyer(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestOrderRepository_RejectsDuplicateOrderID(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	first := newTestOrder(uuid.New(), time.Now())
	require.NoError(t, repo.Create(ctx, first))

	dup := newTestOrder(uuid.New(), time.Now())
	dup.OrderID = first.OrderID
	assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrOrderIDConflict)
}
