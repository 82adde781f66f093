package localstore

import (
	"context"
	"slices"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func orderKey(buyerID, id uuid.UUID) string {
	return orderKeyPrefix + buyerID.String() + ":" + id.String()
}

// orderRepository implements repository.OrderRepository on Badger.
// Orders live under their buyer's prefix; order_id keys enforce uniqueness of the public id.
type orderRepository struct {
	store kv
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *badger.DB) repository.OrderRepository {
	return &orderRepository{store: kv{db: db}}
}

// Create stores the order unless its public id is already taken.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		idKey := []byte(orderIDKeyPrefix + order.OrderID)
		_, err := txn.Get(idKey)
		if err == nil {
			return domainerrors.ErrOrderIDConflict.WrapMessage("order id " + order.OrderID + " already exists")
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrap(err, "check order id")
		}

		if err := txn.Set(idKey, []byte(order.ID.String())); err != nil {
			return errors.Wrap(err, "set order id")
		}

		return setJSON(txn, orderKey(order.BuyerID, order.ID), order)
	})
}

// FindByBuyer returns the buyer's orders, newest first.
func (repo *orderRepository) FindByBuyer(_ context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		orders, err = scanJSON[entity.Order](txn, orderKeyPrefix+buyerID.String()+":")

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by buyer")
	}

	if orders == nil {
		orders = []*entity.Order{}
	}
	slices.SortStableFunc(orders, func(a, b *entity.Order) int {
		return b.OrderDate.Compare(a.OrderDate)
	})

	return orders, nil
}
