package localstore

import (
	"context"

	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// badgerTransactionManager implements repository.TransactionManager on Badger's serializable transactions.
type badgerTransactionManager struct {
	db *badger.DB
}

// badgerRepositoryFactory hands out repositories bound to one read-write transaction.
type badgerRepositoryFactory struct {
	store kv
}

func (f *badgerRepositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{store: f.store}
}

func (f *badgerRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{store: f.store}
}

func (f *badgerRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{store: f.store}
}

func (f *badgerRepositoryFactory) NewMessageRepository() repository.MessageRepository {
	return &messageRepository{store: f.store}
}

func (f *badgerRepositoryFactory) NewDeviceRepository() repository.DeviceRepository {
	return &deviceRepository{store: f.store}
}

// NewTransactionManager is the constructor for badgerTransactionManager.
func NewTransactionManager(db *badger.DB) repository.TransactionManager {
	return &badgerTransactionManager{db: db}
}

// Execute runs fn inside a read-write transaction and commits when it returns nil.
// A commit that loses a write conflict is retried with a fresh transaction.
func (tm *badgerTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return retryOnConflict(ctx, func() error {
		return tm.executeOnce(fn)
	})
}

func (tm *badgerTransactionManager) executeOnce(fn func(repoFactory repository.RepositoryFactory) error) error {
	txn := tm.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(&badgerRepositoryFactory{store: kv{db: tm.db, txn: txn}}); err != nil {
		return err
	}

	if err := txn.Commit(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return err
		}

		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
