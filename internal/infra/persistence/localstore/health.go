package localstore

import (
	"context"

	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

type healthChecker struct {
	db *badger.DB
}

// NewHealthChecker reports the store unhealthy once it has been closed.
func NewHealthChecker(db *badger.DB) repository.HealthChecker {
	return &healthChecker{db: db}
}

func (h *healthChecker) Ping(context.Context) error {
	if h.db.IsClosed() {
		return errors.New("local store is closed")
	}

	return h.db.View(func(*badger.Txn) error { return nil })
}
