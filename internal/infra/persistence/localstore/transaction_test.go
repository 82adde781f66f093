package localstore

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_CommitsAllWrites(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	seller := newTestUser("seller@campus.edu")
	require.NoError(t, NewUserRepository(db).Create(ctx, seller))

	product := newTestProduct(seller.ID, "Calculus", entity.CategoryTextbooks)
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewProductRepository().Create(ctx, product); err != nil {
			return err
		}

		return f.NewUserRepository().AddListing(ctx, seller.ID, product.ID)
	})
	require.NoError(t, err)

	stored, err := NewUserRepository(db).FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{product.ID}, stored.Listings)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	product := newTestProduct(uuid.New(), "Calculus", entity.CategoryTextbooks)
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewProductRepository().Create(ctx, product); err != nil {
			return err
		}

		// Seller does not exist, so the whole write is discarded.
		return f.NewUserRepository().AddListing(ctx, product.SellerID, product.ID)
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = NewProductRepository(db).FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	tm := NewTransactionManager(newTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tm.Execute(ctx, func(repository.RepositoryFactory) error { return nil })
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTransactionManager_ConcurrentToggles(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	product := newTestProduct(uuid.New(), "Notes", entity.CategoryNotes)
	require.NoError(t, NewProductRepository(db).Create(ctx, product))

	savers := make([]uuid.UUID, 32)
	var wg sync.WaitGroup
	for i := range savers {
		savers[i] = uuid.New()
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			assert.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				return f.NewProductRepository().SetSaver(ctx, product.ID, userID, true)
			}))
		}(savers[i])
	}
	wg.Wait()

	stored, err := NewProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, savers, stored.SavedBy)
}

func TestTransactionManager_ConcurrentTogglesOnBothSides(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	product := newTestProduct(uuid.New(), "Lab coat", entity.CategoryLabEquipment)
	require.NoError(t, NewProductRepository(db).Create(ctx, product))

	savers := make([]uuid.UUID, 32)
	for i := range savers {
		user := newTestUser(fmt.Sprintf("saver%d@campus.edu", i))
		require.NoError(t, users.Create(ctx, user))
		savers[i] = user.ID
	}

	var wg sync.WaitGroup
	for _, userID := range savers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				if err := f.NewProductRepository().SetSaver(ctx, product.ID, userID, true); err != nil {
					return err
				}

				return f.NewUserRepository().SetSavedItem(ctx, userID, product.ID, true)
			}))
		}()
	}
	wg.Wait()

	stored, err := NewProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, savers, stored.SavedBy)

	for _, userID := range savers {
		user, err := users.FindByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{product.ID}, user.SavedItems)
	}
}

func TestRetryOnConflict_GivesUpWithRetryableError(t *testing.T) {
	attempts := 0
	err := retryOnConflict(context.Background(), func() error {
		attempts++

		return badger.ErrConflict
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionConflict)
	assert.Greater(t, attempts, 1)
	assert.LessOrEqual(t, attempts, maxConflictRetries)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode())
}

func TestRetryOnConflict_OtherErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	err := retryOnConflict(context.Background(), func() error {
		attempts++

		return domainerrors.ErrProductNotFound
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.Equal(t, 1, attempts)
}

func TestRetryOnConflict_SucceedsAfterConflicts(t *testing.T) {
	attempts := 0
	err := retryOnConflict(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return badger.ErrConflict
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}
