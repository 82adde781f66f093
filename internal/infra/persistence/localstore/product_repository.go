package localstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}

// productRepository implements repository.ProductRepository on Badger.
type productRepository struct {
	store kv
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *badger.DB) repository.ProductRepository {
	return &productRepository{store: kv{db: db}}
}

// Create stores a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.SavedBy == nil {
		product.SavedBy = []uuid.UUID{}
	}

	return repo.store.update(ctx, func(txn *badger.Txn) error {
		return setJSON(txn, productKey(product.ID), product)
	})
}

// FindByID retrieves a product by its unique ID.
func (repo *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		product, err = loadProduct(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// FindByIDs retrieves the products that exist among ids, newest first.
func (repo *productRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(ids))
	err := repo.store.view(func(txn *badger.Txn) error {
		for _, id := range ids {
			product, err := loadProduct(txn, id)
			if errors.Is(err, domainerrors.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			products = append(products, product)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(products)

	return products, nil
}

// Find scans all products and keeps those matching filter, newest first.
func (repo *productRepository) Find(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var all []*entity.Product
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		all, err = scanJSON[entity.Product](txn, productKeyPrefix)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(all))
	for _, product := range all {
		if matchesFilter(product, filter) {
			products = append(products, normalizeProduct(product))
		}
	}

	sortNewestFirst(products)

	return products, nil
}

// Update overwrites the editable fields of the product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return repo.mutate(ctx, product.ID, func(stored *entity.Product) {
		stored.Name = product.Name
		stored.Description = product.Description
		stored.Price = product.Price
		stored.Condition = product.Condition
		stored.Category = product.Category
		stored.Images = product.Images
		stored.Status = product.Status
	})
}

// Delete removes a product by its ID.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(productKey(id))); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product")
		}

		return txn.Delete([]byte(productKey(id)))
	})
}

// SetSaver adds or removes userID from the product's savedBy set.
func (repo *productRepository) SetSaver(ctx context.Context, productID, userID uuid.UUID, saved bool) error {
	return repo.mutate(ctx, productID, func(stored *entity.Product) {
		stored.SavedBy = entity.SetID(stored.SavedBy, userID, saved)
	})
}

func (repo *productRepository) mutate(ctx context.Context, id uuid.UUID, apply func(stored *entity.Product)) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		product, err := loadProduct(txn, id)
		if err != nil {
			return err
		}

		apply(product)
		product.UpdatedAt = time.Now().UTC()

		return setJSON(txn, productKey(id), product)
	})
}

func loadProduct(txn *badger.Txn, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	if err := getJSON(txn, productKey(id), &product); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return normalizeProduct(&product), nil
}

func normalizeProduct(product *entity.Product) *entity.Product {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.SavedBy == nil {
		product.SavedBy = []uuid.UUID{}
	}

	return product
}

func matchesFilter(product *entity.Product, filter entity.ProductFilter) bool {
	if filter.Category != "" && product.Category != filter.Category {
		return false
	}
	if filter.SellerID != uuid.Nil && product.SellerID != filter.SellerID {
		return false
	}
	if filter.SavedBy != uuid.Nil && !product.IsSavedBy(filter.SavedBy) {
		return false
	}
	if filter.Query != "" {
		query := strings.ToLower(filter.Query)

		return strings.Contains(strings.ToLower(product.Name), query) ||
			strings.Contains(strings.ToLower(product.Description), query) ||
			strings.Contains(strings.ToLower(string(product.Category)), query)
	}

	return true
}

func sortNewestFirst(products []*entity.Product) {
	slices.SortStableFunc(products, func(a, b *entity.Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
