package impl

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculatorInput() *usecase.CreateProductInput {
	return &usecase.CreateProductInput{
		Name:        "Calculator",
		Description: "TI-84, works fine",
		Price:       500,
		Condition:   entity.ConditionGood,
		Category:    entity.CategoryElectronics,
		Images:      []string{"/api/uploads/images/calc.png"},
	}
}

func TestProductService_CreateAppendsListing(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, entity.ProductStatusAvailable, product.Status)
	assert.Empty(t, product.SavedBy)

	stored, err := store.users.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{product.ID}, stored.Listings)
}

func TestProductService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.CreateProductInput)
	}{
		{name: "missing name", mutate: func(in *usecase.CreateProductInput) { in.Name = "" }},
		{name: "missing description", mutate: func(in *usecase.CreateProductInput) { in.Description = " " }},
		{name: "negative price", mutate: func(in *usecase.CreateProductInput) { in.Price = -1 }},
		{name: "unknown condition", mutate: func(in *usecase.CreateProductInput) { in.Condition = "Broken" }},
		{name: "unknown category", mutate: func(in *usecase.CreateProductInput) { in.Category = "Cars" }},
		{name: "no images", mutate: func(in *usecase.CreateProductInput) { in.Images = nil }},
		{name: "blank images", mutate: func(in *usecase.CreateProductInput) { in.Images = []string{" "} }},
	}

	store := newTestStore(t)
	srv := store.newProductService(t)
	seller := store.seedUser(t, "A", "a@mit.edu")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := newCalculatorInput()
			tt.mutate(input)

			_, err := srv.Create(context.Background(), seller.ID, input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	products, err := store.products.Find(context.Background(), entity.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_CreateUnknownSellerRollsBack(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)

	_, err := srv.Create(context.Background(), uuid.New(), newCalculatorInput())
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	products, err := store.products.Find(context.Background(), entity.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_FreePriceAllowed(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	seller := store.seedUser(t, "A", "a@mit.edu")

	input := newCalculatorInput()
	input.Price = 0
	product, err := srv.Create(context.Background(), seller.ID, input)
	require.NoError(t, err)
	assert.Zero(t, product.Price)
}

func TestProductService_UpdateOnlyBySeller(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")
	other := store.seedUser(t, "B", "b@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	name := "Scientific calculator"
	_, err = srv.Update(ctx, other.ID, product.ID, &usecase.UpdateProductInput{Name: &name})
	require.ErrorIs(t, err, domainerrors.ErrProductOwnership)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	unchanged, err := store.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calculator", unchanged.Name)

	status := entity.ProductStatusSold
	updated, err := srv.Update(ctx, seller.ID, product.ID, &usecase.UpdateProductInput{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, entity.ProductStatusSold, updated.Status)
	assert.Equal(t, product.Price, updated.Price)
	assert.False(t, updated.UpdatedAt.Before(product.UpdatedAt))

	_, err = srv.Update(ctx, seller.ID, uuid.New(), &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_UpdatePrice(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")
	other := store.seedUser(t, "B", "b@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	updated, err := srv.UpdatePrice(ctx, seller.ID, product.ID, 450)
	require.NoError(t, err)
	assert.InDelta(t, 450, updated.Price, 0.001)

	_, err = srv.UpdatePrice(ctx, other.ID, product.ID, 1)
	assert.ErrorIs(t, err, domainerrors.ErrProductOwnership)

	_, err = srv.UpdatePrice(ctx, seller.ID, product.ID, -5)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_DeleteRemovesAllReferences(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")
	saver := store.seedUser(t, "B", "b@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)
	_, err = srv.ToggleSave(ctx, saver.ID, product.ID)
	require.NoError(t, err)

	err = srv.Delete(ctx, saver.ID, product.ID)
	require.ErrorIs(t, err, domainerrors.ErrProductOwnership)

	all, err := store.products.Find(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, srv.Delete(ctx, seller.ID, product.ID))

	_, err = store.products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	for _, id := range []uuid.UUID{seller.ID, saver.ID} {
		user, err := store.users.FindByID(ctx, id)
		require.NoError(t, err)
		assert.NotContains(t, user.Listings, product.ID)
		assert.NotContains(t, user.SavedItems, product.ID)
	}

	err = srv.Delete(ctx, seller.ID, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ToggleSaveIsInvolution(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")
	buyer := store.seedUser(t, "B", "b@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	first, err := srv.ToggleSave(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, first.IsSaved)
	assert.Equal(t, []uuid.UUID{buyer.ID}, first.Product.SavedBy)

	user, err := store.users.FindByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.True(t, user.HasSaved(product.ID))

	second, err := srv.ToggleSave(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, second.IsSaved)
	assert.Empty(t, second.Product.SavedBy)

	user, err = store.users.FindByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, user.SavedItems)

	_, err = srv.ToggleSave(ctx, buyer.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ConcurrentToggleSave(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	savers := make([]uuid.UUID, 32)
	for i := range savers {
		savers[i] = store.seedUser(t, "B", fmt.Sprintf("b%d@mit.edu", i)).ID
	}

	// Three toggles each: every user ends up having saved the product.
	var wg sync.WaitGroup
	for _, userID := range savers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 3 {
				_, err := srv.ToggleSave(ctx, userID, product.ID)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	stored, err := store.products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, savers, stored.SavedBy)

	for _, userID := range savers {
		user, err := store.users.FindByID(ctx, userID)
		require.NoError(t, err)
		assert.True(t, user.HasSaved(product.ID))
	}
}

func TestProductService_ListSearchAndViews(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")
	other := store.seedUser(t, "B", "b@mit.edu")

	calc, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	book := newCalculatorInput()
	book.Name = "Linear Algebra"
	book.Description = "Strang, 5th edition"
	book.Category = entity.CategoryTextbooks
	textbook, err := srv.Create(ctx, other.ID, book)
	require.NoError(t, err)

	all, err := srv.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, textbook.ID, all[0].ID, "newest first")
	require.NotNil(t, all[0].Seller)
	assert.Equal(t, other.Name, all[0].Seller.Name)

	found, err := srv.Search(ctx, "strang", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, textbook.ID, found[0].ID)

	byCategory, err := srv.Search(ctx, "", entity.CategoryElectronics)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, calc.ID, byCategory[0].ID)

	_, err = srv.Search(ctx, "", "Cars")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	listings, err := srv.ListByUser(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, calc.ID, listings[0].ID)

	_, err = srv.ToggleSave(ctx, other.ID, calc.ID)
	require.NoError(t, err)
	saved, err := srv.ListSaved(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, calc.ID, saved[0].ID)

	view, err := srv.GetByID(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.Email, view.Seller.Email)

	_, err = srv.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ShareQRCode(t *testing.T) {
	store := newTestStore(t)
	srv := store.newProductService(t)
	ctx := context.Background()
	seller := store.seedUser(t, "A", "a@mit.edu")

	product, err := srv.Create(ctx, seller.ID, newCalculatorInput())
	require.NoError(t, err)

	png, err := srv.ShareQRCode(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = srv.ShareQRCode(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
