package localstore

import (
	"context"
	"testing"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Name:         "Alice",
		College:      "MIT",
		Gender:       entity.GenderFemale,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("Alice@Campus.edu")
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "alice@campus.edu", user.Email)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.NotNil(t, byID.Listings)
	assert.NotNil(t, byID.SavedItems)

	byEmail, err := repo.FindByEmail(ctx, " ALICE@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("bob@campus.edu")))
	err := repo.Create(ctx, newTestUser("BOB@campus.edu"))
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@campus.edu")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	assert.ErrorIs(t, repo.AddListing(ctx, uuid.New(), uuid.New()), domainerrors.ErrUserNotFound)
}

func TestUserRepository_FindByIDs_SkipsMissing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("carol@campus.edu")
	require.NoError(t, repo.Create(ctx, user))

	users, err := repo.FindByIDs(ctx, []uuid.UUID{user.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
}

func TestUserRepository_SetOperations(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("dave@campus.edu")
	require.NoError(t, repo.Create(ctx, user))
	productID := uuid.New()

	require.NoError(t, repo.AddListing(ctx, user.ID, productID))
	require.NoError(t, repo.AddListing(ctx, user.ID, productID))
	require.NoError(t, repo.SetSavedItem(ctx, user.ID, productID, true))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{productID}, stored.Listings)
	assert.Equal(t, []uuid.UUID{productID}, stored.SavedItems)

	require.NoError(t, repo.PullProductReferences(ctx, productID))
	require.NoError(t, repo.SetSavedItem(ctx, user.ID, productID, false))

	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Listings)
	assert.Empty(t, stored.SavedItems)
}

func TestUserRepository_PullProductReferences(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	seller := newTestUser("seller@campus.edu")
	fan := newTestUser("fan@campus.edu")
	require.NoError(t, repo.Create(ctx, seller))
	require.NoError(t, repo.Create(ctx, fan))

	productID, other := uuid.New(), uuid.New()
	require.NoError(t, repo.AddListing(ctx, seller.ID, productID))
	require.NoError(t, repo.AddListing(ctx, seller.ID, other))
	require.NoError(t, repo.SetSavedItem(ctx, fan.ID, productID, true))

	require.NoError(t, repo.PullProductReferences(ctx, productID))

	storedSeller, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, storedSeller.Listings)
	assert.Equal(t, "hash", storedSeller.PasswordHash)

	storedFan, err := repo.FindByID(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, storedFan.SavedItems)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("erin@campus.edu")
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Erin"
	user.Bio = "CS junior"
	user.Email = "changed@campus.edu"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Erin", stored.Name)
	assert.Equal(t, "CS junior", stored.Bio)
	assert.Equal(t, "erin@campus.edu", stored.Email)
}
