package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "email", "password_hash", "name", "college", "department", "year", "phone",
	"gender", "profile_image", "bio", "listings", "saved_items", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &entity.User{ID: uuid.New(), Email: "Alice@Campus.edu", Name: "Alice", College: "MIT", Gender: entity.GenderFemale}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Create(context.Background(), &entity.User{ID: uuid.New(), Email: "a@b.c"})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	listing := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			id.String(), "alice@campus.edu", "hash", "Alice", "MIT", "CS", "2nd", "", "female", "", "",
			[]byte(`["`+listing.String()+`"]`), []byte(`[]`), now, now,
		))

	user, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, entity.GenderFemale, user.Gender)
	assert.Equal(t, []uuid.UUID{listing}, user.Listings)
	assert.Empty(t, user.SavedItems)
	assert.NotNil(t, user.SavedItems)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserRepository_FindByEmail_Normalizes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("alice@campus.edu", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByEmail(context.Background(), "  Alice@Campus.EDU ")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDs_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	users, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetSavedItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "saved_items"=CASE WHEN saved_items @> $1::jsonb`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetSavedItem(context.Background(), uuid.New(), uuid.New(), true))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "saved_items"=saved_items - $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.SetSavedItem(context.Background(), uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_PullProductReferences(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	productID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.PullProductReferences(context.Background(), productID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.User{ID: uuid.New(), Name: "Bob"})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
