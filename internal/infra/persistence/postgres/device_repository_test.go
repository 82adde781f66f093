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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deviceColumns = []string{"id", "user_id", "fcm_token", "device_id", "platform", "is_active", "created_at", "updated_at"}

func TestDeviceRepository_CreateDevice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "user_devices"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	device := &entity.UserDevice{ID: uuid.New(), UserID: uuid.New(), FCMToken: "tok", DeviceID: "pixel", Platform: "android", IsActive: true}
	require.NoError(t, repo.CreateDevice(context.Background(), device))
	assert.False(t, device.CreatedAt.IsZero())
}

func TestDeviceRepository_FindDeviceByUserAndDeviceID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	userID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_devices" WHERE user_id = $1 AND device_id = $2`)).
		WillReturnRows(sqlmock.NewRows(deviceColumns).
			AddRow(uuid.NewString(), userID.String(), "tok", "pixel", "android", true, now, now))

	device, err := repo.FindDeviceByUserAndDeviceID(context.Background(), userID, "pixel")
	require.NoError(t, err)
	assert.Equal(t, userID, device.UserID)
	assert.True(t, device.IsActive)
}

func TestDeviceRepository_FindDeviceByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_devices"`)).
		WillReturnRows(sqlmock.NewRows(deviceColumns))

	_, err := repo.FindDeviceByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestDeviceRepository_DeactivateByTokens(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	require.NoError(t, repo.DeactivateByTokens(context.Background(), nil))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user_devices" SET "is_active"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.DeactivateByTokens(context.Background(), []string{"a", "b"}))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_DeleteDevice_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_devices"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteDevice(context.Background(), uuid.New()), domainerrors.ErrDeviceNotFound)
}
