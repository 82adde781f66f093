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

func newTestDevice(userID uuid.UUID, deviceID, token string) *entity.UserDevice {
	return &entity.UserDevice{
		ID:       uuid.New(),
		UserID:   userID,
		FCMToken: token,
		DeviceID: deviceID,
		Platform: "android",
		IsActive: true,
	}
}

func TestDeviceRepository_Lifecycle(t *testing.T) {
	repo := NewDeviceRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	phone := newTestDevice(userID, "phone", "token-1")
	tablet := newTestDevice(userID, "tablet", "token-2")
	require.NoError(t, repo.CreateDevice(ctx, phone))
	require.NoError(t, repo.CreateDevice(ctx, tablet))

	err := repo.CreateDevice(ctx, newTestDevice(userID, "phone", "token-3"))
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	found, err := repo.FindDeviceByUserAndDeviceID(ctx, userID, "phone")
	require.NoError(t, err)
	assert.Equal(t, phone.ID, found.ID)

	active, err := repo.FindActiveDevicesByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, repo.DeactivateByTokens(ctx, []string{"token-1"}))
	active, err = repo.FindActiveDevicesByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, tablet.ID, active[0].ID)

	require.NoError(t, repo.UpdateFCMToken(ctx, phone.ID, "token-1b"))
	refreshed, err := repo.FindDeviceByID(ctx, phone.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-1b", refreshed.FCMToken)
	assert.True(t, refreshed.IsActive)

	require.NoError(t, repo.DeleteDevice(ctx, phone.ID))
	_, err = repo.FindDeviceByUserAndDeviceID(ctx, userID, "phone")
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
	assert.ErrorIs(t, repo.DeleteDevice(ctx, phone.ID), domainerrors.ErrDeviceNotFound)
}

func TestDeviceRepository_UpdateMissing(t *testing.T) {
	repo := NewDeviceRepository(newTestDB(t))

	err := repo.UpdateFCMToken(context.Background(), uuid.New(), "tok")
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}
