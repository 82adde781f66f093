package impl

import (
	"context"
	"strings"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var supportedPlatforms = map[string]bool{
	"ios":     true,
	"android": true,
	"web":     true,
}

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo repository.DeviceRepository) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
	}
}

// RegisterDevice registers a new device or refreshes the token of an existing one
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.UserDevice, error) {
	if strings.TrimSpace(deviceInfo.FCMToken) == "" || strings.TrimSpace(deviceInfo.DeviceID) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("fcmToken and deviceId are required")
	}
	platform := strings.ToLower(strings.TrimSpace(deviceInfo.Platform))
	if !supportedPlatforms[platform] {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("platform must be ios, android or web")
	}

	existing, err := s.deviceRepo.FindDeviceByUserAndDeviceID(ctx, userID, deviceInfo.DeviceID)
	switch {
	case err == nil:
		if err := s.deviceRepo.UpdateFCMToken(ctx, existing.ID, deviceInfo.FCMToken); err != nil {
			return nil, errors.Wrap(err, "failed to update FCM token")
		}

		return s.deviceRepo.FindDeviceByID(ctx, existing.ID)
	case !errors.Is(err, domainerrors.ErrDeviceNotFound):
		return nil, errors.Wrap(err, "failed to find device")
	}

	now := time.Now().UTC()
	device := &entity.UserDevice{
		ID:        uuid.New(),
		UserID:    userID,
		FCMToken:  deviceInfo.FCMToken,
		DeviceID:  deviceInfo.DeviceID,
		Platform:  platform,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.deviceRepo.CreateDevice(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to create device")
	}

	return device, nil
}

// UpdateFCMToken updates the FCM token for a specific device
func (s *deviceService) UpdateFCMToken(ctx context.Context, userID uuid.UUID, deviceID uuid.UUID, fcmToken string) error {
	if strings.TrimSpace(fcmToken) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("fcmToken is required")
	}

	if _, err := s.ownedDevice(ctx, userID, deviceID); err != nil {
		return err
	}

	return errors.Wrap(s.deviceRepo.UpdateFCMToken(ctx, deviceID, fcmToken), "failed to update FCM token")
}

// GetUserDevices retrieves all active devices for a user
func (s *deviceService) GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices by user")
	}

	return devices, nil
}

// DeactivateDevice removes a device so it no longer receives pushes
func (s *deviceService) DeactivateDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	if _, err := s.ownedDevice(ctx, userID, deviceID); err != nil {
		return err
	}

	return errors.Wrap(s.deviceRepo.DeleteDevice(ctx, deviceID), "failed to delete device")
}

func (s *deviceService) ownedDevice(ctx context.Context, userID, deviceID uuid.UUID) (*entity.UserDevice, error) {
	device, err := s.deviceRepo.FindDeviceByID(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find device by ID")
	}

	if device.UserID != userID {
		return nil, domainerrors.ErrDeviceOwnership.WrapMessage("device belongs to another user")
	}

	return device, nil
}
