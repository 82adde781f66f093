package localstore

import (
	"context"
	"slices"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func deviceKey(id uuid.UUID) string {
	return deviceKeyPrefix + id.String()
}

func deviceUserKey(userID uuid.UUID, deviceID string) string {
	return deviceUserKeyPrefix + userID.String() + ":" + deviceID
}

// deviceRepository implements repository.DeviceRepository on Badger.
type deviceRepository struct {
	store kv
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *badger.DB) repository.DeviceRepository {
	return &deviceRepository{store: kv{db: db}}
}

// CreateDevice persists a new device for a user.
func (repo *deviceRepository) CreateDevice(ctx context.Context, device *entity.UserDevice) error {
	now := time.Now().UTC()
	device.CreatedAt = now
	device.UpdatedAt = now

	return repo.store.update(ctx, func(txn *badger.Txn) error {
		indexKey := []byte(deviceUserKey(device.UserID, device.DeviceID))
		_, err := txn.Get(indexKey)
		if err == nil {
			return domainerrors.ErrConflict.WrapMessage("device already registered")
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrap(err, "check device index")
		}

		if err := txn.Set(indexKey, []byte(device.ID.String())); err != nil {
			return errors.Wrap(err, "set device index")
		}

		return setJSON(txn, deviceKey(device.ID), device)
	})
}

// FindDeviceByID retrieves a device by its unique ID.
func (repo *deviceRepository) FindDeviceByID(_ context.Context, id uuid.UUID) (*entity.UserDevice, error) {
	var device *entity.UserDevice
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		device, err = loadDevice(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return device, nil
}

// FindDeviceByUserAndDeviceID resolves the per-user device index.
func (repo *deviceRepository) FindDeviceByUserAndDeviceID(_ context.Context, userID uuid.UUID, deviceID string) (*entity.UserDevice, error) {
	var device *entity.UserDevice
	err := repo.store.view(func(txn *badger.Txn) error {
		rawID, err := getString(txn, deviceUserKey(userID, deviceID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.ErrDeviceNotFound
		}
		if err != nil {
			return errors.Wrap(err, "get device index")
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return errors.Wrap(err, "corrupt device index")
		}

		device, err = loadDevice(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return device, nil
}

// FindActiveDevicesByUser retrieves all active devices for a specific user, newest first.
func (repo *deviceRepository) FindActiveDevicesByUser(_ context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices := make([]*entity.UserDevice, 0)
	err := repo.store.view(func(txn *badger.Txn) error {
		return scanPrefix(txn, deviceUserKeyPrefix+userID.String()+":", func(_ string, val []byte) error {
			id, err := uuid.ParseBytes(val)
			if err != nil {
				return errors.Wrap(err, "corrupt device index")
			}

			device, err := loadDevice(txn, id)
			if errors.Is(err, domainerrors.ErrDeviceNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if device.IsActive {
				devices = append(devices, device)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(devices, func(a, b *entity.UserDevice) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return devices, nil
}

// UpdateFCMToken updates the FCM token for a specific device and reactivates it.
func (repo *deviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		device, err := loadDevice(txn, deviceID)
		if err != nil {
			return err
		}

		device.FCMToken = fcmToken
		device.IsActive = true
		device.UpdatedAt = time.Now().UTC()

		return setJSON(txn, deviceKey(deviceID), device)
	})
}

// DeactivateByTokens marks devices holding any of the tokens as inactive.
func (repo *deviceRepository) DeactivateByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	return repo.store.update(ctx, func(txn *badger.Txn) error {
		var stale []*entity.UserDevice
		err := scanPrefix(txn, deviceKeyPrefix, func(_ string, val []byte) error {
			var device entity.UserDevice
			if err := json.Unmarshal(val, &device); err != nil {
				return err
			}
			if device.IsActive && slices.Contains(tokens, device.FCMToken) {
				stale = append(stale, &device)
			}

			return nil
		})
		if err != nil {
			return errors.Wrap(err, "scan devices")
		}

		for _, device := range stale {
			device.IsActive = false
			device.UpdatedAt = time.Now().UTC()
			if err := setJSON(txn, deviceKey(device.ID), device); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteDevice removes a device and its index entry.
func (repo *deviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		device, err := loadDevice(txn, id)
		if err != nil {
			return err
		}

		if err := deleteKey(txn, deviceUserKey(device.UserID, device.DeviceID)); err != nil {
			return err
		}

		return deleteKey(txn, deviceKey(id))
	})
}

func loadDevice(txn *badger.Txn, id uuid.UUID) (*entity.UserDevice, error) {
	var device entity.UserDevice
	if err := getJSON(txn, deviceKey(id), &device); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to load device")
	}

	return &device, nil
}
