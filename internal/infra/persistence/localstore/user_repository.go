package localstore

import (
	"context"
	"time"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRecord keeps the password hash that entity.User hides from JSON.
type userRecord struct {
	entity.User
	PasswordHash string `json:"passwordHash"`
}

func newUserRecord(user *entity.User) *userRecord {
	return &userRecord{User: *user, PasswordHash: user.PasswordHash}
}

func (r *userRecord) toDomain() *entity.User {
	user := r.User
	user.PasswordHash = r.PasswordHash
	if user.Listings == nil {
		user.Listings = []uuid.UUID{}
	}
	if user.SavedItems == nil {
		user.SavedItems = []uuid.UUID{}
	}

	return &user
}

func userKey(id uuid.UUID) string {
	return userKeyPrefix + id.String()
}

func userEmailKey(email string) string {
	return userEmailKeyPrefix + entity.NormalizeEmail(email)
}

// userRepository implements repository.UserRepository on Badger.
type userRepository struct {
	store kv
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *badger.DB) repository.UserRepository {
	return &userRepository{store: kv{db: db}}
}

// Create stores the user and claims its email index key.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.Email = entity.NormalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	return repo.store.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(userEmailKey(user.Email)))
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrap(err, "check email index")
		}

		if err := txn.Set([]byte(userEmailKey(user.Email)), []byte(user.ID.String())); err != nil {
			return errors.Wrap(err, "set email index")
		}

		return setJSON(txn, userKey(user.ID), newUserRecord(user))
	})
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var user *entity.User
	err := repo.store.view(func(txn *badger.Txn) error {
		var err error
		user, err = loadUser(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FindByIDs retrieves the users that exist among ids.
func (repo *userRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(ids))
	err := repo.store.view(func(txn *badger.Txn) error {
		for _, id := range ids {
			user, err := loadUser(txn, id)
			if errors.Is(err, domainerrors.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users = append(users, user)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// FindByEmail resolves the email index and loads the user.
func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var user *entity.User
	err := repo.store.view(func(txn *badger.Txn) error {
		rawID, err := getString(txn, userEmailKey(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "get email index")
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return errors.Wrap(err, "corrupt email index")
		}

		user, err = loadUser(txn, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update overwrites the editable profile fields.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	return repo.mutate(ctx, user.ID, func(stored *entity.User) {
		stored.Name = user.Name
		stored.College = user.College
		stored.Department = user.Department
		stored.Year = user.Year
		stored.Phone = user.Phone
		stored.Gender = user.Gender
		stored.ProfileImage = user.ProfileImage
		stored.Bio = user.Bio
	})
}

// AddListing appends productID to the user's listings.
func (repo *userRepository) AddListing(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.mutate(ctx, userID, func(stored *entity.User) {
		stored.Listings = entity.AddID(stored.Listings, productID)
	})
}

// SetSavedItem adds or removes productID from the user's saved items.
func (repo *userRepository) SetSavedItem(ctx context.Context, userID, productID uuid.UUID, saved bool) error {
	return repo.mutate(ctx, userID, func(stored *entity.User) {
		stored.SavedItems = entity.SetID(stored.SavedItems, productID, saved)
	})
}

// PullProductReferences scans all users and drops productID from their sets.
func (repo *userRepository) PullProductReferences(ctx context.Context, productID uuid.UUID) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		records, err := scanJSON[userRecord](txn, userKeyPrefix)
		if err != nil {
			return errors.Wrap(err, "scan users")
		}

		for _, record := range records {
			if !entity.ContainsID(record.Listings, productID) && !entity.ContainsID(record.SavedItems, productID) {
				continue
			}
			record.Listings = entity.RemoveID(record.Listings, productID)
			record.SavedItems = entity.RemoveID(record.SavedItems, productID)
			record.UpdatedAt = time.Now().UTC()
			if err := setJSON(txn, userKey(record.ID), record); err != nil {
				return err
			}
		}

		return nil
	})
}

func (repo *userRepository) mutate(ctx context.Context, id uuid.UUID, apply func(stored *entity.User)) error {
	return repo.store.update(ctx, func(txn *badger.Txn) error {
		user, err := loadUser(txn, id)
		if err != nil {
			return err
		}

		apply(user)
		user.UpdatedAt = time.Now().UTC()

		return setJSON(txn, userKey(id), newUserRecord(user))
	})
}

func loadUser(txn *badger.Txn, id uuid.UUID) (*entity.User, error) {
	var record userRecord
	if err := getJSON(txn, userKey(id), &record); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return record.toDomain(), nil
}
