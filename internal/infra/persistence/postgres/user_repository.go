package postgres

import (
	"context"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create persists a new user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByIDs retrieves the users that exist among ids.
func (repo *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var userModels []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by ids")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// FindByEmail retrieves a single user by normalized email.
// The lookup always hits the primary so a fresh registration is visible to the next login.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Update overwrites the editable profile columns.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":          user.Name,
			"college":       user.College,
			"department":    user.Department,
			"year":          user.Year,
			"phone":         user.Phone,
			"gender":        string(user.Gender),
			"profile_image": user.ProfileImage,
			"bio":           user.Bio,
		})
	if result.Error != nil {
		return domainerrors.ErrUserUpdateFailed.WrapMessage(result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// AddListing appends productID to the user's listings.
func (repo *userRepository) AddListing(ctx context.Context, userID, productID uuid.UUID) error {
	return repo.updateSet(ctx, userID, "listings", jsonbAddID("listings", productID))
}

// SetSavedItem adds or removes productID from the user's saved items.
func (repo *userRepository) SetSavedItem(ctx context.Context, userID, productID uuid.UUID, saved bool) error {
	return repo.updateSet(ctx, userID, "saved_items", jsonbSetID("saved_items", productID, saved))
}

// PullProductReferences removes productID from every user's listings and saved items.
func (repo *userRepository) PullProductReferences(ctx context.Context, productID uuid.UUID) error {
	arr := singletonArray(productID)
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("listings @> ?::jsonb OR saved_items @> ?::jsonb", arr, arr).
		Updates(map[string]any{
			"listings":    jsonbRemoveID("listings", productID),
			"saved_items": jsonbRemoveID("saved_items", productID),
		}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to pull product references")
	}

	return nil
}

func (repo *userRepository) updateSet(ctx context.Context, userID uuid.UUID, column string, expr any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update(column, expr)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update "+column)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		College:      data.College,
		Department:   data.Department,
		Year:         data.Year,
		Phone:        data.Phone,
		Gender:       entity.Gender(data.Gender),
		ProfileImage: data.ProfileImage,
		Bio:          data.Bio,
		Listings:     nonNilIDs(data.Listings),
		SavedItems:   nonNilIDs(data.SavedItems),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        entity.NormalizeEmail(data.Email),
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		College:      data.College,
		Department:   data.Department,
		Year:         data.Year,
		Phone:        data.Phone,
		Gender:       string(data.Gender),
		ProfileImage: data.ProfileImage,
		Bio:          data.Bio,
		Listings:     nonNilIDs(data.Listings),
		SavedItems:   nonNilIDs(data.SavedItems),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}

	return ids
}
