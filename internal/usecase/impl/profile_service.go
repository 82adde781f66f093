package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(userRepo repository.UserRepository, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// GetPublicProfile returns the profile of any user. The password hash never serializes.
func (srv *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return srv.GetProfile(ctx, userID)
}

// UpdateProfile merges the non-nil fields. Identity, email and credentials are never touched.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("name cannot be empty")
		}
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.College != nil {
		if strings.TrimSpace(*input.College) == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("college cannot be empty")
		}
		user.College = strings.TrimSpace(*input.College)
	}
	if input.Gender != nil {
		if !input.Gender.Valid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("gender must be male, female or other")
		}
		user.Gender = *input.Gender
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Year != nil {
		user.Year = *input.Year
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Profile updated", slog.Any("userID", userID))

	return srv.userRepo.FindByID(ctx, userID)
}
