package usecase

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}

// UpdateProfileInput carries a partial profile. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name         *string
	College      *string
	Department   *string
	Year         *string
	Phone        *string
	Gender       *entity.Gender
	ProfileImage *string
	Bio          *string
}
