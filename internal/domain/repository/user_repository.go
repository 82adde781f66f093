// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create persists a new user. Returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// FindByEmail looks up by normalized email. Returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update overwrites the mutable profile fields of the user.
	Update(ctx context.Context, user *entity.User) error

	// AddListing appends productID to the user's listings if absent.
	AddListing(ctx context.Context, userID, productID uuid.UUID) error

	// SetSavedItem adds or removes productID from the user's saved items.
	SetSavedItem(ctx context.Context, userID, productID uuid.UUID, saved bool) error

	// PullProductReferences removes productID from every user's listings and saved items.
	PullProductReferences(ctx context.Context, productID uuid.UUID) error
}
