// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"educycle/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	College      string
	Department   string
	Year         string
	Phone        string
	Gender       entity.Gender
	ProfileImage string
	Bio          string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by both sign-up and login.
type AuthOutput struct {
	Token  string
	UserID uuid.UUID
	User   *entity.User
}

// AuthUsecase defines account creation and credential checks.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}
