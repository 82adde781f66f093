// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the account and signs the caller in.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting sign-up", slog.String("email", email))

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during sign-up", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		College:      strings.TrimSpace(input.College),
		Department:   input.Department,
		Year:         input.Year,
		Phone:        input.Phone,
		Gender:       input.Gender,
		ProfileImage: input.ProfileImage,
		Bio:          input.Bio,
		Listings:     []uuid.UUID{},
		SavedItems:   []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user during sign-up")
	}

	srv.log(ctx).Debug("Sign-up completed", slog.Any("userID", user.ID))

	return srv.issue(user)
}

// Login checks the credentials and returns a fresh token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	email := entity.NormalizeEmail(input.Email)
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch on login", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	return srv.issue(user)
}

func (srv *authService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to generate access token: " + err.Error())
	}

	return &usecase.AuthOutput{
		Token:  token,
		UserID: user.ID,
		User:   user,
	}, nil
}

func validateSignup(input *usecase.SignupInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(input.College) == "" {
		missing = append(missing, "college")
	}
	if input.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required fields: " + strings.Join(missing, ", "))
	}

	if !strings.Contains(input.Email, "@") {
		return domainerrors.ErrValidationFailed.WrapMessage("email is malformed")
	}
	if !input.Gender.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("gender must be male, female or other")
	}

	return nil
}
