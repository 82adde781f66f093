package handler

import (
	"log/slog"
	"net/http"

	"educycle/internal/delivery/api/response"
	"educycle/internal/domain/entity"
	"educycle/internal/infra/metrics"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves sign-up and login.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	College      string `json:"college" validate:"required"`
	Department   string `json:"department"`
	Year         string `json:"year"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender" validate:"required,oneof=male female other"`
	ProfileImage string `json:"profileImage"`
	Bio          string `json:"bio"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both sign-up and login.
type AuthResponse struct {
	Token  string       `json:"token"`
	UserID uuid.UUID    `json:"userId"`
	User   *entity.User `json:"user"`
}

// Signup handles account creation.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		College:      req.College,
		Department:   req.Department,
		Year:         req.Year,
		Phone:        req.Phone,
		Gender:       entity.Gender(req.Gender),
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.RecordMarketplaceEvent("user_registered")

	return response.Success(c, http.StatusCreated, toAuthResponse(output))
}

// Login handles credential checks.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

func toAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Token:  output.Token,
		UserID: output.UserID,
		User:   output.User,
	}
}
