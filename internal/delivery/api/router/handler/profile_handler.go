package handler

import (
	"net/http"

	"educycle/internal/delivery/api/response"
	"educycle/internal/domain/entity"
	"educycle/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the current user's profile and public profiles.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(profileUC usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// UpdateProfileRequest carries the fields to change; absent fields are kept.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	College      *string `json:"college"`
	Department   *string `json:"department"`
	Year         *string `json:"year"`
	Phone        *string `json:"phone"`
	Gender       *string `json:"gender" validate:"omitempty,oneof=male female other"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
}

// GetProfile returns the authenticated user.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateProfile merges the request into the authenticated user's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.UpdateProfileInput{
		Name:         req.Name,
		College:      req.College,
		Department:   req.Department,
		Year:         req.Year,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		input.Gender = &gender
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// GetPublicProfile returns another user's profile.
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	userID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}
