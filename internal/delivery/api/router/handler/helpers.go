// Package handler contains the echo handlers of the marketplace API.
package handler

import (
	"educycle/internal/delivery/api/middleware"
	domainerrors "educycle/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// messageResponse is the payload of endpoints that only acknowledge an action.
type messageResponse struct {
	Message string `json:"message"`
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("request body could not be decoded")
	}

	return c.Validate(req)
}

// currentUser returns the user set by the auth middleware.
func currentUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrInvalidToken
	}

	return userID, nil
}

// uuidParam parses a path parameter holding an identifier.
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid " + name)
	}

	return id, nil
}
