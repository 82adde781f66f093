package handler

import (
	"context"
	"log/slog"
	"net/http"

	"educycle/internal/delivery/api/response"
	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/lifecycle"
	"educycle/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness together with storage reachability.
type HealthHandler struct {
	checker repository.HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(checker repository.HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Check pings the store within the lifecycle timeout.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("Health check failed", slog.Any("error", err))

		return c.JSON(http.StatusServiceUnavailable, response.SuccessResponse{
			Data: &HealthResponse{Status: "degraded", Storage: "unreachable"},
			Meta: &response.MetaInfo{RequestID: deliverycontext.GetRequestID(c)},
		})
	}

	return response.Success(c, http.StatusOK, &HealthResponse{Status: "ok", Storage: "ok"})
}
