package notification

import (
	"context"
	"log/slog"

	"educycle/config"
	"educycle/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// logOnlyService stands in for Firebase when no project is configured.
// Every send is logged and reported as delivered.
type logOnlyService struct {
	logger *slog.Logger
}

func (s *logOnlyService) SendSingleNotification(_ context.Context, token, title, body string, _ map[string]string) error {
	s.logger.Info("[LogNotifier] notification",
		slog.String("token", token),
		slog.String("title", title),
		slog.String("body", body),
	)

	return nil
}

func (s *logOnlyService) SendBatchNotification(_ context.Context, tokens []string, title, body string, _ map[string]string) (int, int, []string, error) {
	if len(tokens) > MaxBatchSize {
		return 0, 0, nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), MaxBatchSize)
	}

	s.logger.Info("[LogNotifier] batch notification",
		slog.Int("token_count", len(tokens)),
		slog.String("title", title),
		slog.String("body", body),
	)

	return len(tokens), 0, nil, nil
}

// NewLogOnlyService returns a NotificationService that only logs.
func NewLogOnlyService(logger *slog.Logger) service.NotificationService {
	return &logOnlyService{logger: logger}
}

// Params holds dependencies for NewNotificationService, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService picks Firebase when configured and the log-only sender otherwise.
func NewNotificationService(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || (cfg.ProjectID == "" && cfg.CredentialsPath == "") {
		params.Logger.Info("Firebase not configured, notifications will only be logged")

		return NewLogOnlyService(params.Logger), nil
	}

	svc, err := NewFirebaseService(params.Ctx, cfg.ProjectID, cfg.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase service")
	}

	return svc, nil
}
