package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"educycle/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationService_FallsBackToLogOnly(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, fb := range []*config.FirebaseConfig{nil, {}} {
		svc, err := NewNotificationService(Params{
			Ctx:    context.Background(),
			Config: &config.Config{Firebase: fb},
			Logger: logger,
		})
		require.NoError(t, err)
		assert.IsType(t, &logOnlyService{}, svc)
	}
}

func TestLogOnlyService_SendBatch(t *testing.T) {
	svc := NewLogOnlyService(slog.New(slog.NewTextHandler(io.Discard, nil)))

	success, failure, invalid, err := svc.SendBatchNotification(context.Background(), []string{"a", "b"}, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, success)
	assert.Zero(t, failure)
	assert.Empty(t, invalid)

	_, _, _, err = svc.SendBatchNotification(context.Background(), make([]string, MaxBatchSize+1), "t", "b", nil)
	assert.Error(t, err)

	assert.NoError(t, svc.SendSingleNotification(context.Background(), "a", "t", "b", nil))
}
