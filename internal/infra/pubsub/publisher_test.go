package pubsub

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"educycle/config"
	"educycle/internal/domain/constants"
	"educycle/internal/domain/entity"
	"educycle/internal/infra/metrics"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent() *entity.MarketplaceEvent {
	return &entity.MarketplaceEvent{
		RequestID:   "req-1",
		EventID:     "evt-1",
		Type:        entity.EventOrderConfirmed,
		RecipientID: "seller-1",
		ActorID:     "buyer-1",
		ProductID:   "product-1",
		OrderID:     "ORDABC123456",
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.Publish(context.Background(), newTestEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, entity.EventOrderConfirmed, received.Message.Attributes["event_type"])

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded entity.MarketplaceEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *newTestEvent(), decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.Publish(context.Background(), newTestEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
		wantTyp any
	}{
		{name: "not configured", cfg: nil, wantTyp: &noopPublisher{}},
		{name: "empty provider", cfg: &config.PubSubConfig{}, wantTyp: &noopPublisher{}},
		{
			name:    "local",
			cfg:     &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"},
			wantTyp: &instrumentedPublisher{},
		},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: true},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, wantErr: true},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, wantErr: true},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantTyp, publisher)
			lc.RequireStart().RequireStop()
		})
	}
}

func TestInstrumentedPublisher_CountsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	event := newTestEvent()
	before := testutil.ToFloat64(metrics.EventPublishFailures.WithLabelValues(event.Type))

	publisher := &instrumentedPublisher{next: NewLocalHTTPPublisher(server.URL, newDiscardLogger())}
	require.Error(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())

	after := testutil.ToFloat64(metrics.EventPublishFailures.WithLabelValues(event.Type))
	assert.InDelta(t, 1, after-before, 0.0001)
}
