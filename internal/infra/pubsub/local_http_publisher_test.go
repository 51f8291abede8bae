package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent() *service.DomainEvent {
	return &service.DomainEvent{
		RequestID:        "req-1",
		EventID:          "evt-1",
		Type:             "cart.updated",
		BusinessEntityID: 9,
		OccurredAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Payload:          map[string]any{"productId": float64(3)},
	}
}

func TestLocalHTTPPublisher_PostsPushMessage(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.Publish(context.Background(), newTestEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, "cart.updated", received.Message.Attributes["event_type"])
	assert.Equal(t, "2024-05-01T12:00:00Z", received.Message.PublishTime)

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.DomainEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int32(9), decoded.BusinessEntityID)
	assert.Equal(t, float64(3), decoded.Payload["productId"])
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.Publish(context.Background(), newTestEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
		check   func(t *testing.T, p service.EventPublisher)
	}{
		{
			name: "unconfigured uses noop",
			cfg:  nil,
			check: func(t *testing.T, p service.EventPublisher) {
				_, ok := p.(*noopPublisher)
				assert.True(t, ok)
				assert.NoError(t, p.Publish(context.Background(), newTestEvent()))
			},
		},
		{
			name: "local",
			cfg:  &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:1"},
			check: func(t *testing.T, p service.EventPublisher) {
				_, ok := p.(*localHTTPPublisher)
				assert.True(t, ok)
			},
		},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}, wantErr: true},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google", TopicID: "t"}, wantErr: true},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
		{
			name:    "unknown event type",
			cfg:     &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:1", EventTypes: []string{"order.placed"}},
			wantErr: true,
		},
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
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			tt.check(t, publisher)
		})
	}
}
