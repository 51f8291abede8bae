package pubsub

import (
	"context"
	"log/slog"
	"slices"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

// noopPublisher drops every domain event when Pub/Sub is not configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	deliverycontext.LoggerFrom(ctx, p.logger).Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// selectivePublisher forwards only the configured domain event types.
type selectivePublisher struct {
	next   service.EventPublisher
	types  []string
	logger *slog.Logger
}

func (p *selectivePublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	if !slices.Contains(p.types, event.Type) {
		deliverycontext.LoggerFrom(ctx, p.logger).Debug("[PubSub] Event type not selected, skipping",
			slog.String("event_id", event.EventID),
			slog.String("type", event.Type),
		)

		return nil
	}

	return p.next.Publish(ctx, event)
}

func (p *selectivePublisher) Close() error {
	return p.next.Close()
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// validateConfig checks the settings of the configured provider and the
// selected event types.
func validateConfig(cfg *config.PubSubConfig) error {
	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return errors.New("local endpoint is required for local provider")
		}
	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return errors.New("topic ID is required for google provider")
		}
	default:
		return errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	known := constants.EventTypes()
	for _, eventType := range cfg.EventTypes {
		if !slices.Contains(known, eventType) {
			return errors.Errorf("unknown domain event type: %s", eventType)
		}
	}

	return nil
}

// NewEventPublisher creates the EventPublisher of the configured provider.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	var publisher service.EventPublisher
	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case constants.PubSubProviderGoogle:
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		var err error
		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, cfg.EmulatorEndpoint, logger)
		if err != nil {
			return nil, err
		}
	}

	if len(cfg.EventTypes) > 0 {
		logger.Info("Publishing selected domain events", slog.Any("types", cfg.EventTypes))
		publisher = &selectivePublisher{next: publisher, types: cfg.EventTypes, logger: logger}
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
