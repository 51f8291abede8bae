package service

import (
	"context"
	"time"
)

// DomainEvent is published after a workflow commits.
type DomainEvent struct {
	RequestID        string         `json:"request_id,omitempty"` // For distributed tracing
	EventID          string         `json:"event_id"`
	Type             string         `json:"type"`
	BusinessEntityID int32          `json:"business_entity_id"`
	OccurredAt       time.Time      `json:"occurred_at"`
	Payload          map[string]any `json:"payload,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends event. The committed state is authoritative regardless of the outcome.
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
