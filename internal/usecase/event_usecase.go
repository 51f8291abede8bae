package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// EventUsecase consumes domain events delivered by the message queue.
type EventUsecase interface {
	// HandleEvent applies the side effects of event. Unknown types are ignored.
	HandleEvent(ctx context.Context, event *service.DomainEvent) error
}
