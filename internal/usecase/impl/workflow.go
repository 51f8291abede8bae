// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Workflow names tagged on the logs of each use case.
const (
	workflowRegister       = "user.register"
	workflowUpdateUser     = "user.update"
	workflowDeleteUser     = "user.delete"
	workflowLogin          = "user.login"
	workflowAddCartItem    = "cart.add_item"
	workflowRemoveCartItem = "cart.remove_item"
	workflowCartSummary    = "cart.summary"
	workflowPurgeCart      = "cart.purge"
)

// inScope tags ctx with the running workflow and, when known, the business
// entity it acts for.
func inScope(ctx context.Context, workflow string, businessEntityID int32) context.Context {
	return deliverycontext.WithBusinessEntity(deliverycontext.WithWorkflow(ctx, workflow), businessEntityID)
}

// runTransaction executes steps inside one transaction of uow. Absence and
// validation errors are returned as they are; every other failure rolls back
// and is reported as a TransactionError of the given kind.
func runTransaction(ctx context.Context, uow repository.UnitOfWork, kind *domainerrors.BaseError, steps func(uow repository.UnitOfWork) error) error {
	err := uow.Execute(ctx, steps)
	if err == nil {
		return nil
	}

	if domainerrors.IsNotFound(err) || errors.Is(err, domainerrors.ErrValidationFailed) {
		return err
	}

	return domainerrors.NewTransactionError(kind, err)
}

// eventPublisher sends post-commit domain events. Failures are logged and
// never change the outcome of the workflow that produced the event.
type eventPublisher struct {
	publisher service.EventPublisher
	clock     service.Clock
	logger    *slog.Logger
}

func (p eventPublisher) publish(ctx context.Context, eventType string, businessEntityID int32, payload map[string]any) {
	if p.publisher == nil {
		return
	}

	event := &service.DomainEvent{
		RequestID:        deliverycontext.RequestIDFrom(ctx),
		EventID:          uuid.NewString(),
		Type:             eventType,
		BusinessEntityID: businessEntityID,
		OccurredAt:       p.clock.Now(),
		Payload:          payload,
	}

	if err := p.publisher.Publish(ctx, event); err != nil {
		deliverycontext.LoggerFrom(ctx, p.logger).Warn("Failed to publish domain event",
			slog.String("type", eventType),
			slog.Any("businessEntityID", businessEntityID),
			slog.Any("error", err),
		)
	}
}
