package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/constants"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	deliverycontext "storefront/internal/delivery/context"

	"go.uber.org/fx"
)

type eventService struct {
	uowFactory repository.UnitOfWorkFactory
	logger     *slog.Logger
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	UowFactory repository.UnitOfWorkFactory
	Logger     *slog.Logger
}

// NewEventService creates the consumer of published domain events.
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{
		uowFactory: params.UowFactory,
		logger:     params.Logger,
	}
}

func (srv *eventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *eventService) HandleEvent(ctx context.Context, event *service.DomainEvent) error {
	switch event.Type {
	case constants.EventUserDeleted:
		return srv.purgeCart(ctx, event.BusinessEntityID)
	default:
		srv.log(ctx).Debug("Ignoring domain event",
			slog.String("type", event.Type),
			slog.String("eventID", event.EventID),
		)

		return nil
	}
}

// purgeCart deletes every cart line left behind by a deleted account.
func (srv *eventService) purgeCart(ctx context.Context, businessEntityID int32) error {
	ctx = inScope(ctx, workflowPurgeCart, businessEntityID)
	uow := srv.uowFactory.NewPrimary()
	defer uow.Close()

	removed := 0
	err := runTransaction(ctx, uow, domainerrors.ErrCartUpdateFailed, func(uow repository.UnitOfWork) error {
		items, err := uow.CartItems().Find(ctx, byBusinessEntity(businessEntityID))
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := uow.CartItems().Remove(ctx, item); err != nil {
				return err
			}
		}
		removed = len(items)

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to purge cart", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Purged cart of deleted account", slog.Int("removed", removed))

	return nil
}
