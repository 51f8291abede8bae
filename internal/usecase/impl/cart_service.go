package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/query"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"gorm.io/gorm/clause"
)

const defaultUpsertAttempts = 3

type cartService struct {
	uowFactory     repository.UnitOfWorkFactory
	clock          service.Clock
	events         eventPublisher
	upsertAttempts int
	logger         *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	UowFactory repository.UnitOfWorkFactory
	Clock      service.Clock
	Publisher  service.EventPublisher `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	attempts := defaultUpsertAttempts
	if params.Config != nil && params.Config.Cart != nil && params.Config.Cart.MaxUpsertAttempts > 0 {
		attempts = params.Config.Cart.MaxUpsertAttempts
	}

	return &cartService{
		uowFactory:     params.UowFactory,
		clock:          params.Clock,
		events:         eventPublisher{publisher: params.Publisher, clock: params.Clock, logger: params.Logger},
		upsertAttempts: attempts,
		logger:         params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func cartItemPredicate(businessEntityID, productID int32) query.Predicate {
	return byBusinessEntity(businessEntityID).And(
		clause.Eq{Column: clause.Column{Name: entity.ColProductID}, Value: productID},
	)
}

func validateCartItem(input *usecase.CartItemInput) error {
	if input.Quantity <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("quantity must be greater than zero")
	}
	if input.ProductID <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product id is required")
	}

	return nil
}

// AddItem inserts the product into the cart or increases the quantity of the
// existing line. A racing insert of the same line is retried as an increment.
func (srv *cartService) AddItem(ctx context.Context, input *usecase.CartItemInput) error {
	ctx = inScope(ctx, workflowAddCartItem, input.BusinessEntityID)
	if err := validateCartItem(input); err != nil {
		return err
	}

	var err error
	for attempt := 1; attempt <= srv.upsertAttempts; attempt++ {
		err = srv.upsert(ctx, input)
		if err == nil || !errors.Is(err, domainerrors.ErrDuplicateRow) {
			break
		}

		srv.log(ctx).Warn("Cart upsert lost an insert race, retrying",
			slog.Any("productID", input.ProductID),
			slog.Int("attempt", attempt),
		)
	}
	if err != nil {
		srv.log(ctx).Error("Cart upsert failed", slog.Any("error", err))

		return err
	}

	srv.events.publish(ctx, constants.EventCartUpdated, input.BusinessEntityID, map[string]any{
		"productId": input.ProductID,
		"delta":     input.Quantity,
	})

	return nil
}

func (srv *cartService) upsert(ctx context.Context, input *usecase.CartItemInput) error {
	uow := srv.uowFactory.New()
	defer uow.Close()

	now := srv.clock.Now()

	return runTransaction(ctx, uow, domainerrors.ErrCartUpdateFailed, func(uow repository.UnitOfWork) error {
		product, err := uow.Products().FindOne(ctx, query.Eq(entity.ColProductID, input.ProductID))
		if err != nil {
			return err
		}
		if product == nil {
			return domainerrors.ErrProductNotFound
		}

		item, err := uow.CartItems().FindOne(ctx, cartItemPredicate(input.BusinessEntityID, input.ProductID))
		if err != nil {
			return err
		}

		if item == nil {
			uow.CartItems().Add(&entity.ShoppingCartItem{
				BusinessEntityID: input.BusinessEntityID,
				ProductID:        input.ProductID,
				Quantity:         input.Quantity,
				DateCreated:      now,
				ModifiedDate:     now,
			})

			return uow.SaveChanges(ctx)
		}

		item.Quantity += input.Quantity
		item.ModifiedDate = now

		return uow.CartItems().Update(ctx, item)
	})
}

// RemoveItem decreases the quantity of a cart line and deletes it once nothing is left.
func (srv *cartService) RemoveItem(ctx context.Context, input *usecase.CartItemInput) error {
	ctx = inScope(ctx, workflowRemoveCartItem, input.BusinessEntityID)
	if err := validateCartItem(input); err != nil {
		return err
	}

	uow := srv.uowFactory.New()
	defer uow.Close()

	now := srv.clock.Now()

	err := runTransaction(ctx, uow, domainerrors.ErrCartUpdateFailed, func(uow repository.UnitOfWork) error {
		item, err := uow.CartItems().FindOne(ctx, cartItemPredicate(input.BusinessEntityID, input.ProductID))
		if err != nil {
			return err
		}
		if item == nil {
			return domainerrors.ErrCartItemNotFound
		}

		item.Quantity = max(item.Quantity-input.Quantity, 0)
		if item.Quantity == 0 {
			return uow.CartItems().Remove(ctx, item)
		}
		item.ModifiedDate = now

		return uow.CartItems().Update(ctx, item)
	})
	if err != nil {
		srv.log(ctx).Error("Cart removal failed", slog.Any("error", err))

		return err
	}

	srv.events.publish(ctx, constants.EventCartUpdated, input.BusinessEntityID, map[string]any{
		"productId": input.ProductID,
		"delta":     -input.Quantity,
	})

	return nil
}

// Summary returns every line of the cart with the cart totals.
func (srv *cartService) Summary(ctx context.Context, businessEntityID int32) (*entity.CartSummary, error) {
	ctx = inScope(ctx, workflowCartSummary, businessEntityID)
	uow := srv.uowFactory.New()
	defer uow.Close()

	lines, err := repository.FindWithProjection(ctx, uow.CartItems(), query.CartLineOf, query.Spec{
		Predicate: byBusinessEntity(businessEntityID),
		Related:   query.CartLineRelations,
		Order: []clause.OrderByColumn{{
			Column: clause.Column{Table: entity.TableShoppingCartItems, Name: entity.ColShoppingCartItemID},
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	if len(lines) == 0 {
		return nil, domainerrors.ErrCartNotFound
	}

	totals := entity.CartTotals{TotalPrice: decimal.Zero}
	for _, line := range lines {
		totals.TotalPrice = totals.TotalPrice.Add(line.TotalPrice)
		totals.ItemCount += line.Quantity
	}

	return &entity.CartSummary{Details: totals, Items: lines}, nil
}
