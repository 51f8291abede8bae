package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/query"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	deliverycontext "storefront/internal/delivery/context"

	"go.uber.org/fx"
)

type catalogService struct {
	uowFactory  repository.UnitOfWorkFactory
	pageSize    int
	recentCount int
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	UowFactory repository.UnitOfWorkFactory
	Config     *config.Config
	Logger     *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	srv := &catalogService{
		uowFactory:  params.UowFactory,
		pageSize:    query.DefaultPageSize,
		recentCount: query.DefaultPageSize,
		logger:      params.Logger,
	}

	if params.Config != nil && params.Config.Catalog != nil {
		if params.Config.Catalog.DefaultPageSize > 0 {
			srv.pageSize = params.Config.Catalog.DefaultPageSize
		}
		if params.Config.Catalog.DefaultRecentCount > 0 {
			srv.recentCount = params.Config.Catalog.DefaultRecentCount
		}
	}

	return srv
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// ListProducts returns one page of products matching filter. A zero page size
// or page number falls back to the defaults.
func (srv *catalogService) ListProducts(ctx context.Context, filter query.ProductFilter) ([]*entity.ProductSummary, error) {
	if filter.PageSize == 0 {
		filter.PageSize = srv.pageSize
	}
	if filter.PageNumber == 0 {
		filter.PageNumber = 1
	}

	uow := srv.uowFactory.New()
	defer uow.Close()

	page := query.BuildPagination(filter.PageNumber, filter.PageSize)
	products, err := repository.FindWithProjection(ctx, uow.Products(), query.ProductSummaryOf, query.Spec{
		Predicate: query.BuildProductPredicate(filter),
		Related:   query.SummaryRelations,
		Order:     query.BuildProductOrder(filter.SortKey),
		Page:      &page,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns the detail view of one product.
func (srv *catalogService) GetProduct(ctx context.Context, productID int32) (*entity.ProductDetail, error) {
	uow := srv.uowFactory.New()
	defer uow.Close()

	detail, found, err := repository.FindSingle(ctx, uow.Products(),
		query.Eq(entity.ColProductID, productID),
		query.ProductDetailOf,
		query.DetailRelations...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}
	if !found {
		return nil, domainerrors.ErrProductNotFound
	}

	return detail, nil
}

// RecentProducts returns the newest listable products.
func (srv *catalogService) RecentProducts(ctx context.Context, count int) ([]*entity.ProductSummary, error) {
	if count <= 0 {
		count = srv.recentCount
	}

	filter := query.NewProductFilter()
	filter.SortKey = query.SortDateDesc
	filter.PageSize = count

	return srv.ListProducts(ctx, filter)
}

// ListCategories returns every product category.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.CategoryOption, error) {
	uow := srv.uowFactory.New()
	defer uow.Close()

	categories, err := repository.FindProjected(ctx, uow.Categories(), query.All(), query.CategoryOptionOf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// ListSubcategories returns the subcategories of one category.
func (srv *catalogService) ListSubcategories(ctx context.Context, categoryID int32) ([]*entity.SubcategoryOption, error) {
	uow := srv.uowFactory.New()
	defer uow.Close()

	subcategories, err := repository.FindProjected(ctx, uow.Subcategories(),
		query.Eq(entity.ColProductCategoryID, categoryID),
		query.SubcategoryOptionOf,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories")
	}

	return subcategories, nil
}

// ListColors returns the distinct product colors in alphabetical order.
func (srv *catalogService) ListColors(ctx context.Context, categoryID, subcategoryID *int32) ([]string, error) {
	uow := srv.uowFactory.New()
	defer uow.Close()

	colors, err := repository.FindDistinct[string](ctx, uow.Products(), query.ColorPredicate(categoryID, subcategoryID), entity.ColColor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list colors")
	}

	return colors, nil
}
