package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/query"
)

// CatalogUsecase defines the read-only product catalog operations.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, filter query.ProductFilter) ([]*entity.ProductSummary, error)
	GetProduct(ctx context.Context, productID int32) (*entity.ProductDetail, error)
	RecentProducts(ctx context.Context, count int) ([]*entity.ProductSummary, error)
	ListCategories(ctx context.Context) ([]*entity.CategoryOption, error)
	ListSubcategories(ctx context.Context, categoryID int32) ([]*entity.SubcategoryOption, error)
	ListColors(ctx context.Context, categoryID, subcategoryID *int32) ([]string, error)
}
