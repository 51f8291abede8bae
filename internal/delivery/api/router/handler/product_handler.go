package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/query"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// SearchProductsRequest is the body of a catalog search.
type SearchProductsRequest struct {
	CategoryID     *int32           `json:"categoryId"`
	SubcategoryID  *int32           `json:"subcategoryId"`
	MinPrice       *decimal.Decimal `json:"minPrice"`
	MaxPrice       *decimal.Decimal `json:"maxPrice"`
	SelectedColors []string         `json:"selectedColors" validate:"omitempty,dive,required"`
	SortBy         string           `json:"sortBy"`
	SearchText     string           `json:"searchText" validate:"max=50"`
	PageSize       int              `json:"pageSize" validate:"gte=0,lte=100"`
	PageNumber     int              `json:"pageNumber" validate:"gte=0"`
}

func (r *SearchProductsRequest) filter() query.ProductFilter {
	return query.ProductFilter{
		CategoryID:     r.CategoryID,
		SubcategoryID:  r.SubcategoryID,
		MinPrice:       r.MinPrice,
		MaxPrice:       r.MaxPrice,
		SelectedColors: r.SelectedColors,
		SortKey:        query.SortKey(r.SortBy),
		SearchText:     r.SearchText,
		PageSize:       r.PageSize,
		PageNumber:     r.PageNumber,
	}
}

// SearchProducts lists one page of products matching the filter in the body.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	var req SearchProductsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product filter")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), req.filter())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// RecentProducts lists the newest products. The count query parameter is optional.
func (h *ProductHandler) RecentProducts(c echo.Context) error {
	count := 0
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "count must be a number")
		}
		count = parsed
	}

	products, err := h.catalogUC.RecentProducts(c.Request().Context(), count)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct returns the detail view of one product.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ListCategories returns every category.
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// ListSubcategories returns the subcategories of the category in the path.
func (h *ProductHandler) ListSubcategories(c echo.Context) error {
	categoryID, err := parseID(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	subcategories, err := h.catalogUC.ListSubcategories(c.Request().Context(), categoryID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subcategories)
}

// ListColors returns the distinct colors, optionally narrowed by the
// categoryId and subcategoryId query parameters.
func (h *ProductHandler) ListColors(c echo.Context) error {
	categoryID, err := parseOptionalID(c.QueryParam("categoryId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	subcategoryID, err := parseOptionalID(c.QueryParam("subcategoryId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid subcategory ID")
	}

	colors, err := h.catalogUC.ListColors(c.Request().Context(), categoryID, subcategoryID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, colors)
}
