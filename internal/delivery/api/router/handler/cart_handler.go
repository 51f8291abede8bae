package handler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler handles the signed-in customer's shopping cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// CartItemRequest names a product and a quantity. DELETE accepts it as query parameters.
type CartItemRequest struct {
	ProductID int32 `json:"productId" query:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" query:"quantity" validate:"required,gt=0"`
}

// Summary returns the cart lines and totals.
func (h *CartHandler) Summary(c echo.Context) error {
	businessEntityID, ok := middleware.GetBusinessEntityID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	summary, err := h.cartUC.Summary(c.Request().Context(), businessEntityID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// AddItem adds the quantity to the product's cart line.
func (h *CartHandler) AddItem(c echo.Context) error {
	return h.changeItem(c, h.cartUC.AddItem)
}

// RemoveItem takes the quantity off the product's cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	return h.changeItem(c, h.cartUC.RemoveItem)
}

func (h *CartHandler) changeItem(c echo.Context, apply func(ctx context.Context, input *usecase.CartItemInput) error) error {
	businessEntityID, ok := middleware.GetBusinessEntityID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := apply(c.Request().Context(), &usecase.CartItemInput{
		BusinessEntityID: businessEntityID,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
