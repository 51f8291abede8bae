package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartItemInput names a product and a quantity delta.
type CartItemInput struct {
	BusinessEntityID int32
	ProductID        int32
	Quantity         int
}

// CartUsecase defines the shopping cart operations of a signed-in customer.
type CartUsecase interface {
	// AddItem inserts the product or increases its quantity.
	AddItem(ctx context.Context, input *CartItemInput) error

	// RemoveItem decreases the quantity, deleting the row when it reaches zero.
	RemoveItem(ctx context.Context, input *CartItemInput) error

	// Summary returns all lines with their totals.
	Summary(ctx context.Context, businessEntityID int32) (*entity.CartSummary, error)
}
