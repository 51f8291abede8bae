package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary is the catalog listing shape of a product.
type ProductSummary struct {
	ProductID    int32           `json:"productId"`
	Name         string          `json:"name"`
	ListPrice    decimal.Decimal `json:"listPrice"`
	StandardCost decimal.Decimal `json:"standardCost"`
	Color        *string         `json:"color,omitempty"`
	LargePhoto   []byte          `json:"largePhoto,omitempty"`
}

// ProductDetail is the product page shape of a product.
type ProductDetail struct {
	ProductSummary

	Class                *string `json:"class,omitempty"`
	Style                *string `json:"style,omitempty"`
	Size                 *string `json:"size,omitempty"`
	ProductCategoryID    *int32  `json:"productCategoryId,omitempty"`
	ProductSubcategoryID *int32  `json:"productSubcategoryId,omitempty"`
	Description          *string `json:"description,omitempty"`
}

// CartLine is one projected cart row.
type CartLine struct {
	CartItemID   int32           `json:"cartItemId"`
	ProductID    int32           `json:"productId"`
	ProductName  string          `json:"productName"`
	LargePhoto   []byte          `json:"largePhoto,omitempty"`
	Quantity     int             `json:"quantity"`
	ListPrice    decimal.Decimal `json:"listPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"` // ListPrice * Quantity
	DateCreated  time.Time       `json:"dateCreated"`
	ModifiedDate time.Time       `json:"modifiedDate"`
}

// CartTotals aggregates a cart.
type CartTotals struct {
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
}

// CartSummary is the full cart view returned to the owner.
type CartSummary struct {
	Details CartTotals  `json:"details"`
	Items   []*CartLine `json:"items"`
}

// CategoryOption is a catalog navigation entry.
type CategoryOption struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// SubcategoryOption is a catalog navigation entry under a category.
type SubcategoryOption struct {
	ID                int32  `json:"id"`
	ProductCategoryID int32  `json:"productCategoryId"`
	Name              string `json:"name"`
}

// StateOption is a dropdown entry for address forms.
type StateOption struct {
	StateProvinceID int32  `json:"stateProvinceId"`
	Name            string `json:"name"`
}

// AddressTypeOption is a dropdown entry for address forms.
type AddressTypeOption struct {
	AddressTypeID int32  `json:"addressTypeId"`
	Name          string `json:"name"`
}

// AddressConstants bundles the reference data needed by address forms.
type AddressConstants struct {
	States       []*StateOption       `json:"states"`
	AddressTypes []*AddressTypeOption `json:"addressTypes"`
}
