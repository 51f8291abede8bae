package entity

import "time"

// ShoppingCartItem is one product line in a customer's cart.
// Quantity is always positive while the row exists.
type ShoppingCartItem struct {
	ID               int32     `gorm:"column:shopping_cart_item_id;primaryKey"`
	BusinessEntityID int32     `gorm:"column:business_entity_id;not null;uniqueIndex:idx_cart_owner_product"`
	ProductID        int32     `gorm:"column:product_id;not null;uniqueIndex:idx_cart_owner_product"`
	Quantity         int       `gorm:"column:quantity;not null"`
	DateCreated      time.Time `gorm:"column:date_created;not null"`
	ModifiedDate     time.Time `gorm:"column:modified_date;not null"`

	Product *Product
}

// TableName overrides the default table name.
func (ShoppingCartItem) TableName() string { return TableShoppingCartItems }
