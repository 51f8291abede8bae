package entity

// Table names of the storefront schema.
const (
	TableBusinessEntities                       = "business_entities"
	TablePeople                                 = "people"
	TableEmailAddresses                         = "email_addresses"
	TablePasswords                              = "passwords"
	TableAddresses                              = "addresses"
	TableBusinessEntityAddresses                = "business_entity_addresses"
	TableStateProvinces                         = "state_provinces"
	TableAddressTypes                           = "address_types"
	TableProductCategories                      = "product_categories"
	TableProductSubcategories                   = "product_subcategories"
	TableProducts                               = "products"
	TableProductPhotos                          = "product_photos"
	TableProductProductPhotos                   = "product_product_photos"
	TableProductModels                          = "product_models"
	TableProductModelProductDescriptionCultures = "product_model_product_description_cultures"
	TableProductDescriptions                    = "product_descriptions"
	TableShoppingCartItems                      = "shopping_cart_items"
)

// All returns one zero value of every persisted entity, in dependency order.
func All() []any {
	return []any{
		&BusinessEntity{},
		&Person{},
		&EmailAddress{},
		&Credential{},
		&StateProvince{},
		&AddressType{},
		&Address{},
		&BusinessEntityAddress{},
		&ProductCategory{},
		&ProductSubcategory{},
		&ProductDescription{},
		&ProductModel{},
		&ProductModelProductDescriptionCulture{},
		&ProductPhoto{},
		&Product{},
		&ProductProductPhoto{},
		&ShoppingCartItem{},
	}
}

// Column names referenced by predicates and orderings.
const (
	ColBusinessEntityID     = "business_entity_id"
	ColEmailAddress         = "email_address"
	ColAddressID            = "address_id"
	ColProductID            = "product_id"
	ColProductCategoryID    = "product_category_id"
	ColProductSubcategoryID = "product_subcategory_id"
	ColName                 = "name"
	ColColor                = "color"
	ColStandardCost         = "standard_cost"
	ColCreatedAt            = "created_at"
	ColShoppingCartItemID   = "shopping_cart_item_id"
)
