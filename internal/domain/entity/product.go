package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory is the top level of the catalog tree.
type ProductCategory struct {
	ID   int32  `gorm:"column:product_category_id;primaryKey"`
	Name string `gorm:"column:name;size:50;not null"`
}

// TableName overrides the default table name.
func (ProductCategory) TableName() string { return TableProductCategories }

// ProductSubcategory belongs to exactly one category.
type ProductSubcategory struct {
	ID                int32  `gorm:"column:product_subcategory_id;primaryKey"`
	ProductCategoryID int32  `gorm:"column:product_category_id;not null;index"`
	Name              string `gorm:"column:name;size:50;not null"`

	ProductCategory *ProductCategory
}

// TableName overrides the default table name.
func (ProductSubcategory) TableName() string { return TableProductSubcategories }

// Product is a sellable catalog item.
type Product struct {
	ID                   int32           `gorm:"column:product_id;primaryKey"`
	Name                 string          `gorm:"column:name;size:50;not null"`
	ProductNumber        string          `gorm:"column:product_number;size:25;not null"`
	Color                *string         `gorm:"column:color;size:15"`
	StandardCost         decimal.Decimal `gorm:"column:standard_cost;type:numeric(19,4);not null"`
	ListPrice            decimal.Decimal `gorm:"column:list_price;type:numeric(19,4);not null"`
	Size                 *string         `gorm:"column:size;size:5"`
	Class                *string         `gorm:"column:class;size:2"`
	Style                *string         `gorm:"column:style;size:2"`
	ProductSubcategoryID *int32          `gorm:"column:product_subcategory_id;index"`
	ProductModelID       *int32          `gorm:"column:product_model_id"`
	CreatedAt            time.Time       `gorm:"column:created_at;not null"` // Orders the Date* sort keys.

	// Belongs-to relations must not carry a foreignKey tag: gorm matches it
	// against the referenced table's key column and builds a has-one instead.
	ProductSubcategory   *ProductSubcategory
	ProductModel         *ProductModel
	ProductProductPhotos []ProductProductPhoto `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName overrides the default table name.
func (Product) TableName() string { return TableProducts }

// ProductPhoto holds the image bytes of a product.
type ProductPhoto struct {
	ID                     int32   `gorm:"column:product_photo_id;primaryKey"`
	ThumbNailPhoto         []byte  `gorm:"column:thumbnail_photo"`
	ThumbnailPhotoFileName *string `gorm:"column:thumbnail_photo_file_name;size:50"`
	LargePhoto             []byte  `gorm:"column:large_photo"`
	LargePhotoFileName     *string `gorm:"column:large_photo_file_name;size:50"`
}

// TableName overrides the default table name.
func (ProductPhoto) TableName() string { return TableProductPhotos }

// ProductProductPhoto joins products and photos.
type ProductProductPhoto struct {
	ProductID      int32 `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	ProductPhotoID int32 `gorm:"column:product_photo_id;primaryKey;autoIncrement:false"`
	Primary        bool  `gorm:"column:is_primary;not null"`

	ProductPhoto *ProductPhoto
}

// TableName overrides the default table name.
func (ProductProductPhoto) TableName() string { return TableProductProductPhotos }

// ProductModel groups products sharing a description.
type ProductModel struct {
	ID                                     int32                                   `gorm:"column:product_model_id;primaryKey"`
	Name                                   string                                  `gorm:"column:name;size:50;not null"`
	ProductModelProductDescriptionCultures []ProductModelProductDescriptionCulture `gorm:"foreignKey:ProductModelID;references:ID"`
}

// TableName overrides the default table name.
func (ProductModel) TableName() string { return TableProductModels }

// ProductModelProductDescriptionCulture attaches a localized description to a model.
type ProductModelProductDescriptionCulture struct {
	ProductModelID       int32  `gorm:"column:product_model_id;primaryKey;autoIncrement:false"`
	ProductDescriptionID int32  `gorm:"column:product_description_id;primaryKey;autoIncrement:false"`
	CultureID            string `gorm:"column:culture_id;primaryKey;size:6"`

	ProductDescription *ProductDescription
}

// TableName overrides the default table name.
func (ProductModelProductDescriptionCulture) TableName() string {
	return TableProductModelProductDescriptionCultures
}

// ProductDescription is free text shown on the product page.
type ProductDescription struct {
	ID          int32  `gorm:"column:product_description_id;primaryKey"`
	Description string `gorm:"column:description;size:400;not null"`
}

// TableName overrides the default table name.
func (ProductDescription) TableName() string { return TableProductDescriptions }
