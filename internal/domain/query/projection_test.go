package query

import (
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSummaryOf_FirstLoadedPhoto(t *testing.T) {
	color := "Red"
	product := &entity.Product{
		ID:           7,
		Name:         "Road-150",
		Color:        &color,
		ListPrice:    decimal.RequireFromString("1431.50"),
		StandardCost: decimal.RequireFromString("782.99"),
		ProductProductPhotos: []entity.ProductProductPhoto{
			{ProductPhotoID: 1},
			{ProductPhotoID: 2, ProductPhoto: &entity.ProductPhoto{LargePhoto: []byte("second")}},
			{ProductPhotoID: 3, ProductPhoto: &entity.ProductPhoto{LargePhoto: []byte("third")}},
		},
	}

	summary := ProductSummaryOf(product)

	assert.Equal(t, int32(7), summary.ProductID)
	assert.Equal(t, "Road-150", summary.Name)
	assert.True(t, summary.ListPrice.Equal(product.ListPrice))
	assert.True(t, summary.StandardCost.Equal(product.StandardCost))
	assert.Equal(t, &color, summary.Color)
	assert.Equal(t, []byte("second"), summary.LargePhoto)
}

func TestProductDetailOf(t *testing.T) {
	subcategoryID := int32(2)
	class := "H"

	t.Run("with relations", func(t *testing.T) {
		product := &entity.Product{
			ID:                   1,
			Class:                &class,
			ProductSubcategoryID: &subcategoryID,
			ProductSubcategory:   &entity.ProductSubcategory{ID: 2, ProductCategoryID: 9},
			ProductModel: &entity.ProductModel{
				ProductModelProductDescriptionCultures: []entity.ProductModelProductDescriptionCulture{
					{CultureID: "ar"},
					{CultureID: "en", ProductDescription: &entity.ProductDescription{Description: "Fast"}},
				},
			},
		}

		detail := ProductDetailOf(product)

		require.NotNil(t, detail.ProductCategoryID)
		assert.Equal(t, int32(9), *detail.ProductCategoryID)
		assert.Equal(t, &subcategoryID, detail.ProductSubcategoryID)
		assert.Equal(t, &class, detail.Class)
		require.NotNil(t, detail.Description)
		assert.Equal(t, "Fast", *detail.Description)
	})

	t.Run("without relations", func(t *testing.T) {
		detail := ProductDetailOf(&entity.Product{ID: 1})

		assert.Nil(t, detail.ProductCategoryID)
		assert.Nil(t, detail.Description)
		assert.Nil(t, detail.LargePhoto)
	})
}

func TestCartLineOf(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	line := CartLineOf(&entity.ShoppingCartItem{
		ID:           4,
		ProductID:    11,
		Quantity:     3,
		DateCreated:  created,
		ModifiedDate: created,
		Product: &entity.Product{
			ID:        11,
			Name:      "Jersey",
			ListPrice: decimal.RequireFromString("19.99"),
		},
	})

	assert.Equal(t, int32(4), line.CartItemID)
	assert.Equal(t, "Jersey", line.ProductName)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.TotalPrice.Equal(decimal.RequireFromString("59.97")), line.TotalPrice.String())
	assert.Equal(t, created, line.DateCreated)
}

func TestCartLineOf_WithoutProductTotalsZero(t *testing.T) {
	line := CartLineOf(&entity.ShoppingCartItem{ID: 1, ProductID: 2, Quantity: 5})

	assert.Empty(t, line.ProductName)
	assert.True(t, line.TotalPrice.IsZero())
}

func TestOptionProjections(t *testing.T) {
	assert.Equal(t, &entity.CategoryOption{ID: 1, Name: "Bikes"}, CategoryOptionOf(&entity.ProductCategory{ID: 1, Name: "Bikes"}))
	assert.Equal(t,
		&entity.SubcategoryOption{ID: 2, ProductCategoryID: 1, Name: "Road"},
		SubcategoryOptionOf(&entity.ProductSubcategory{ID: 2, ProductCategoryID: 1, Name: "Road"}),
	)
	assert.Equal(t, &entity.StateOption{StateProvinceID: 3, Name: "Ohio"}, StateOptionOf(&entity.StateProvince{ID: 3, Name: "Ohio"}))
	assert.Equal(t, &entity.AddressTypeOption{AddressTypeID: 4, Name: "Home"}, AddressTypeOptionOf(&entity.AddressType{ID: 4, Name: "Home"}))
}
