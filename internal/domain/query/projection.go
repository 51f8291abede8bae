package query

import (
	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Relation paths each projection needs loaded.
var (
	SummaryRelations = []string{
		"ProductProductPhotos.ProductPhoto",
		"ProductSubcategory.ProductCategory",
	}
	DetailRelations = []string{
		"ProductProductPhotos.ProductPhoto",
		"ProductModel.ProductModelProductDescriptionCultures.ProductDescription",
		"ProductSubcategory.ProductCategory",
	}
	CartLineRelations = []string{
		"Product",
		"Product.ProductProductPhotos.ProductPhoto",
	}
)

// representativePhoto returns the first loaded photo. Which photo comes first
// is up to the store.
func representativePhoto(p *entity.Product) []byte {
	if p == nil {
		return nil
	}

	for _, link := range p.ProductProductPhotos {
		if link.ProductPhoto != nil {
			return link.ProductPhoto.LargePhoto
		}
	}

	return nil
}

func representativeDescription(p *entity.Product) *string {
	if p.ProductModel == nil {
		return nil
	}

	for _, culture := range p.ProductModel.ProductModelProductDescriptionCultures {
		if culture.ProductDescription != nil {
			description := culture.ProductDescription.Description

			return &description
		}
	}

	return nil
}

// ProductSummaryOf projects a product into its listing shape.
func ProductSummaryOf(p *entity.Product) *entity.ProductSummary {
	return &entity.ProductSummary{
		ProductID:    p.ID,
		Name:         p.Name,
		ListPrice:    p.ListPrice,
		StandardCost: p.StandardCost,
		Color:        p.Color,
		LargePhoto:   representativePhoto(p),
	}
}

// ProductDetailOf projects a product into its detail shape.
func ProductDetailOf(p *entity.Product) *entity.ProductDetail {
	detail := &entity.ProductDetail{
		ProductSummary:       *ProductSummaryOf(p),
		Class:                p.Class,
		Style:                p.Style,
		Size:                 p.Size,
		ProductSubcategoryID: p.ProductSubcategoryID,
		Description:          representativeDescription(p),
	}

	if p.ProductSubcategory != nil {
		categoryID := p.ProductSubcategory.ProductCategoryID
		detail.ProductCategoryID = &categoryID
	}

	return detail
}

// CartLineOf projects a cart row. The line total is list price times quantity.
func CartLineOf(item *entity.ShoppingCartItem) *entity.CartLine {
	line := &entity.CartLine{
		CartItemID:   item.ID,
		ProductID:    item.ProductID,
		Quantity:     item.Quantity,
		DateCreated:  item.DateCreated,
		ModifiedDate: item.ModifiedDate,
	}

	if item.Product != nil {
		line.ProductName = item.Product.Name
		line.ListPrice = item.Product.ListPrice
		line.LargePhoto = representativePhoto(item.Product)
	}
	line.TotalPrice = line.ListPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

	return line
}

// CategoryOptionOf projects a category into a navigation entry.
func CategoryOptionOf(c *entity.ProductCategory) *entity.CategoryOption {
	return &entity.CategoryOption{ID: c.ID, Name: c.Name}
}

// SubcategoryOptionOf projects a subcategory into a navigation entry.
func SubcategoryOptionOf(s *entity.ProductSubcategory) *entity.SubcategoryOption {
	return &entity.SubcategoryOption{ID: s.ID, ProductCategoryID: s.ProductCategoryID, Name: s.Name}
}

// StateOptionOf projects a state province into a dropdown entry.
func StateOptionOf(s *entity.StateProvince) *entity.StateOption {
	return &entity.StateOption{StateProvinceID: s.ID, Name: s.Name}
}

// AddressTypeOptionOf projects an address type into a dropdown entry.
func AddressTypeOptionOf(t *entity.AddressType) *entity.AddressTypeOption {
	return &entity.AddressTypeOption{AddressTypeID: t.ID, Name: t.Name}
}
