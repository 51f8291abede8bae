package query

import (
	"strings"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// DefaultPageSize is used when a product filter does not set one.
const DefaultPageSize = 12

// SortKey selects the product ordering.
type SortKey string

// Supported sort keys. Any other value leaves the order unspecified.
const (
	SortPriceAsc  SortKey = "PriceAsc"
	SortPriceDesc SortKey = "PriceDesc"
	SortNameAsc   SortKey = "NameAsc"
	SortNameDesc  SortKey = "NameDesc"
	SortDateAsc   SortKey = "DateAsc"
	SortDateDesc  SortKey = "DateDesc"
)

// ProductFilter is the structured catalog search request.
type ProductFilter struct {
	CategoryID     *int32           `json:"categoryId"`
	SubcategoryID  *int32           `json:"subcategoryId"`
	MinPrice       *decimal.Decimal `json:"minPrice"`
	MaxPrice       *decimal.Decimal `json:"maxPrice"`
	SelectedColors []string         `json:"selectedColors"`
	SortKey        SortKey          `json:"sortBy"`
	SearchText     string           `json:"searchText"`
	PageSize       int              `json:"pageSize"`
	PageNumber     int              `json:"pageNumber"`
}

// NewProductFilter returns a filter with the default page.
func NewProductFilter() ProductFilter {
	return ProductFilter{
		PageSize:   DefaultPageSize,
		PageNumber: 1,
	}
}

func productColumn(name string) clause.Column {
	return clause.Column{Table: entity.TableProducts, Name: name}
}

// inCategory matches products whose subcategory belongs to categoryID.
func inCategory(categoryID int32) clause.Expression {
	return clause.Expr{
		SQL: "? IN (SELECT ? FROM ? WHERE ? = ?)",
		Vars: []any{
			productColumn(entity.ColProductSubcategoryID),
			clause.Column{Name: entity.ColProductSubcategoryID},
			clause.Table{Name: entity.TableProductSubcategories},
			clause.Column{Name: entity.ColProductCategoryID},
			categoryID,
		},
	}
}

func inSubcategory(subcategoryID int32) clause.Expression {
	return clause.Eq{Column: productColumn(entity.ColProductSubcategoryID), Value: subcategoryID}
}

// BuildProductPredicate turns a filter into the catalog predicate.
// Clauses are appended in a fixed order; a subcategory is only honoured
// together with a category.
func BuildProductPredicate(filter ProductFilter) Predicate {
	pred := Where(
		clause.Neq{Column: productColumn(entity.ColProductSubcategoryID), Value: nil},
		clause.Gt{Column: productColumn(entity.ColStandardCost), Value: decimal.Zero},
	)

	if filter.CategoryID != nil {
		pred = pred.And(inCategory(*filter.CategoryID))

		if filter.SubcategoryID != nil {
			pred = pred.And(inSubcategory(*filter.SubcategoryID))
		}
	}

	if filter.MinPrice != nil {
		pred = pred.And(clause.Gte{Column: productColumn(entity.ColStandardCost), Value: *filter.MinPrice})
	}

	if filter.MaxPrice != nil {
		pred = pred.And(clause.Lte{Column: productColumn(entity.ColStandardCost), Value: *filter.MaxPrice})
	}

	if len(filter.SelectedColors) > 0 {
		values := make([]any, len(filter.SelectedColors))
		for i, color := range filter.SelectedColors {
			values[i] = color
		}
		pred = pred.And(clause.IN{Column: productColumn(entity.ColColor), Values: values})
	}

	if text := strings.TrimSpace(filter.SearchText); text != "" {
		pred = pred.And(clause.Like{Column: productColumn(entity.ColName), Value: "%" + text + "%"})
	}

	return pred
}

// BuildProductOrder maps a sort key to an ordering. Unknown keys yield nil.
func BuildProductOrder(key SortKey) []clause.OrderByColumn {
	var (
		column string
		desc   bool
	)

	switch key {
	case SortPriceAsc:
		column = entity.ColStandardCost
	case SortPriceDesc:
		column, desc = entity.ColStandardCost, true
	case SortNameAsc:
		column = entity.ColName
	case SortNameDesc:
		column, desc = entity.ColName, true
	case SortDateAsc:
		column = entity.ColCreatedAt
	case SortDateDesc:
		column, desc = entity.ColCreatedAt, true
	default:
		return nil
	}

	return []clause.OrderByColumn{{Column: productColumn(column), Desc: desc}}
}

// BuildPagination converts a 1-based page number into a row window.
// Values are not validated.
func BuildPagination(pageNumber, pageSize int) Page {
	return Page{
		Skip: (pageNumber - 1) * pageSize,
		Take: pageSize,
	}
}

// ColorPredicate matches products with a non-empty color, optionally narrowed
// to a category and, within it, a subcategory. Non-positive ids are ignored.
func ColorPredicate(categoryID, subcategoryID *int32) Predicate {
	pred := Where(
		clause.Neq{Column: productColumn(entity.ColColor), Value: nil},
		clause.Neq{Column: productColumn(entity.ColColor), Value: ""},
	)

	if categoryID != nil && *categoryID > 0 {
		pred = pred.And(inCategory(*categoryID))

		if subcategoryID != nil && *subcategoryID > 0 {
			pred = pred.And(inSubcategory(*subcategoryID))
		}
	}

	return pred
}
