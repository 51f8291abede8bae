package postgres_test

import (
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/testutil/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

type foreignKey struct {
	Table string `gorm:"column:table"`
	From  string `gorm:"column:from"`
	To    string `gorm:"column:to"`
}

func TestMigrate_ForeignKeysPointAtParents(t *testing.T) {
	db := dbtest.Open(t)

	tests := []struct {
		table string
		want  []foreignKey
	}{
		{entity.TableProductCategories, nil},
		{entity.TableProductSubcategories, []foreignKey{
			{Table: entity.TableProductCategories, From: "product_category_id", To: "product_category_id"},
		}},
		{entity.TableProducts, []foreignKey{
			{Table: entity.TableProductSubcategories, From: "product_subcategory_id", To: "product_subcategory_id"},
			{Table: entity.TableProductModels, From: "product_model_id", To: "product_model_id"},
		}},
		{entity.TableProductProductPhotos, []foreignKey{
			{Table: entity.TableProducts, From: "product_id", To: "product_id"},
			{Table: entity.TableProductPhotos, From: "product_photo_id", To: "product_photo_id"},
		}},
		{entity.TableProductModelProductDescriptionCultures, []foreignKey{
			{Table: entity.TableProductModels, From: "product_model_id", To: "product_model_id"},
			{Table: entity.TableProductDescriptions, From: "product_description_id", To: "product_description_id"},
		}},
		{entity.TableShoppingCartItems, []foreignKey{
			{Table: entity.TableProducts, From: "product_id", To: "product_id"},
		}},
		{entity.TableProductPhotos, nil},
		{entity.TableProductModels, nil},
		{entity.TableProductDescriptions, nil},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			var got []foreignKey
			require.NoError(t, db.Raw("PRAGMA foreign_key_list(" + tt.table + ")").Scan(&got).Error)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEntityRelations_AreBelongsTo(t *testing.T) {
	cache := &sync.Map{}

	tests := []struct {
		model    any
		relation string
		column   string
	}{
		{&entity.ShoppingCartItem{}, "Product", "product_id"},
		{&entity.ProductSubcategory{}, "ProductCategory", "product_category_id"},
		{&entity.Product{}, "ProductSubcategory", "product_subcategory_id"},
		{&entity.Product{}, "ProductModel", "product_model_id"},
		{&entity.ProductProductPhoto{}, "ProductPhoto", "product_photo_id"},
		{&entity.ProductModelProductDescriptionCulture{}, "ProductDescription", "product_description_id"},
	}

	for _, tt := range tests {
		t.Run(tt.relation, func(t *testing.T) {
			s, err := schema.Parse(tt.model, cache, schema.NamingStrategy{})
			require.NoError(t, err)

			rel, ok := s.Relationships.Relations[tt.relation]
			require.True(t, ok)
			assert.Equal(t, schema.BelongsTo, rel.Type)
			require.Len(t, rel.References, 1)
			assert.Equal(t, s.Table, rel.References[0].ForeignKey.Schema.Table)
			assert.Equal(t, tt.column, rel.References[0].ForeignKey.DBName)
		})
	}
}
