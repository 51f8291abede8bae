// Package dbtest opens throwaway SQLite databases with the storefront schema
// for tests that need a real store.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/postgres"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database stored in a temporary directory of t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "storefront.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))

	return db
}

// Catalog holds the ids of the rows created by SeedCatalog.
type Catalog struct {
	BikesID          int32
	ClothingID       int32
	RoadSubID        int32
	MountainSubID    int32
	JerseySubID      int32
	RoadRedID        int32
	RoadBlackID      int32
	MountainSilverID int32
	JerseyID         int32
	UnlistedID       int32
	StateID          int32
	AddressTypeID    int32
	LargePhoto       []byte
	Description      string
}

// SeedCatalog inserts a small catalog:
//
//	Bikes/Road:      Road-150 Red (list 100, cost 60, photo, description), Road-250 Black (list 80, cost 40)
//	Bikes/Mountain:  Mountain-100 Silver (list 120, cost 70)
//	Clothing/Jersey: Jersey Yellow (list 20, cost 10)
//	Unlisted product without subcategory (cost 5)
//
// plus one state province and one address type.
func SeedCatalog(t *testing.T, db *gorm.DB) Catalog {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Catalog{LargePhoto: []byte{0x89, 0x50, 0x4e, 0x47}, Description: "Lightweight road frame"}

	bikes := &entity.ProductCategory{Name: "Bikes"}
	clothing := &entity.ProductCategory{Name: "Clothing"}
	require.NoError(t, db.Create(bikes).Error)
	require.NoError(t, db.Create(clothing).Error)
	c.BikesID, c.ClothingID = bikes.ID, clothing.ID

	road := &entity.ProductSubcategory{ProductCategoryID: bikes.ID, Name: "Road Bikes"}
	mountain := &entity.ProductSubcategory{ProductCategoryID: bikes.ID, Name: "Mountain Bikes"}
	jerseys := &entity.ProductSubcategory{ProductCategoryID: clothing.ID, Name: "Jerseys"}
	for _, sub := range []*entity.ProductSubcategory{road, mountain, jerseys} {
		require.NoError(t, db.Omit(clause.Associations).Create(sub).Error)
	}
	c.RoadSubID, c.MountainSubID, c.JerseySubID = road.ID, mountain.ID, jerseys.ID

	description := &entity.ProductDescription{Description: c.Description}
	require.NoError(t, db.Create(description).Error)
	model := &entity.ProductModel{Name: "Road-150"}
	require.NoError(t, db.Omit(clause.Associations).Create(model).Error)
	require.NoError(t, db.Omit(clause.Associations).Create(&entity.ProductModelProductDescriptionCulture{
		ProductModelID:       model.ID,
		ProductDescriptionID: description.ID,
		CultureID:            "en",
	}).Error)

	newProduct := func(name string, color *string, sub *int32, model *int32, list, cost int64, created time.Time) *entity.Product {
		p := &entity.Product{
			Name:                 name,
			ProductNumber:        uuid.NewString()[:8],
			Color:                color,
			ListPrice:            decimal.NewFromInt(list),
			StandardCost:         decimal.NewFromInt(cost),
			ProductSubcategoryID: sub,
			ProductModelID:       model,
			CreatedAt:            created,
		}
		require.NoError(t, db.Omit(clause.Associations).Create(p).Error)

		return p
	}

	red, black, silver, yellow := ptr("Red"), ptr("Black"), ptr("Silver"), ptr("Yellow")
	roadRed := newProduct("Road-150 Red", red, &road.ID, &model.ID, 100, 60, base.Add(4*time.Hour))
	roadBlack := newProduct("Road-250 Black", black, &road.ID, nil, 80, 40, base.Add(3*time.Hour))
	mountainSilver := newProduct("Mountain-100 Silver", silver, &mountain.ID, nil, 120, 70, base.Add(2*time.Hour))
	jersey := newProduct("Jersey Yellow", yellow, &jerseys.ID, nil, 20, 10, base.Add(1*time.Hour))
	unlisted := newProduct("Chain Lube", nil, nil, nil, 8, 5, base.Add(5*time.Hour))
	c.RoadRedID, c.RoadBlackID, c.MountainSilverID, c.JerseyID, c.UnlistedID =
		roadRed.ID, roadBlack.ID, mountainSilver.ID, jersey.ID, unlisted.ID

	photo := &entity.ProductPhoto{LargePhoto: c.LargePhoto}
	require.NoError(t, db.Create(photo).Error)
	require.NoError(t, db.Omit(clause.Associations).Create(&entity.ProductProductPhoto{
		ProductID:      roadRed.ID,
		ProductPhotoID: photo.ID,
		Primary:        true,
	}).Error)

	state := &entity.StateProvince{StateProvinceCode: "WA", CountryRegionCode: "US", Name: "Washington"}
	require.NoError(t, db.Create(state).Error)
	addressType := &entity.AddressType{Name: "Home"}
	require.NoError(t, db.Create(addressType).Error)
	c.StateID, c.AddressTypeID = state.ID, addressType.ID

	return c
}

func ptr[T any](v T) *T {
	return &v
}
