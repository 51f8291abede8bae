package postgres_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/query"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func newBusinessEntity() *entity.BusinessEntity {
	return &entity.BusinessEntity{RowGUID: uuid.New(), ModifiedDate: time.Now().UTC()}
}

func TestStore_FindOneReturnsNilWhenAbsent(t *testing.T) {
	db := dbtest.Open(t)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	row, err := uow.BusinessEntities().FindOne(context.Background(), query.Eq(entity.ColBusinessEntityID, int32(42)))

	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestStore_AddIsStagedUntilSaveChanges(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	added := uow.BusinessEntities().Add(newBusinessEntity())
	assert.Zero(t, added.ID)

	all, err := uow.BusinessEntities().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, uow.SaveChanges(ctx))
	assert.NotZero(t, added.ID)

	found, err := uow.BusinessEntities().FindOne(ctx, query.Eq(entity.ColBusinessEntityID, added.ID))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, added.RowGUID, found.RowGUID)
}

func TestStore_QueryAppliesPredicateOrderAndPage(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	filter := query.NewProductFilter()
	names, err := repository.FindWithProjection(ctx, uow.Products(),
		func(p *entity.Product) string { return p.Name },
		query.Spec{
			Predicate: query.BuildProductPredicate(filter),
			Order:     query.BuildProductOrder(query.SortPriceDesc),
			Page:      &query.Page{Skip: 1, Take: 2},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Road-150 Red", "Road-250 Black"}, names)
}

func TestStore_QueryLoadsRelations(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	detail, found, err := repository.FindSingle(ctx, uow.Products(),
		query.Eq(entity.ColProductID, catalog.RoadRedID),
		query.ProductDetailOf,
		query.DetailRelations...,
	)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, catalog.LargePhoto, detail.LargePhoto)
	require.NotNil(t, detail.Description)
	assert.Equal(t, catalog.Description, *detail.Description)
	require.NotNil(t, detail.ProductCategoryID)
	assert.Equal(t, catalog.BikesID, *detail.ProductCategoryID)
}

func TestStore_FindDistinctSortsInDatabase(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	colors, err := repository.FindDistinct[string](ctx, uow.Products(),
		query.ColorPredicate(&catalog.BikesID, nil),
		entity.ColColor,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "Red", "Silver"}, colors)
}

func TestStore_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	factory := postgres.NewUnitOfWorkFactory(db)

	uow := factory.New()
	defer uow.Close()

	be := uow.BusinessEntities().Add(newBusinessEntity())
	require.NoError(t, uow.SaveChanges(ctx))

	modified := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	be.ModifiedDate = modified
	require.NoError(t, uow.BusinessEntities().Update(ctx, be))

	reloaded, err := factory.New().BusinessEntities().FindOne(ctx, query.Eq(entity.ColBusinessEntityID, be.ID))
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.True(t, modified.Equal(reloaded.ModifiedDate))

	require.NoError(t, uow.BusinessEntities().Remove(ctx, be))
	gone, err := uow.BusinessEntities().FindOne(ctx, query.Eq(entity.ColBusinessEntityID, be.ID))
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStore_UpdateFlushesStagedRowsFirst(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	now := time.Now().UTC()
	item := uow.CartItems().Add(&entity.ShoppingCartItem{
		BusinessEntityID: 7,
		ProductID:        catalog.JerseyID,
		Quantity:         1,
		DateCreated:      now,
		ModifiedDate:     now,
	})
	other := uow.BusinessEntities().Add(newBusinessEntity())
	require.NoError(t, uow.SaveChanges(ctx))

	uow.CartItems().Add(&entity.ShoppingCartItem{
		BusinessEntityID: 7,
		ProductID:        catalog.RoadRedID,
		Quantity:         2,
		DateCreated:      now,
		ModifiedDate:     now,
	})
	other.ModifiedDate = now.Add(time.Hour)
	require.NoError(t, uow.BusinessEntities().Update(ctx, other))

	items, err := uow.CartItems().Find(ctx, query.Eq(entity.ColBusinessEntityID, int32(7)))
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NotZero(t, item.ID)
}

func TestStore_DuplicateInsertIsDuplicateRow(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	now := time.Now().UTC()
	for range 2 {
		uow.CartItems().Add(&entity.ShoppingCartItem{
			BusinessEntityID: 9,
			ProductID:        catalog.JerseyID,
			Quantity:         1,
			DateCreated:      now,
			ModifiedDate:     now,
		})
	}

	err := uow.SaveChanges(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRow)

	dbErr, ok := err.(*domainerrors.DatabaseExecuteError)
	require.True(t, ok)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", dbErr.ErrorCode())
}

func TestStore_OrderByQualifiedColumn(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, db)
	uow := postgres.NewUnitOfWorkFactory(db).New()
	defer uow.Close()

	subs, err := uow.Subcategories().Query(ctx, query.Spec{
		Predicate: query.Eq(entity.ColProductCategoryID, catalog.BikesID),
		Related:   []string{"ProductCategory"},
		Order: []clause.OrderByColumn{{
			Column: clause.Column{Table: entity.TableProductSubcategories, Name: entity.ColName},
		}},
	})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Mountain Bikes", subs[0].Name)
	require.NotNil(t, subs[0].ProductCategory)
	assert.Equal(t, "Bikes", subs[0].ProductCategory.Name)
}
