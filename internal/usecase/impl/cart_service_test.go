package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const testCustomerID int32 = 77

func cartItem(t *testing.T, db *gorm.DB, productID int32) *entity.ShoppingCartItem {
	t.Helper()

	var items []entity.ShoppingCartItem
	require.NoError(t, db.Where("business_entity_id = ? AND product_id = ?", testCustomerID, productID).Find(&items).Error)
	if len(items) == 0 {
		return nil
	}

	return &items[0]
}

func addItem(t *testing.T, f serviceFixtures, productID int32, quantity int) {
	t.Helper()

	require.NoError(t, f.carts.AddItem(context.Background(), &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        productID,
		Quantity:         quantity,
	}))
}

func TestCartService_AddItem_InsertsThenIncrements(t *testing.T) {
	f := createTestServices(t)
	expectEvent(f, constants.EventCartUpdated)
	created := f.clock.Now()

	addItem(t, f, f.catalog.JerseyID, 2)

	item := cartItem(t, f.db, f.catalog.JerseyID)
	require.NotNil(t, item)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, created.Equal(item.DateCreated))

	f.clock.Advance(time.Minute)
	addItem(t, f, f.catalog.JerseyID, 3)

	item = cartItem(t, f.db, f.catalog.JerseyID)
	require.NotNil(t, item)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, created.Equal(item.DateCreated))
	assert.True(t, f.clock.Now().Equal(item.ModifiedDate))
	assert.Equal(t, int64(1), countRows(t, f.db, &entity.ShoppingCartItem{}))
}

func TestCartService_AddItem_Validation(t *testing.T) {
	f := createTestServices(t)

	for _, quantity := range []int{0, -1} {
		err := f.carts.AddItem(context.Background(), &usecase.CartItemInput{
			BusinessEntityID: testCustomerID,
			ProductID:        f.catalog.JerseyID,
			Quantity:         quantity,
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}

	assert.Zero(t, countRows(t, f.db, &entity.ShoppingCartItem{}))
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	f := createTestServices(t)

	err := f.carts.AddItem(context.Background(), &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        9999,
		Quantity:         1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	var txErr *domainerrors.TransactionError
	assert.False(t, errors.As(err, &txErr))
}

func TestCartService_AddItem_RetriesLostInsertRace(t *testing.T) {
	f := createTestServices(t)
	expectEvent(f, constants.EventCartUpdated)
	attempts := failInserts(t, f.db, entity.TableShoppingCartItems, gorm.ErrDuplicatedKey, 1)

	addItem(t, f, f.catalog.JerseyID, 1)

	assert.Equal(t, 2, *attempts)
	item := cartItem(t, f.db, f.catalog.JerseyID)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddItem_GivesUpAfterMaxAttempts(t *testing.T) {
	f := createTestServices(t)
	attempts := failInserts(t, f.db, entity.TableShoppingCartItems, gorm.ErrDuplicatedKey, -1)

	err := f.carts.AddItem(context.Background(), &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        f.catalog.JerseyID,
		Quantity:         1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrCartUpdateFailed)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRow)
	assert.Equal(t, 3, *attempts)
	assert.Nil(t, cartItem(t, f.db, f.catalog.JerseyID))
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	f := createTestServices(t)
	expectEvent(f, constants.EventCartUpdated)
	addItem(t, f, f.catalog.JerseyID, 5)

	require.NoError(t, f.carts.RemoveItem(ctx, &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        f.catalog.JerseyID,
		Quantity:         2,
	}))
	item := cartItem(t, f.db, f.catalog.JerseyID)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)

	require.NoError(t, f.carts.RemoveItem(ctx, &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        f.catalog.JerseyID,
		Quantity:         10,
	}))
	assert.Nil(t, cartItem(t, f.db, f.catalog.JerseyID))
}

func TestCartService_RemoveItem_NotInCart(t *testing.T) {
	f := createTestServices(t)

	err := f.carts.RemoveItem(context.Background(), &usecase.CartItemInput{
		BusinessEntityID: testCustomerID,
		ProductID:        f.catalog.JerseyID,
		Quantity:         1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_Summary(t *testing.T) {
	f := createTestServices(t)
	expectEvent(f, constants.EventCartUpdated)
	addItem(t, f, f.catalog.RoadRedID, 1)
	addItem(t, f, f.catalog.JerseyID, 3)

	summary, err := f.carts.Summary(context.Background(), testCustomerID)

	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, "Road-150 Red", summary.Items[0].ProductName)
	assert.Equal(t, f.catalog.LargePhoto, summary.Items[0].LargePhoto)
	assert.True(t, summary.Items[1].TotalPrice.Equal(decimal.NewFromInt(60)))
	assert.True(t, summary.Details.TotalPrice.Equal(decimal.NewFromInt(160)), summary.Details.TotalPrice.String())
	assert.Equal(t, 4, summary.Details.ItemCount)
}

func TestCartService_Summary_TotalsFollowListPrice(t *testing.T) {
	f := createTestServices(t)
	expectEvent(f, constants.EventCartUpdated)

	newProduct := func(name string, list int64) int32 {
		p := &entity.Product{
			Name:          name,
			ProductNumber: name,
			ListPrice:     decimal.NewFromInt(list),
			StandardCost:  decimal.NewFromInt(1),
			CreatedAt:     f.clock.Now(),
		}
		require.NoError(t, f.db.Omit(clause.Associations).Create(p).Error)

		return p.ID
	}
	socks := newProduct("Socks", 10)
	hat := newProduct("Cap", 5)
	addItem(t, f, socks, 2)
	addItem(t, f, hat, 3)

	summary, err := f.carts.Summary(context.Background(), testCustomerID)

	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	for i, want := range []struct {
		productID int32
		name      string
		total     int64
	}{
		{socks, "Socks", 20},
		{hat, "Cap", 15},
	} {
		line := summary.Items[i]
		assert.NotEqual(t, line.CartItemID, line.ProductID)
		assert.Equal(t, want.productID, line.ProductID)
		assert.Equal(t, want.name, line.ProductName)
		assert.True(t, line.TotalPrice.Equal(decimal.NewFromInt(want.total)), line.TotalPrice.String())
	}
	assert.True(t, summary.Details.TotalPrice.Equal(decimal.NewFromInt(35)), summary.Details.TotalPrice.String())
	assert.Equal(t, 5, summary.Details.ItemCount)
}

func TestCartService_Summary_EmptyCart(t *testing.T) {
	f := createTestServices(t)

	_, err := f.carts.Summary(context.Background(), testCustomerID)

	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}
