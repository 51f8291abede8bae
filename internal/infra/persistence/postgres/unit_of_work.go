// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// stagedRow is an insertion waiting for the next flush.
type stagedRow struct {
	table string
	value any
}

// unitOfWork implements the domain's UnitOfWork interface using GORM.
// It holds at most one open transaction (*gorm.DB in GORM) and the rows staged
// for insertion on it.
type unitOfWork struct {
	db      *gorm.DB
	primary bool
	tx      *gorm.DB
	staged  []stagedRow
	closed  bool

	products                *gormStore[entity.Product]
	categories              *gormStore[entity.ProductCategory]
	subcategories           *gormStore[entity.ProductSubcategory]
	people                  *gormStore[entity.Person]
	credentials             *gormStore[entity.Credential]
	emailAddresses          *gormStore[entity.EmailAddress]
	businessEntities        *gormStore[entity.BusinessEntity]
	addresses               *gormStore[entity.Address]
	businessEntityAddresses *gormStore[entity.BusinessEntityAddress]
	stateProvinces          *gormStore[entity.StateProvince]
	addressTypes            *gormStore[entity.AddressType]
	cartItems               *gormStore[entity.ShoppingCartItem]
}

// gormUnitOfWorkFactory implements the domain's UnitOfWorkFactory interface.
type gormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewUnitOfWorkFactory is the constructor for gormUnitOfWorkFactory.
// This function will be used as an Fx provider.
func NewUnitOfWorkFactory(db *gorm.DB) repository.UnitOfWorkFactory {
	return &gormUnitOfWorkFactory{db: db}
}

func (f *gormUnitOfWorkFactory) New() repository.UnitOfWork {
	return newUnitOfWork(f.db, false)
}

func (f *gormUnitOfWorkFactory) NewPrimary() repository.UnitOfWork {
	return newUnitOfWork(f.db, true)
}

func newUnitOfWork(db *gorm.DB, primary bool) *unitOfWork {
	uow := &unitOfWork{db: db, primary: primary}

	uow.products = newStore[entity.Product](uow, entity.TableProducts)
	uow.categories = newStore[entity.ProductCategory](uow, entity.TableProductCategories)
	uow.subcategories = newStore[entity.ProductSubcategory](uow, entity.TableProductSubcategories)
	uow.people = newStore[entity.Person](uow, entity.TablePeople)
	uow.credentials = newStore[entity.Credential](uow, entity.TablePasswords)
	uow.emailAddresses = newStore[entity.EmailAddress](uow, entity.TableEmailAddresses)
	uow.businessEntities = newStore[entity.BusinessEntity](uow, entity.TableBusinessEntities)
	uow.addresses = newStore[entity.Address](uow, entity.TableAddresses)
	uow.businessEntityAddresses = newStore[entity.BusinessEntityAddress](uow, entity.TableBusinessEntityAddresses)
	uow.stateProvinces = newStore[entity.StateProvince](uow, entity.TableStateProvinces)
	uow.addressTypes = newStore[entity.AddressType](uow, entity.TableAddressTypes)
	uow.cartItems = newStore[entity.ShoppingCartItem](uow, entity.TableShoppingCartItems)

	return uow
}

// conn returns the session store calls run on: the open transaction when
// there is one, otherwise the pool (pinned to the primary if requested).
func (u *unitOfWork) conn(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}

	db := u.db.WithContext(ctx)
	if u.primary {
		db = db.Clauses(dbresolver.Write)
	}

	return db
}

func (u *unitOfWork) stage(table string, value any) {
	u.staged = append(u.staged, stagedRow{table: table, value: value})
}

func (u *unitOfWork) BeginTransaction(ctx context.Context) error {
	if u.closed {
		return domainerrors.ErrUnitOfWorkClosed
	}
	if u.tx != nil {
		return domainerrors.ErrTransactionInProgress
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return domainerrors.NewDatabaseExecuteError(tx.Error, "failed to begin transaction")
	}
	u.tx = tx

	return nil
}

func (u *unitOfWork) SaveChanges(ctx context.Context) error {
	if u.closed {
		return domainerrors.ErrUnitOfWorkClosed
	}

	staged := u.staged
	u.staged = nil

	// On failure the rejected row is dropped and the rows after it stay staged.
	for i, row := range staged {
		if err := u.conn(ctx).Omit(clause.Associations).Create(row.value).Error; err != nil {
			u.staged = staged[i+1:]

			return translateError(err, fmt.Sprintf("failed to insert %s row", row.table))
		}
	}

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.SaveChanges(ctx); err != nil {
		return err
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to commit transaction")
	}

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	u.staged = nil
	if u.tx == nil {
		return nil
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to roll back transaction")
	}

	return nil
}

func (u *unitOfWork) InTransaction() bool {
	return u.tx != nil
}

// Execute runs the given function within a single database transaction.
func (u *unitOfWork) Execute(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := u.BeginTransaction(ctx); err != nil {
		return err
	}

	// A panic inside fn still rolls the transaction back before propagating.
	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(u); err != nil {
		if rbErr := u.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	return u.Commit(ctx)
}

func (u *unitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true

	return u.Rollback(context.Background())
}

func (u *unitOfWork) Products() repository.Store[entity.Product] { return u.products }

func (u *unitOfWork) Categories() repository.Store[entity.ProductCategory] { return u.categories }

func (u *unitOfWork) Subcategories() repository.Store[entity.ProductSubcategory] {
	return u.subcategories
}

func (u *unitOfWork) People() repository.Store[entity.Person] { return u.people }

func (u *unitOfWork) Credentials() repository.Store[entity.Credential] { return u.credentials }

func (u *unitOfWork) EmailAddresses() repository.Store[entity.EmailAddress] {
	return u.emailAddresses
}

func (u *unitOfWork) BusinessEntities() repository.Store[entity.BusinessEntity] {
	return u.businessEntities
}

func (u *unitOfWork) Addresses() repository.Store[entity.Address] { return u.addresses }

func (u *unitOfWork) BusinessEntityAddresses() repository.Store[entity.BusinessEntityAddress] {
	return u.businessEntityAddresses
}

func (u *unitOfWork) StateProvinces() repository.Store[entity.StateProvince] {
	return u.stateProvinces
}

func (u *unitOfWork) AddressTypes() repository.Store[entity.AddressType] { return u.addressTypes }

func (u *unitOfWork) CartItems() repository.Store[entity.ShoppingCartItem] { return u.cartItems }
