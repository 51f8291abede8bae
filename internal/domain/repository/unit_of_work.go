package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// UnitOfWork owns one database session for a single workflow invocation.
// It is the only component that opens transactions. A UnitOfWork is not safe
// for concurrent use.
type UnitOfWork interface {
	// BeginTransaction opens a transaction. Calling it while one is open
	// returns errors.ErrTransactionInProgress.
	BeginTransaction(ctx context.Context) error

	// Commit flushes staged additions and commits. It is a no-op when no
	// transaction is open.
	Commit(ctx context.Context) error

	// Rollback discards staged additions and rolls back. It is a no-op when
	// no transaction is open.
	Rollback(ctx context.Context) error

	// SaveChanges flushes staged additions in staging order, filling their
	// generated keys, without ending the transaction. When an insert fails the
	// rejected row is dropped and the rows staged after it stay staged.
	SaveChanges(ctx context.Context) error

	// InTransaction reports whether a transaction is open.
	InTransaction() bool

	// Execute runs fn inside a transaction. The transaction is rolled back when
	// fn returns an error or panics, and committed otherwise.
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Close rolls back whatever is still open and releases the unit.
	Close() error

	Products() Store[entity.Product]
	Categories() Store[entity.ProductCategory]
	Subcategories() Store[entity.ProductSubcategory]
	People() Store[entity.Person]
	Credentials() Store[entity.Credential]
	EmailAddresses() Store[entity.EmailAddress]
	BusinessEntities() Store[entity.BusinessEntity]
	Addresses() Store[entity.Address]
	BusinessEntityAddresses() Store[entity.BusinessEntityAddress]
	StateProvinces() Store[entity.StateProvince]
	AddressTypes() Store[entity.AddressType]
	CartItems() Store[entity.ShoppingCartItem]
}

// UnitOfWorkFactory creates one UnitOfWork per workflow.
type UnitOfWorkFactory interface {
	// New returns a unit whose reads outside a transaction may go to replicas.
	New() UnitOfWork

	// NewPrimary returns a unit whose reads always go to the primary.
	NewPrimary() UnitOfWork
}
