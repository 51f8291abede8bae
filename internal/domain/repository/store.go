// Package repository defines the persistence contracts of the storefront.
// Implementations live in internal/infra/persistence.
package repository

import (
	"context"

	"storefront/internal/domain/query"
)

// Store is the generic data access contract for one entity type.
// Driver failures are returned as *errors.DatabaseExecuteError.
type Store[T any] interface {
	// GetAll returns every row.
	GetAll(ctx context.Context) ([]*T, error)

	// Find returns the rows matching pred.
	Find(ctx context.Context, pred query.Predicate) ([]*T, error)

	// FindOne returns the first row matching pred with the given relation
	// paths loaded, or nil when nothing matches.
	FindOne(ctx context.Context, pred query.Predicate, related ...string) (*T, error)

	// Query runs a full spec: relations, predicate, ordering, then page.
	Query(ctx context.Context, spec query.Spec) ([]*T, error)

	// Distinct scans the distinct values of column among the rows matching
	// pred into dest, a pointer to a slice, in ascending order.
	Distinct(ctx context.Context, pred query.Predicate, column string, dest any) error

	// Add stages entity for insertion at the next SaveChanges or Commit.
	// The returned pointer is entity itself; its generated key is filled on flush.
	Add(entity *T) *T

	// Update writes entity immediately.
	Update(ctx context.Context, entity *T) error

	// Remove deletes entity immediately.
	Remove(ctx context.Context, entity *T) error
}

// FindProjected returns the projection of every row matching pred.
func FindProjected[T, R any](ctx context.Context, store Store[T], pred query.Predicate, proj query.Projection[T, R]) ([]R, error) {
	rows, err := store.Find(ctx, pred)
	if err != nil {
		return nil, err
	}

	return project(rows, proj), nil
}

// FindDistinct returns the distinct values of column among the rows matching
// pred, in ascending order. Deduplication happens in the database.
func FindDistinct[R, T any](ctx context.Context, store Store[T], pred query.Predicate, column string) ([]R, error) {
	var out []R
	if err := store.Distinct(ctx, pred, column, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// FindSingle projects the first row matching pred. The boolean is false when
// no row matched.
func FindSingle[T, R any](ctx context.Context, store Store[T], pred query.Predicate, proj query.Projection[T, R], related ...string) (R, bool, error) {
	var zero R

	row, err := store.FindOne(ctx, pred, related...)
	if err != nil {
		return zero, false, err
	}
	if row == nil {
		return zero, false, nil
	}

	return proj(row), true, nil
}

// FindWithProjection runs spec and projects every returned row.
func FindWithProjection[T, R any](ctx context.Context, store Store[T], proj query.Projection[T, R], spec query.Spec) ([]R, error) {
	rows, err := store.Query(ctx, spec)
	if err != nil {
		return nil, err
	}

	return project(rows, proj), nil
}

func project[T, R any](rows []*T, proj query.Projection[T, R]) []R {
	out := make([]R, len(rows))
	for i, row := range rows {
		out[i] = proj(row)
	}

	return out
}
