package postgres

import (
	"context"
	"fmt"

	"storefront/internal/domain/query"
	"storefront/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore implements repository.Store for any GORM mapped entity.
// Every call runs on the owning unit of work's current session.
type gormStore[T any] struct {
	uow   *unitOfWork
	table string
}

func newStore[T any](uow *unitOfWork, table string) *gormStore[T] {
	return &gormStore[T]{uow: uow, table: table}
}

func withPredicate(pred query.Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pred.IsEmpty() {
			return db
		}

		return db.Clauses(clause.Where{Exprs: pred.Expressions()})
	}
}

func withRelations(related []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, path := range related {
			db = db.Preload(path)
		}

		return db
	}
}

func withOrder(order []clause.OrderByColumn) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(order) == 0 {
			return db
		}

		return db.Clauses(clause.OrderBy{Columns: order})
	}
}

func withPage(page *query.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page == nil {
			return db
		}

		return db.Offset(page.Skip).Limit(page.Take)
	}
}

func (s *gormStore[T]) GetAll(ctx context.Context) ([]*T, error) {
	return s.Find(ctx, query.All())
}

func (s *gormStore[T]) Find(ctx context.Context, pred query.Predicate) ([]*T, error) {
	return s.Query(ctx, query.Spec{Predicate: pred})
}

func (s *gormStore[T]) FindOne(ctx context.Context, pred query.Predicate, related ...string) (*T, error) {
	var rows []*T

	err := s.uow.conn(ctx).
		Scopes(withRelations(related), withPredicate(pred)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find %s row", s.table))
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

func (s *gormStore[T]) Query(ctx context.Context, spec query.Spec) ([]*T, error) {
	var rows []*T

	err := s.uow.conn(ctx).
		Scopes(
			withRelations(spec.Related),
			withPredicate(spec.Predicate),
			withOrder(spec.Order),
			withPage(spec.Page),
		).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to query %s", s.table))
	}

	return rows, nil
}

func (s *gormStore[T]) Distinct(ctx context.Context, pred query.Predicate, column string, dest any) error {
	err := s.uow.conn(ctx).
		Model(new(T)).
		Scopes(withPredicate(pred)).
		Distinct().
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}}).
		Pluck(column, dest).Error
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to read distinct %s.%s", s.table, column))
	}

	return nil
}

func (s *gormStore[T]) Add(entity *T) *T {
	s.uow.stage(s.table, entity)

	return entity
}

func (s *gormStore[T]) Update(ctx context.Context, entity *T) error {
	if err := s.uow.SaveChanges(ctx); err != nil {
		return err
	}

	if err := s.uow.conn(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return translateError(err, fmt.Sprintf("failed to update %s row", s.table))
	}

	return nil
}

func (s *gormStore[T]) Remove(ctx context.Context, entity *T) error {
	if err := s.uow.SaveChanges(ctx); err != nil {
		return err
	}

	if err := s.uow.conn(ctx).Omit(clause.Associations).Delete(entity).Error; err != nil {
		return translateError(err, fmt.Sprintf("failed to delete %s row", s.table))
	}

	return nil
}

var _ repository.Store[struct{}] = (*gormStore[struct{}])(nil)
