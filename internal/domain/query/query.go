// Package query describes store queries as data: filter predicates, ordering,
// pagination and projections. The persistence layer turns a Spec into SQL.
package query

import (
	"gorm.io/gorm/clause"
)

// Predicate is an ordered conjunction of filter clauses.
// The zero value matches every row.
type Predicate struct {
	exprs []clause.Expression
}

// Where returns a predicate made of the given clauses.
func Where(exprs ...clause.Expression) Predicate {
	return Predicate{}.And(exprs...)
}

// Eq returns a single column equality predicate.
func Eq(column string, value any) Predicate {
	return Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
}

// All matches every row.
func All() Predicate {
	return Predicate{}
}

// And appends clauses to the conjunction. The receiver is left untouched.
func (p Predicate) And(exprs ...clause.Expression) Predicate {
	next := make([]clause.Expression, 0, len(p.exprs)+len(exprs))
	next = append(next, p.exprs...)
	for _, expr := range exprs {
		if expr != nil {
			next = append(next, expr)
		}
	}

	return Predicate{exprs: next}
}

// Expressions returns the clauses in the order they were added.
func (p Predicate) Expressions() []clause.Expression {
	return p.exprs
}

// IsEmpty reports whether the predicate matches every row.
func (p Predicate) IsEmpty() bool {
	return len(p.exprs) == 0
}

// Page selects a window of rows.
type Page struct {
	Skip int
	Take int
}

// Spec is a full store query. Relations are loaded first, then the predicate,
// ordering and page are applied in that order.
type Spec struct {
	Predicate Predicate
	Related   []string
	Order     []clause.OrderByColumn
	Page      *Page
}

// Projection maps a loaded entity to an output shape.
type Projection[T, R any] func(*T) R

// Identity returns the entity itself.
func Identity[T any]() Projection[T, *T] {
	return func(v *T) *T { return v }
}
