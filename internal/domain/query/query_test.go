package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func TestPredicate_AndDoesNotMutateReceiver(t *testing.T) {
	base := Eq("a", 1)
	left := base.And(clause.Eq{Column: clause.Column{Name: "b"}, Value: 2})
	right := base.And(clause.Eq{Column: clause.Column{Name: "c"}, Value: 3})

	assert.Len(t, base.Expressions(), 1)
	assert.Len(t, left.Expressions(), 2)
	assert.Len(t, right.Expressions(), 2)
	assert.Equal(t, clause.Eq{Column: clause.Column{Name: "c"}, Value: 3}, right.Expressions()[1])
}

func TestPredicate_SkipsNilClauses(t *testing.T) {
	pred := Where(nil, clause.Eq{Column: clause.Column{Name: "a"}, Value: 1}, nil)

	assert.Len(t, pred.Expressions(), 1)
	assert.False(t, pred.IsEmpty())
	assert.True(t, All().IsEmpty())
	assert.True(t, Predicate{}.IsEmpty())
}

func TestIdentity(t *testing.T) {
	v := 5
	assert.Same(t, &v, Identity[int]()(&v))
}
