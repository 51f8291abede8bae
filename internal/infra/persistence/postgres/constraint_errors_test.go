package postgres

import (
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantDetails   string
		wantDuplicate bool
	}{
		{
			name:          "translated duplicate key",
			err:           gorm.ErrDuplicatedKey,
			wantDetails:   "insert: duplicate row",
			wantDuplicate: true,
		},
		{
			name:          "postgres unique violation",
			err:           errors.New(`ERROR: duplicate key value violates unique constraint "idx_cart_owner_product" (SQLSTATE 23505)`),
			wantDetails:   "insert: duplicate row",
			wantDuplicate: true,
		},
		{
			name:          "sqlite unique violation",
			err:           errors.New("UNIQUE constraint failed: shopping_cart_items.business_entity_id"),
			wantDetails:   "insert: duplicate row",
			wantDuplicate: true,
		},
		{
			name:        "foreign key violation",
			err:         errors.New(`ERROR: insert or update violates foreign key constraint (SQLSTATE 23503)`),
			wantDetails: "insert: foreign key violation",
		},
		{
			name:        "not null violation",
			err:         errors.New(`ERROR: null value in column "name" (SQLSTATE 23502)`),
			wantDetails: "insert: missing required value",
		},
		{
			name:        "check violation",
			err:         gorm.ErrCheckConstraintViolated,
			wantDetails: "insert: check constraint violation",
		},
		{
			name:        "other driver failure",
			err:         errors.New("connection reset by peer"),
			wantDetails: "insert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(tt.err, "insert")

			var dbErr *domainerrors.DatabaseExecuteError
			require.True(t, errors.As(err, &dbErr))
			assert.Equal(t, tt.wantDetails, dbErr.Details())
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantDuplicate, errors.Is(err, domainerrors.ErrDuplicateRow))
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	assert.NoError(t, translateError(nil, "insert"))
}
