package postgres

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"gorm.io/gorm"
)

// Helper functions for constraint error checking. Message patterns cover
// drivers that do not translate errors (PostgreSQL and SQLite).
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint failed") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "foreign key constraint") ||
		strings.Contains(errMsg, "23503") // PostgreSQL foreign_key_violation error code
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null constraint") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "23514") // PostgreSQL check_violation error code
}

// translateError wraps a driver error as a storage fault. Unique violations
// additionally match domainerrors.ErrDuplicateRow.
func translateError(err error, details string) error {
	if err == nil {
		return nil
	}

	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(errors.Join(domainerrors.ErrDuplicateRow, err), details+": duplicate row")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": foreign key violation")
	case isNotNullConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": missing required value")
	case isCheckConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, details+": check constraint violation")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}
