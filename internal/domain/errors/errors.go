package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"email address is already registered",
		"",
	)

	ErrRegistrationFailed = NewBaseError(
		http.StatusInternalServerError,
		"REGISTRATION_FAILED",
		"failed to register user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"failed to update user",
		"",
	)

	ErrUserDeletionFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_DELETION_FAILED",
		"failed to delete user",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"missing or invalid access token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	// Cart-related errors
	ErrCartNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_NOT_FOUND",
		"shopping cart is empty",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"item not found in cart",
		"",
	)

	ErrCartUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"CART_UPDATE_FAILED",
		"failed to update cart",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Persistence-related errors
	ErrDuplicateRow = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_ROW",
		"row already exists",
		"",
	)

	ErrTransactionInProgress = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_IN_PROGRESS",
		"a transaction is already open on this unit of work",
		"",
	)

	ErrUnitOfWorkClosed = NewBaseError(
		http.StatusInternalServerError,
		"UNIT_OF_WORK_CLOSED",
		"unit of work is closed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)
)

// notFoundErrors pass through workflow failure wrapping unchanged.
var notFoundErrors = []error{
	ErrUserNotFound,
	ErrProductNotFound,
	ErrCartNotFound,
	ErrCartItemNotFound,
	ErrNotFound,
}

// IsNotFound reports whether err is one of the absence errors.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// TransactionError reports a rolled-back workflow. It carries the workflow kind
// (registration, update, deletion, cart) and the underlying cause.
type TransactionError struct {
	kind  *BaseError
	cause error
}

// NewTransactionError wraps cause as a failure of the given workflow kind.
func NewTransactionError(kind *BaseError, cause error) error {
	return &TransactionError{kind: kind, cause: cause}
}

// Error implements the error interface
func (e *TransactionError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}

	return e.kind.Error() + ": " + e.cause.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *TransactionError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}

	return []error{e.kind, e.cause}
}

// Kind returns the workflow failure kind.
func (e *TransactionError) Kind() *BaseError {
	return e.kind
}

// Cause returns the error that triggered the rollback.
func (e *TransactionError) Cause() error {
	return e.cause
}

// HTTPCode returns the HTTP status code
func (e *TransactionError) HTTPCode() int {
	return e.kind.HTTPCode()
}

// ErrorCode returns the business error code
func (e *TransactionError) ErrorCode() string {
	return e.kind.ErrorCode()
}

// Message returns the user-friendly error message
func (e *TransactionError) Message() string {
	return e.kind.Message()
}

// Details returns detailed error information
func (e *TransactionError) Details() string {
	return e.kind.Details()
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Unwrap returns the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
