// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new customer.
type RegisterUserInput struct {
	PersonType      string
	NameStyle       bool
	Title           *string
	FirstName       string
	MiddleName      *string
	LastName        string
	EmailAddress    string
	Password        string
	EmailPromotion  int
	AddressTypeID   int32
	AddressLine1    string
	AddressLine2    *string
	City            string
	StateProvinceID int32
	PostalCode      string
}

// UpdateUserInput carries a partial profile update. Nil fields are left untouched.
type UpdateUserInput struct {
	BusinessEntityID int32
	Title            *string
	FirstName        *string
	MiddleName       *string
	LastName         *string
	EmailPromotion   *int
	EmailAddress     *string
	Password         *string
	AddressLine1     *string
	AddressLine2     *string
	City             *string
	StateProvinceID  *int32
	PostalCode       *string
	AddressTypeID    *int32
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the identity of the newly created customer.
type RegisterOutput struct {
	BusinessEntityID int32
	EmailAddressID   int32
	AddressID        int32
}

// LoginOutput returns the generated access token after a successful login.
type LoginOutput struct {
	BusinessEntityID int32
	AccessToken      string
}

// UserUsecase defines the interface for customer account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Update(ctx context.Context, input *UpdateUserInput) error
	Delete(ctx context.Context, businessEntityID int32) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	AddressConstants(ctx context.Context) (*entity.AddressConstants, error)
}
