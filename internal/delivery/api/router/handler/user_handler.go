package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler handles customer account requests.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	PersonType      string  `json:"personType" validate:"omitempty,oneof=IN SC VC EM SP GC"`
	NameStyle       bool    `json:"nameStyle"`
	Title           *string `json:"title" validate:"omitempty,max=8"`
	FirstName       string  `json:"firstName" validate:"required,max=50"`
	MiddleName      *string `json:"middleName" validate:"omitempty,max=50"`
	LastName        string  `json:"lastName" validate:"required,max=50"`
	EmailAddress    string  `json:"emailAddress" validate:"required,email,max=50"`
	Password        string  `json:"password" validate:"required,min=8,max=62"`
	EmailPromotion  int     `json:"emailPromotion" validate:"gte=0,lte=2"`
	AddressTypeID   int32   `json:"addressTypeId" validate:"required,gt=0"`
	AddressLine1    string  `json:"addressLine1" validate:"required,max=60"`
	AddressLine2    *string `json:"addressLine2" validate:"omitempty,max=60"`
	City            string  `json:"city" validate:"required,max=30"`
	StateProvinceID int32   `json:"stateProvinceId" validate:"gte=0"`
	PostalCode      string  `json:"postalCode" validate:"required,max=15"`
}

// RegisterResponse identifies the created customer.
type RegisterResponse struct {
	BusinessEntityID int32 `json:"businessEntityId"`
	EmailAddressID   int32 `json:"emailAddressId"`
	AddressID        int32 `json:"addressId"`
}

// Register creates a customer account.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration data")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	out, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterUserInput{
		PersonType:      req.PersonType,
		NameStyle:       req.NameStyle,
		Title:           req.Title,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		EmailAddress:    req.EmailAddress,
		Password:        req.Password,
		EmailPromotion:  req.EmailPromotion,
		AddressTypeID:   req.AddressTypeID,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		StateProvinceID: req.StateProvinceID,
		PostalCode:      req.PostalCode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, RegisterResponse{
		BusinessEntityID: out.BusinessEntityID,
		EmailAddressID:   out.EmailAddressID,
		AddressID:        out.AddressID,
	})
}

// LoginRequest is the body of a login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	BusinessEntityID int32  `json:"businessEntityId"`
	AccessToken      string `json:"accessToken"`
}

// Login exchanges an email and password for an access token.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login data")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	out, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		BusinessEntityID: out.BusinessEntityID,
		AccessToken:      out.AccessToken,
	})
}

// AddressConstants lists the states and address types a registration form offers.
func (h *UserHandler) AddressConstants(c echo.Context) error {
	constants, err := h.userUC.AddressConstants(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, constants)
}

// UpdateRequest is the body of a profile update. Omitted fields are left untouched.
type UpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=8"`
	FirstName       *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	MiddleName      *string `json:"middleName" validate:"omitempty,max=50"`
	LastName        *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	EmailPromotion  *int    `json:"emailPromotion" validate:"omitempty,gte=0,lte=2"`
	EmailAddress    *string `json:"emailAddress" validate:"omitempty,email,max=50"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=62"`
	AddressLine1    *string `json:"addressLine1" validate:"omitempty,min=1,max=60"`
	AddressLine2    *string `json:"addressLine2" validate:"omitempty,max=60"`
	City            *string `json:"city" validate:"omitempty,min=1,max=30"`
	StateProvinceID *int32  `json:"stateProvinceId" validate:"omitempty,gt=0"`
	PostalCode      *string `json:"postalCode" validate:"omitempty,min=1,max=15"`
	AddressTypeID   *int32  `json:"addressTypeId" validate:"omitempty,gt=0"`
}

// Update changes the signed-in customer's profile.
func (h *UserHandler) Update(c echo.Context) error {
	businessEntityID, ok := middleware.GetBusinessEntityID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile data")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := h.userUC.Update(c.Request().Context(), &usecase.UpdateUserInput{
		BusinessEntityID: businessEntityID,
		Title:            req.Title,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		EmailPromotion:   req.EmailPromotion,
		EmailAddress:     req.EmailAddress,
		Password:         req.Password,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		StateProvinceID:  req.StateProvinceID,
		PostalCode:       req.PostalCode,
		AddressTypeID:    req.AddressTypeID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes the signed-in customer's account.
func (h *UserHandler) Delete(c echo.Context) error {
	businessEntityID, ok := middleware.GetBusinessEntityID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	if err := h.userUC.Delete(c.Request().Context(), businessEntityID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
