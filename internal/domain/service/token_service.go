package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for access tokens.
type Claims struct {
	BusinessEntityID int32  `json:"businessEntityId"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateToken issues an access token for a signed-in customer.
	GenerateToken(businessEntityID int32, email string) (string, error)

	// ValidateToken parses and verifies a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
