package middleware

import (
	"log/slog"
	"strings"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	keyBusinessEntityID = "businessEntityID"
	keyEmail            = "email"
)

// AuthMiddleware validates bearer access tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects requests without a valid access token and stores the
// caller's business entity id on the echo and request contexts.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.LoggerFrom(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}
		if claims.BusinessEntityID <= 0 {
			return response.Unauthorized(c, "INVALID_TOKEN", "Business entity id missing from token")
		}

		c.Set(keyBusinessEntityID, claims.BusinessEntityID)
		c.Set(keyEmail, claims.Email)
		c.SetRequest(c.Request().WithContext(
			deliverycontext.WithBusinessEntity(c.Request().Context(), claims.BusinessEntityID),
		))

		return next(c)
	}
}

// GetBusinessEntityID returns the id stored by Authenticate.
func GetBusinessEntityID(c echo.Context) (int32, bool) {
	id, ok := c.Get(keyBusinessEntityID).(int32)

	return id, ok && id > 0
}
