package auth

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// NewPasswordHasher selects the hashing scheme configured under auth.hasher.
func NewPasswordHasher(cfg *config.Config, logger *slog.Logger) (service.PasswordHasher, error) {
	scheme := constants.PasswordHasherSHA256
	cost := 0
	if cfg.Auth != nil {
		if cfg.Auth.Hasher != "" {
			scheme = cfg.Auth.Hasher
		}
		cost = cfg.Auth.BcryptCost
	}

	switch scheme {
	case constants.PasswordHasherSHA256:
		logger.Info("Using salted SHA-256 password hasher")

		return NewSHA256Hasher(), nil
	case constants.PasswordHasherBcrypt:
		logger.Info("Using bcrypt password hasher", slog.Int("cost", cost))

		return NewBcryptHasherWithCost(cost), nil
	default:
		return nil, errors.Errorf("unknown password hasher: %s", scheme)
	}
}
