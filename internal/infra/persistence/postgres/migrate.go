package postgres

import (
	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"gorm.io/gorm"
)

// Migrate creates or alters every storefront table to match the entity mapping.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(entity.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate storefront schema")
	}

	return nil
}
