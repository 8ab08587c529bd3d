package database

import (
	"fmt"

	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema from the models. Production
// postgres deployments apply migrations/*.sql through cmd/migrate instead.
func AutoMigrate(db *gorm.DB) error {
	logging.Info().Str("dialect", db.Dialector.Name()).Msg("running gorm auto-migration")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}
