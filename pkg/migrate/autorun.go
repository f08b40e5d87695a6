package migrate

import (
	"context"
	"fmt"

	"github.com/taketwocare/solecare-backend/pkg/config"
	"github.com/taketwocare/solecare-backend/pkg/db"
	"github.com/taketwocare/solecare-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations on boot when the auto-migrate flag
// is set. Intended for dev environments only; production uses cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("sql handle for migrations: %w", err)
	}

	dialect := cfg.DB.Driver
	if dialect == "sqlite" {
		dialect = "sqlite3"
	}

	if logg != nil {
		logg.Info(ctx, "running auto migrations")
	}
	return Up(ctx, sqlDB, dialect)
}
