package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/logger"
)

// MaybeAutoRun applies pending migrations at startup when the auto-migrate
// flag is on. The desktop build ships with it enabled so a fresh database
// file is usable on first launch.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Up(ctx, sqlDB, cfg.DB.Driver); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
