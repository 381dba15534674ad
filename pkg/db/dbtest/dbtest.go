// Package dbtest opens throwaway sqlite databases with the real schema.
package dbtest

import (
	"context"
	"testing"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/migrate"
	"github.com/google/uuid"
)

// Config returns a sqlite config pointing at a fresh named in-memory
// database. Each call gets its own database.
func Config() config.DBConfig {
	return config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
}

// Open returns a migrated client that is closed when the test ends.
func Open(t testing.TB) *db.Client {
	t.Helper()

	cfg := Config()
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := migrate.Up(context.Background(), sqlDB, cfg.Driver); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}
