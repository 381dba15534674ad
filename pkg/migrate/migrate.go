package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/pressly/goose/v3"
)

// DefaultDir is where `-cmd create` writes new files during development.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations exposes the migration files compiled into the binary.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(fmt.Sprintf("migrate: embedded migrations: %v", err))
	}
	return sub
}

// DialectFor maps a configured db driver onto the goose dialect.
func DialectFor(driver string) (goose.Dialect, error) {
	switch driver {
	case config.DriverSQLite, "":
		return goose.DialectSQLite3, nil
	case config.DriverPostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("no goose dialect for driver %q", driver)
	}
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Run executes a goose command (up, down, status) against db. Status output
// goes to out when it is non-nil.
func Run(ctx context.Context, db *sql.DB, driver string, command string, out io.Writer) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		if _, err := provider.Up(ctx); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
	case "down":
		if _, err := provider.Down(ctx); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		if out != nil {
			writeStatus(out, statuses)
		}
	default:
		return fmt.Errorf("unsupported goose command %q", command)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return Run(ctx, db, driver, "up", nil)
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if _, err := provider.UpTo(ctx, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil
	default:
		if _, err := provider.DownTo(ctx, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}

func writeStatus(out io.Writer, statuses []*goose.MigrationStatus) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.Source.Version, st.State, applied, st.Source.Path)
	}
	_ = tw.Flush()
}
