// internal/adapters/db/migrations.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig holds migration configuration. When SourcePath is empty
// the migrations compiled into the binary are used.
type MigrationConfig struct {
	DatabaseURL      string
	SourcePath       string
	TableName        string
	SchemaName       string
	ForceDirty       bool
	StatementTimeout time.Duration
}

func (c *MigrationConfig) withDefaults() MigrationConfig {
	out := *c
	if out.TableName == "" {
		out.TableName = "schema_migrations"
	}
	if out.SchemaName == "" {
		out.SchemaName = "public"
	}
	if out.StatementTimeout == 0 {
		out.StatementTimeout = 10 * time.Minute
	}
	return out
}

// RunMigrationsWithRetry applies every pending migration. Connection
// failures are retried with a growing wait while the database starts; a
// failed migration is not, since rerunning it cannot help.
func RunMigrationsWithRetry(ctx context.Context, cfg *MigrationConfig, logger *slog.Logger, attempts int) error {
	if cfg == nil {
		return errors.New("migration config is required")
	}
	c := cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * 2 * time.Second
			logger.InfoContext(ctx, "retrying migration",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		m, closeFn, err := openMigrate(ctx, c)
		if err != nil {
			lastErr = err
			logger.WarnContext(ctx, "migration source or database unavailable",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}

		err = applyUp(ctx, m, c.ForceDirty, logger)
		closeFn()
		return err
	}

	return fmt.Errorf("migrations failed after %d attempts: %w", attempts, lastErr)
}

func openMigrate(ctx context.Context, c MigrationConfig) (*migrate.Migrate, func(), error) {
	conn, err := sql.Open("pgx", c.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(2)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{
		MigrationsTable:  c.TableName,
		SchemaName:       c.SchemaName,
		StatementTimeout: c.StatementTimeout,
	})
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	var m *migrate.Migrate
	if c.SourcePath != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+c.SourcePath, "postgres", driver)
	} else {
		src, srcErr := iofs.New(embeddedMigrations, "migrations")
		if srcErr != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("failed to read embedded migrations: %w", srcErr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
	}
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return m, func() {
		m.Close()
		conn.Close()
	}, nil
}

func applyUp(ctx context.Context, m *migrate.Migrate, forceDirty bool, logger *slog.Logger) error {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		if !forceDirty {
			return fmt.Errorf("database is dirty at migration %d", version)
		}
		logger.WarnContext(ctx, "forcing dirty migration", slog.Uint64("version", uint64(version)))
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.InfoContext(ctx, "schema up to date", slog.Uint64("version", uint64(version)))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if v, _, err := m.Version(); err == nil {
		logger.InfoContext(ctx, "migrations applied",
			slog.Uint64("from_version", uint64(version)),
			slog.Uint64("version", uint64(v)))
	}
	return nil
}
