package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"budget-app-go/internal/config"
	"budget-app-go/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrateUp applies all pending migrations for the configured driver.
func MigrateUp(cfg config.DBConfig, log logger.Logger) error {
	return withMigrator(cfg, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("db.migrate: schema up to date", "driver", cfg.Driver)
			return nil
		}
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		version, _, _ := m.Version()
		log.Info("db.migrate: applied", "driver", cfg.Driver, "version", version)
		return nil
	})
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(cfg config.DBConfig, steps int, log logger.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return withMigrator(cfg, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		log.Info("db.migrate: rolled back", "driver", cfg.Driver, "steps", steps)
		return nil
	})
}

// MigrationVersion reports the current schema version and dirty flag.
func MigrationVersion(cfg config.DBConfig) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := withMigrator(cfg, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

// withMigrator opens a dedicated connection because closing the migrate
// instance closes the underlying database handle.
func withMigrator(cfg config.DBConfig, fn func(*migrate.Migrate) error) error {
	var (
		sqlDB      *sql.DB
		err        error
		sourcePath string
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		sourcePath = "migrations/sqlite"
		sqlDB, err = sql.Open("sqlite3", SQLiteDSN(cfg.SQLitePath))
	case config.DriverPostgres, "":
		sourcePath = "migrations/postgres"
		sqlDB, err = sql.Open("pgx", cfg.GetDSN())
	default:
		return fmt.Errorf("migrate: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	source, err := iofs.New(migrationsFS, sourcePath)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	var m *migrate.Migrate
	switch cfg.Driver {
	case config.DriverSQLite:
		driver, derr := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if derr != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("create sqlite driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	default:
		driver, derr := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
		if derr != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("create pgx driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "pgx5", driver)
	}
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	return fn(m)
}
