// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"budget-app-go/internal/config"
	"budget-app-go/internal/db"
	"budget-app-go/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SQLiteConfig points at a fresh database file inside t.TempDir().
func SQLiteConfig(t testing.TB) config.DBConfig {
	t.Helper()
	return config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "budget_test.db"),
	}
}

// NewSQLite returns a migrated SQLite database closed on cleanup.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := SQLiteConfig(t)
	log := logger.Discard()

	require.NoError(t, db.MigrateUp(cfg, log))

	gormDB, err := db.Open(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})
	return gormDB
}

// InsertUser writes a bare user row so foreign keys to users resolve.
func InsertUser(t testing.TB, gormDB *gorm.DB, id, username string) {
	t.Helper()
	require.NoError(t, gormDB.Exec(
		"INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, '', 'x')", id, username,
	).Error)
}
