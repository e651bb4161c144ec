// Package dbtest opens migrated in-memory SQLite databases for tests.
// It is only intended to be imported from _test.go files.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/articled/apiserver/config"
	"github.com/articled/apiserver/internal/db"
)

// Open returns a fresh in-memory database with the schema applied.
// The handle is closed when the test finishes.
func Open(tb testing.TB) *sql.DB {
	tb.Helper()

	conn, err := sql.Open(config.DriverSQLite, db.SQLiteDSN(":memory:"))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	// Every pooled connection would get its own empty :memory: database.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)
	tb.Cleanup(func() { _ = conn.Close() })

	if err := db.MigrateSQLite(conn); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}
