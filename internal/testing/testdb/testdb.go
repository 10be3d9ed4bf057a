package testdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgo/holocron/internal/database"
	"github.com/forgo/holocron/internal/sqlstore"
	"github.com/forgo/holocron/migrations"
)

// ============================================================================
// SQL (SQLite in-memory)
// ============================================================================

// SQLiteMemoryURL returns a DATABASE_URL for a private in-memory SQLite database.
// The database lives as long as one connection to it stays open.
func SQLiteMemoryURL() string {
	return fmt.Sprintf("file:holocron_%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewSQL opens a migrated in-memory SQLite database that is closed when the
// test ends. Each call gets its own database.
func NewSQL(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQL(database.SQLConfig{
		Driver: database.DriverSQLite,
		URL:    SQLiteMemoryURL(),
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	if err := sqlstore.Migrate(db); err != nil {
		t.Fatalf("testdb: failed to migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// ============================================================================
// SurrealDB
// ============================================================================

// TestDB provides an isolated SurrealDB environment for testing.
// Each TestDB instance gets a unique namespace to ensure test isolation.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

// getTestConfig returns database config from environment or defaults
func getTestConfig() database.Config {
	return database.Config{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnv("TEST_DB_PORT", "8000"),
		User:     getEnv("TEST_DB_USER", "root"),
		Password: getEnv("TEST_DB_PASSWORD", "root"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	return "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSurreal creates an isolated SurrealDB database with migrations applied.
// The test is skipped unless TEST_DB_HOST is set. The namespace is removed
// when the test ends.
func NewSurreal(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("testdb: TEST_DB_HOST not set, skipping SurrealDB test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	tdb := &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}

	if _, err := database.ApplyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		t.Fatalf("testdb: migrations failed: %v", err)
	}

	t.Cleanup(tdb.Close)
	return tdb
}

// Close cleans up the test database by removing the namespace.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Remove the test namespace to clean up
	query := fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace)
	_ = tdb.DB.Execute(ctx, query, nil) // Ignore errors on cleanup

	_ = tdb.DB.Close()
	tdb.DB = nil
}

// MustExec executes a query and fails the test on error.
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := tdb.DB.Execute(ctx, query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}
