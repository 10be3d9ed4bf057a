// Package database provides database connectivity for the Holocron API.
//
// Two backends are supported. SurrealDB is reached through the Database
// interface and queried with SurrealQL by the repository package. PostgreSQL
// and SQLite are reached through GORM (see OpenSQL) and queried by the
// sqlstore package. Both report failures with the same sentinel errors.
//
// # Database Interface
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Transactions
//
// Transactions are BATCH-BASED, not connection-level. AtomicBatch collects
// a fixed sequence such as "delete favorites, then delete the planet" and
// sends it as one BEGIN TRANSACTION / COMMIT TRANSACTION query.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
//
// # Migrations
//
// ApplyMigrations runs every .surql file of a filesystem in name order.
// The SQL backend is migrated by GORM AutoMigrate instead.
package database
