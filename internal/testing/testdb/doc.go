// Package testdb provides isolated databases for store tests.
//
// # SQLite
//
// NewSQL returns a migrated in-memory SQLite database unique to the test:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.NewSQL(t) // closed by t.Cleanup
//	    repos := bootstrap.SQLRepositories(db)
//	}
//
// # SurrealDB
//
// NewSurreal connects to the server named by TEST_DB_HOST (plus TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD), creates a unique namespace and applies
// the embedded migrations. Without TEST_DB_HOST the test is skipped.
//
//	tdb := testdb.NewSurreal(t)
//	repos := bootstrap.SurrealRepositories(tdb.DB)
package testdb
