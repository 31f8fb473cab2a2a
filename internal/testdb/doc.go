//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Each test runs in its own transaction which is rolled back when the test
// completes, so tests can call t.Parallel() and share tables freely:
//
//	func TestCharacterCache(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresCharacterStore(tx, nil)
//	        ...
//	    })
//	}
//
// Tests are skipped unless HEROES_TEST_DB_URL (or DATABASE_URL) is set, and
// fail instead under CI. The
// schema is migrated once per test binary from the migrations embedded in the
// postgres package.
package testdb
