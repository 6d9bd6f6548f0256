// Package manager issues data-definition and data-mutation statements.
//
// The manager offers:
//   - Exec: run one CREATE/UPDATE/... statement and commit it
//   - TableExists: check for a table in sqlite_master
//   - The canned statements for the ratings and movies tables and the two
//     empty-string-to-NULL normalization updates
//
// Table creation statements are guarded with IF NOT EXISTS, so running them
// against an existing table is a no-op.
//
// # Example Usage
//
//	mgr := manager.New(db.NewSQLiteConnector("imdb_lab.db"), logger)
//	if err := mgr.Exec(ctx, manager.CreateRatingsTable); err != nil {
//	    return err
//	}
package manager
