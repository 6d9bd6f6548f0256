package imdblab

import (
	"context"
	"database/sql"
)

// Connector opens a connection to the lab's store.
// Every store operation calls Connect, uses the handle for exactly one
// statement or one batch, and closes it.
type Connector interface {
	// Connect opens and verifies a handle to the database file.
	// The caller must Close the returned handle.
	Connect(ctx context.Context) (*sql.DB, error)
}
