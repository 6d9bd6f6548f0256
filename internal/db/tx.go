package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// WithTx opens a fresh connection, runs fn inside a single transaction,
// commits, and closes the connection. If fn returns an error or panics the
// transaction is rolled back and nothing fn wrote is kept.
func WithTx(ctx context.Context, connector imdblab.Connector, fn func(tx *sql.Tx) error) (err error) {
	handle, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := handle.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", imdblab.ErrConnectionFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", imdblab.ErrConnectionFailed, err)
	}
	committed = true
	return nil
}
