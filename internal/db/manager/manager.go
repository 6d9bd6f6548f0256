package manager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// Canned data-definition and data-mutation statements for the lab schema.
const (
	CreateRatingsTable = `
    CREATE TABLE IF NOT EXISTS ratings (
    movie_id TEXT PRIMARY KEY,
    avg_rating REAL,
    total_ratings INTEGER,
    median_rating REAL
    )`

	CreateMoviesTable = `
    CREATE TABLE IF NOT EXISTS movies (
    id TEXT PRIMARY KEY,
    title TEXT,
    year INTEGER,
    duration INTEGER,
    country TEXT,
    worldwide_gross_income INTEGER,
    production_company TEXT
    )`

	NormalizeGrossIncome = `
    UPDATE movies
    SET worldwide_gross_income = NULL
    WHERE worldwide_gross_income = '';`

	NormalizeProductionCompany = `
    UPDATE movies
    SET production_company = NULL
    WHERE production_company = '';`

	queryTableExists = "SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)"
)

// Manager issues schema and mutation statements against the store.
// Stateless apart from its connector; each call uses its own connection.
type Manager struct {
	connector imdblab.Connector
	logger    imdblab.Logger
}

// New creates a Manager. Panics if connector or logger is nil.
func New(connector imdblab.Connector, logger imdblab.Logger) *Manager {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Manager{
		connector: connector,
		logger:    logger,
	}
}

// Exec runs one DDL or DML statement and commits it before returning.
func (m *Manager) Exec(ctx context.Context, stmt string) error {
	m.logger.Verbose("Executing schema statement: %s", imdblab.PreviewSQL(stmt))

	var affected int64
	err := db.WithTx(ctx, m.connector, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", imdblab.ErrSchemaFailed, imdblab.PreviewSQL(stmt), err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Verbose("Statement committed (%d row(s) affected)", affected)
	return nil
}

// TableExists reports whether a table named name exists in the store.
func (m *Manager) TableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := db.WithTx(ctx, m.connector, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, queryTableExists, name).Scan(&exists); err != nil {
			return fmt.Errorf("%w: failed to check table %q: %w", imdblab.ErrQueryFailed, name, err)
		}
		return nil
	})
	return exists, err
}
