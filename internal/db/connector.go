package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/imdblab/pkg/imdblab"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// SQLiteConnector implements imdblab.Connector for a single on-disk SQLite file.
// Each Connect call opens an independent handle limited to one connection,
// so every operation sees the file exactly as the previous one committed it.
type SQLiteConnector struct {
	path        string
	busyTimeout time.Duration
}

// Option configures a SQLiteConnector.
type Option func(*SQLiteConnector)

// WithBusyTimeout overrides how long SQLite waits on a locked file.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *SQLiteConnector) {
		c.busyTimeout = d
	}
}

// NewSQLiteConnector creates a connector for the database file at path.
// The file is created on first Connect if it does not exist.
func NewSQLiteConnector(path string, opts ...Option) *SQLiteConnector {
	c := &SQLiteConnector{
		path:        path,
		busyTimeout: imdblab.DefaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the database file path.
func (c *SQLiteConnector) Path() string {
	return c.path
}

// Connect opens the database file and verifies it can be read.
func (c *SQLiteConnector) Connect(ctx context.Context) (*sql.DB, error) {
	if c.path == "" {
		return nil, fmt.Errorf("database path is empty: %w", imdblab.ErrInvalidConfig)
	}

	db, err := sql.Open(DriverName, BuildDSN(c.path, c.busyTimeout))
	if err != nil {
		return nil, wrapConnectionError(err, c.path)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapConnectionError(err, c.path)
	}
	return db, nil
}

// BuildDSN builds a modernc.org/sqlite data source name for path.
// The path is kept as a plain filename rather than a file: URI so the driver
// strips the query string before handing the name to SQLite.
func BuildDSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		return path
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
}

// wrapConnectionError wraps raw driver errors with actionable guidance.
func wrapConnectionError(err error, path string) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "unable to open"):
		return fmt.Errorf(`%w: unable to open database file %q

Possible causes:
  - The parent directory does not exist (current: %s)
  - The directory is not writable
  - The path names a directory instead of a file

Original error: %w`, imdblab.ErrConnectionFailed, path, filepath.Dir(path), err)

	case strings.Contains(errStr, "not a database") || strings.Contains(errStr, "file is encrypted"):
		return fmt.Errorf(`%w: %q is not a SQLite database

Remove it or point --db at a different file.

Original error: %w`, imdblab.ErrConnectionFailed, path, err)

	case strings.Contains(errStr, "database is locked") || strings.Contains(errStr, "busy"):
		return fmt.Errorf(`%w: database file %q is locked

Another process is writing to it. Close it and run again.

Original error: %w`, imdblab.ErrConnectionFailed, path, err)

	default:
		return fmt.Errorf("%w: failed to open %q: %w", imdblab.ErrConnectionFailed, path, err)
	}
}

var _ imdblab.Connector = (*SQLiteConnector)(nil)
