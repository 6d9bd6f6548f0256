package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// Executor runs single statements and materializes their results.
type Executor struct {
	connector imdblab.Connector
	logger    imdblab.Logger
}

// New creates an Executor. Panics if connector or logger is nil.
func New(connector imdblab.Connector, logger imdblab.Logger) *Executor {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Executor{
		connector: connector,
		logger:    logger,
	}
}

// Query executes stmt with args bound positionally and returns every result
// row. A statement that produces no rows, such as an UPDATE, yields an empty
// ResultSet. Any side effect of stmt is committed before Query returns.
func (e *Executor) Query(ctx context.Context, stmt string, args ...any) (*imdblab.ResultSet, error) {
	e.logger.Verbose("Executing query: %s (params: %v)", imdblab.PreviewSQL(stmt), args)

	result := &imdblab.ResultSet{Rows: [][]any{}}
	err := db.WithTx(ctx, e.connector, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, stmt, args...)
		if err != nil {
			return queryError(stmt, err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return queryError(stmt, err)
		}
		result.Columns = columns

		for rows.Next() {
			row, err := scanRow(rows, len(columns))
			if err != nil {
				return queryError(stmt, err)
			}
			result.Rows = append(result.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return queryError(stmt, err)
		}
		return rows.Close()
	})
	if err != nil {
		return nil, err
	}

	e.logger.Verbose("Query returned %d row(s)", result.Len())
	return result, nil
}

func scanRow(rows *sql.Rows, width int) ([]any, error) {
	values := make([]any, width)
	dest := make([]any, width)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	return values, nil
}

func queryError(stmt string, err error) error {
	return fmt.Errorf("%w: %s: %w", imdblab.ErrQueryFailed, imdblab.PreviewSQL(stmt), err)
}
