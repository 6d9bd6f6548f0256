package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/ingest"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// previewTuples is how many projected tuples a Report keeps.
const previewTuples = 5

// Report summarizes one dataset load.
type Report struct {
	Dataset  Dataset
	Path     string
	Header   []string
	Read     int
	Inserted int
	Preview  [][]any
}

// Skipped returns the number of rows dropped on primary-key conflict.
func (r *Report) Skipped() int {
	return r.Read - r.Inserted
}

// Loader ingests CSV sources and inserts them into their tables.
// Not safe for concurrent Load calls against the same store.
type Loader struct {
	connector imdblab.Connector
	logger    imdblab.Logger
}

// New creates a Loader. Panics if connector or logger is nil.
func New(connector imdblab.Connector, logger imdblab.Logger) *Loader {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{
		connector: connector,
		logger:    logger,
	}
}

// LoadFile picks the dataset from the file name of path and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Report, error) {
	dataset, err := ParseDataset(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, dataset, path)
}

// Load reads every record of the source at path, projects it onto the
// dataset's columns and inserts all tuples in one transaction. Rows whose
// primary key already exists are skipped. Any failure rolls back the whole
// batch.
func (l *Loader) Load(ctx context.Context, dataset Dataset, path string) (*Report, error) {
	if !dataset.Valid() {
		return nil, fmt.Errorf("%w: %v", imdblab.ErrUnknownDataset, dataset)
	}

	table, err := ingest.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s source: %w", dataset, err)
	}
	l.logger.Verbose("Read %s, field names: %s", path, strings.Join(table.Header, ", "))

	if missing := table.Missing(dataset.Columns()); len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing required column(s) %s: %w",
			path, strings.Join(missing, ", "), imdblab.ErrInvalidSource)
	}

	tuples := make([][]any, 0, len(table.Records))
	for _, rec := range table.Records {
		tuples = append(tuples, dataset.Project(rec))
	}

	inserted, err := l.insertBatch(ctx, dataset, tuples)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Dataset:  dataset,
		Path:     path,
		Header:   table.Header,
		Read:     len(tuples),
		Inserted: inserted,
		Preview:  tuples[:min(previewTuples, len(tuples))],
	}

	l.logger.Verbose("Loaded %d of %d row(s) into %s (%d duplicate key(s) skipped)",
		report.Inserted, report.Read, dataset.Table(), report.Skipped())
	l.logger.Verbose("First %d tuple(s): %v", len(report.Preview), report.Preview)

	return report, nil
}

func (l *Loader) insertBatch(ctx context.Context, dataset Dataset, tuples [][]any) (int, error) {
	inserted := 0
	stmtText := dataset.InsertStatement()

	err := db.WithTx(ctx, l.connector, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, stmtText)
		if err != nil {
			return fmt.Errorf("%w: failed to prepare insert into %s: %w", imdblab.ErrSchemaFailed, dataset.Table(), err)
		}
		defer stmt.Close()

		for i, tuple := range tuples {
			res, err := stmt.ExecContext(ctx, tuple...)
			if err != nil {
				return fmt.Errorf("%w: failed to insert row %d into %s: %w", imdblab.ErrSchemaFailed, i+1, dataset.Table(), err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
