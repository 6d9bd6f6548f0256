package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/imdblab/internal/db/manager"
	"github.com/vvka-141/imdblab/internal/ingest"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// Dataset identifies one of the known CSV sources and the table it feeds.
type Dataset int

const (
	// DatasetUnknown is the zero value and never loads.
	DatasetUnknown Dataset = iota
	// DatasetRatings is ratings.csv feeding the ratings table.
	DatasetRatings
	// DatasetMovies is movies.csv feeding the movies table.
	DatasetMovies
)

type datasetSpec struct {
	name    string
	table   string
	file    string
	create  string
	columns []string
}

var datasetSpecs = map[Dataset]datasetSpec{
	DatasetRatings: {
		name:    "ratings",
		table:   "ratings",
		file:    imdblab.DefaultRatingsCSV,
		create:  manager.CreateRatingsTable,
		columns: []string{"movie_id", "avg_rating", "total_ratings", "median_rating"},
	},
	DatasetMovies: {
		name:    "movies",
		table:   "movies",
		file:    imdblab.DefaultMoviesCSV,
		create:  manager.CreateMoviesTable,
		columns: []string{"id", "title", "year", "duration", "country", "worldwide_gross_income", "production_company"},
	},
}

// Datasets returns every known dataset in load order.
func Datasets() []Dataset {
	return []Dataset{DatasetRatings, DatasetMovies}
}

// ParseDataset resolves a dataset from its name ("ratings"), its source
// file name ("ratings.csv") or a path ending in that file name.
func ParseDataset(id string) (Dataset, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	base := strings.ToLower(filepath.Base(key))

	for _, d := range Datasets() {
		spec := datasetSpecs[d]
		if key == spec.name || key == spec.file || base == spec.file {
			return d, nil
		}
	}
	return DatasetUnknown, fmt.Errorf("%w: %q (expected one of: ratings, movies, %s, %s)",
		imdblab.ErrUnknownDataset, id, imdblab.DefaultRatingsCSV, imdblab.DefaultMoviesCSV)
}

// String returns the dataset name.
func (d Dataset) String() string {
	if spec, ok := datasetSpecs[d]; ok {
		return spec.name
	}
	return fmt.Sprintf("Dataset(%d)", int(d))
}

// Valid reports whether d is a known dataset.
func (d Dataset) Valid() bool {
	_, ok := datasetSpecs[d]
	return ok
}

// Table returns the target table name.
func (d Dataset) Table() string {
	return datasetSpecs[d].table
}

// FileName returns the conventional source file name.
func (d Dataset) FileName() string {
	return datasetSpecs[d].file
}

// Columns returns the target columns in table order. The CSV header must
// carry a field of the same name for each.
func (d Dataset) Columns() []string {
	cols := datasetSpecs[d].columns
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// CreateStatement returns the guarded CREATE TABLE statement for the dataset.
func (d Dataset) CreateStatement() string {
	return datasetSpecs[d].create
}

// InsertStatement returns the ignore-on-conflict insert for one tuple.
func (d Dataset) InsertStatement() string {
	spec := datasetSpecs[d]
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(spec.columns)), ", ")
	return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s);",
		spec.table, strings.Join(spec.columns, ", "), placeholders)
}

// Project maps a record to a tuple in column order. Values are bound as
// text and stored under the column's affinity; a field missing from a short
// row binds as NULL.
func (d Dataset) Project(rec ingest.Record) []any {
	cols := datasetSpecs[d].columns
	tuple := make([]any, len(cols))
	for i, col := range cols {
		if v, ok := rec[col]; ok {
			tuple[i] = v
		}
	}
	return tuple
}
