package imdblab

import (
	"errors"
	"fmt"
	"time"
)

// LabConfig contains all parameters needed for a lab run.
type LabConfig struct {
	// DatabasePath is the SQLite file the lab creates and queries
	DatabasePath string

	// RatingsCSV is the path to the ratings source file
	RatingsCSV string

	// MoviesCSV is the path to the movie metadata source file
	MoviesCSV string

	// Timeout is the global timeout for the entire run
	Timeout time.Duration

	// PreviewRows is the number of rows printed for frame previews
	PreviewRows int

	// Chart enables handing the final result to the chart renderer
	Chart bool

	// ChartWidth and ChartHeight size the rendered scatter plot in cells.
	// Zero means "pick from the terminal".
	ChartWidth  int
	ChartHeight int

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LabConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LabConfig) Validate() error {
	var errs []error

	if c.DatabasePath == "" {
		errs = append(errs, fmt.Errorf("DatabasePath is required: %w", ErrInvalidConfig))
	}

	if c.RatingsCSV == "" {
		errs = append(errs, fmt.Errorf("RatingsCSV is required: %w", ErrInvalidConfig))
	}

	if c.MoviesCSV == "" {
		errs = append(errs, fmt.Errorf("MoviesCSV is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if c.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("preview rows cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ChartWidth < 0 || c.ChartHeight < 0 {
		errs = append(errs, fmt.Errorf("chart dimensions cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// DefaultLabConfig returns a LabConfig populated with the built-in defaults.
func DefaultLabConfig() LabConfig {
	return LabConfig{
		DatabasePath: DefaultDatabasePath,
		RatingsCSV:   DefaultRatingsCSV,
		MoviesCSV:    DefaultMoviesCSV,
		Timeout:      DefaultTimeout,
		PreviewRows:  DefaultPreviewRows,
		Chart:        true,
	}
}

// ResultSet is a fully materialized query result.
type ResultSet struct {
	// Columns are the result column names in select-list order
	Columns []string

	// Rows holds one tuple per result row, each with len(Columns) values.
	// Values are int64, float64, string, time.Time or nil.
	Rows [][]any
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result has no rows.
func (r *ResultSet) Empty() bool {
	return r.Len() == 0
}
