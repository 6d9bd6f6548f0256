package imdblab

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, dataset, path)
//	if errors.Is(err, imdblab.ErrSourceNotFound) {
//	    // Handle missing CSV file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceNotFound indicates a CSV source file is missing or unreadable.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidSource indicates a CSV source could not be parsed or lacks required columns.
	ErrInvalidSource = errors.New("invalid source file")

	// ErrUnknownDataset indicates the loader was asked for a dataset it does not know.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrSchemaFailed indicates a data-definition or data-mutation statement failed.
	ErrSchemaFailed = errors.New("schema statement failed")

	// ErrQueryFailed indicates a query failed to prepare, bind or execute.
	ErrQueryFailed = errors.New("query failed")

	// ErrConnectionFailed indicates the database file could not be opened.
	ErrConnectionFailed = errors.New("connection failed")
)

// usageErrorPrefixes are the message prefixes cobra uses for command line misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnknownDataset):
		return ExitUsageError
	case errors.Is(err, ErrSourceNotFound), errors.Is(err, ErrInvalidSource):
		return ExitSourceError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaFailed), errors.Is(err, ErrQueryFailed):
		return ExitExecutionFailed
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

// PreviewSQL shortens a statement for inclusion in error messages.
func PreviewSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if utf8.RuneCountInString(s) > MaxErrorPreviewLength {
		return string([]rune(s)[:MaxErrorPreviewLength]) + "..."
	}
	return s
}
