package imdblab

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Lab completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags, unknown dataset)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to open the database file
	ExitExecutionFailed = 13 // SQL statement failed
	ExitSourceError     = 14 // CSV source missing, unreadable or malformed
)

const (
	// DefaultDatabasePath is the SQLite file the lab writes to.
	DefaultDatabasePath = "imdb_lab.db"

	// DefaultRatingsCSV is the ratings source file.
	DefaultRatingsCSV = "ratings.csv"

	// DefaultMoviesCSV is the movie metadata source file.
	DefaultMoviesCSV = "movies.csv"

	// DefaultTimeout bounds a whole lab run.
	DefaultTimeout = 3 * time.Minute

	// DefaultPreviewRows is the number of rows shown for tabular previews.
	DefaultPreviewRows = 5

	// DefaultBusyTimeout is how long SQLite waits on a locked database file.
	DefaultBusyTimeout = 5 * time.Second

	// MaxErrorPreviewLength is the maximum number of characters of a SQL
	// statement quoted in error messages.
	MaxErrorPreviewLength = 200
)
