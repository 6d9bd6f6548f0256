package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imdblab",
	Short: "Load IMDb ratings and movies into SQLite and explore them with SQL",
	Long: `imdblab loads ratings.csv and movies.csv into an on-disk SQLite database,
then runs a fixed progression of SQL queries over them: filtering, sorting,
parameter binding, aggregation, subqueries, a CTE, NULL normalization, joins
and wildcard matching. The last result is turned into a frame and plotted as
average rating against total ratings.

Run without arguments to execute the whole lab with default file names.
Every step prints its SQL and result; the run stops at the first failure.

Configuration precedence: flag > environment (IMDBLAB_*) > imdblab.yaml > default.
A .env file in the working directory is loaded automatically.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments, flags or dataset name)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database file could not be opened
  13 - SQL statement failed
  14 - CSV source missing or malformed`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runLab,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	rootCmd.PersistentFlags().StringVar(&labFlags.database, "db", "",
		"SQLite database file (default imdb_lab.db, or $IMDBLAB_DB)")
	rootCmd.PersistentFlags().StringVar(&labFlags.ratings, "ratings", "",
		"Ratings CSV source (default ratings.csv, or $IMDBLAB_RATINGS_CSV)")
	rootCmd.PersistentFlags().StringVar(&labFlags.movies, "movies", "",
		"Movies CSV source (default movies.csv, or $IMDBLAB_MOVIES_CSV)")
	rootCmd.PersistentFlags().StringVar(&labFlags.configPath, "config", "",
		"Path to a project config file (default ./imdblab.yaml when present)")
	rootCmd.PersistentFlags().StringSliceVar(&labFlags.envFiles, "env-file", nil,
		"Load environment variables from .env files (can be specified multiple times)\n"+
			"Variables already set in the shell are not overridden")
	rootCmd.PersistentFlags().DurationVar(&labFlags.timeout, "timeout", 0,
		"Timeout for the whole command (default 3m, or $IMDBLAB_TIMEOUT)\n"+
			"Examples: 30s, 5m")

	rootCmd.Flags().BoolVar(&labFlags.noChart, "no-chart", false,
		"Skip the scatter plot at the end of the lab ($IMDBLAB_NO_CHART)")
	rootCmd.Flags().IntVar(&labFlags.previewRows, "preview", 0,
		"Number of frame rows printed before the chart (default 5)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
