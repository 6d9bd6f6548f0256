package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/lab"
	"github.com/vvka-141/imdblab/internal/logging"
	"github.com/vvka-141/imdblab/internal/params"
	"github.com/vvka-141/imdblab/internal/query"
	"github.com/vvka-141/imdblab/internal/tui"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql> [args...]",
	Short: "Run one SQL statement against the lab database",
	Long: `Query runs a single SQL statement and prints its result as a table.
Arguments after the statement bind to its ? placeholders in order. They are
never spliced into the SQL text.

Argument typing:
  9, -3          integer
  8.5, 1e6       real
  null           NULL
  '9', "null"    text (quotes force text)
  anything else  text

Examples:
  imdblab query "SELECT * FROM ratings WHERE median_rating > ? LIMIT 5" 9
  imdblab query "SELECT title FROM movies WHERE title LIKE ?" "W%"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	bindArgs, err := params.ParseArgs(args[1:])
	if err != nil {
		return fmt.Errorf("invalid query argument: %w", err)
	}

	cfg, err := buildLabConfig(labFlags, changedOn(cmd), verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	executor := query.New(db.NewSQLiteConnector(cfg.DatabasePath), logger)

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	rs, err := executor.Query(ctx, args[0], bindArgs...)
	if err != nil {
		return err
	}

	printer := lab.NewPrinter(cmd.OutOrStdout(), tui.IsInteractive())
	printer.Statement(args[0], bindArgs)
	return printer.Result(rs)
}
