package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/db/manager"
	"github.com/vvka-141/imdblab/internal/lab"
	"github.com/vvka-141/imdblab/internal/loader"
	"github.com/vvka-141/imdblab/internal/logging"
	"github.com/vvka-141/imdblab/internal/tui"
)

var loadCmd = &cobra.Command{
	Use:   "load <dataset> [path]",
	Short: "Create a dataset's table if needed and load its CSV source",
	Long: `Load creates the table for one dataset if it does not exist and inserts every
row of its CSV source. Rows whose primary key is already present are skipped,
so loading the same file twice is harmless.

Arguments:
  dataset    ratings or movies (ratings.csv and movies.csv are accepted too)
  path       CSV source; defaults to --ratings/--movies or their defaults

Examples:
  imdblab load ratings
  imdblab load movies ./data/movies.csv --db lab.db`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	dataset, err := loader.ParseDataset(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildLabConfig(labFlags, changedOn(cmd), verbose)
	if err != nil {
		return err
	}

	path := cfg.RatingsCSV
	if dataset == loader.DatasetMovies {
		path = cfg.MoviesCSV
	}
	if len(args) == 2 {
		path = args[1]
	}

	logger := logging.NewConsoleLogger(verbose)
	connector := db.NewSQLiteConnector(cfg.DatabasePath)
	mgr := manager.New(connector, logger)
	out := cmd.OutOrStdout()

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	existed, err := mgr.TableExists(ctx, dataset.Table())
	if err != nil {
		return err
	}
	if err := mgr.Exec(ctx, dataset.CreateStatement()); err != nil {
		return err
	}
	if !existed {
		fmt.Fprintf(out, "%s Created table %s in %s\n", tui.SymbolCheck, dataset.Table(), cfg.DatabasePath)
	}

	report, err := loader.New(connector, logger).Load(ctx, dataset, path)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	lab.NewPrinter(out, tui.IsInteractive()).Load(report)
	return nil
}
