package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/lab"
	"github.com/vvka-141/imdblab/internal/logging"
	"github.com/vvka-141/imdblab/internal/tui"
)

// maxChartWidth caps the plot width on wide terminals.
const maxChartWidth = 100

func runLab(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLabConfig(labFlags, changedOn(cmd), verbose)
	if err != nil {
		return err
	}

	interactive := tui.IsInteractive()
	if cfg.ChartWidth == 0 && interactive {
		cfg.ChartWidth = min(tui.TerminalWidth()-16, maxChartWidth)
	}

	logger := logging.NewConsoleLogger(verbose)
	connector := db.NewSQLiteConnector(cfg.DatabasePath)
	out := cmd.OutOrStdout()

	runner := lab.New(cfg, connector, logger,
		lab.WithOutput(out, interactive),
		lab.WithTracker(tui.NewTracker(out)),
	)

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	if _, err := runner.Run(ctx); err != nil {
		return fmt.Errorf("lab failed: %w", err)
	}
	return nil
}
