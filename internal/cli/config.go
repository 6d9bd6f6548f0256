package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imdblab/internal/config"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

type labFlagValues struct {
	database, ratings, movies string
	configPath                string
	envFiles                  []string
	timeout                   time.Duration
	noChart                   bool
	previewRows               int
}

var labFlags labFlagValues

// flagChanged reports whether the named flag was set on the command line.
type flagChanged func(name string) bool

func changedOn(cmd *cobra.Command) flagChanged {
	return func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
}

// buildLabConfig resolves the lab configuration.
// Precedence (highest to lowest): flags > environment > imdblab.yaml > defaults.
func buildLabConfig(flags labFlagValues, changed flagChanged, verbose bool) (imdblab.LabConfig, error) {
	if err := config.LoadEnvFiles(flags.envFiles...); err != nil {
		return imdblab.LabConfig{}, err
	}

	cfg, err := config.Resolve(flags.configPath, nil)
	if err != nil {
		return imdblab.LabConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if changed("db") {
		cfg.DatabasePath = flags.database
	}
	if changed("ratings") {
		cfg.RatingsCSV = flags.ratings
	}
	if changed("movies") {
		cfg.MoviesCSV = flags.movies
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("no-chart") {
		cfg.Chart = !flags.noChart
	}
	if changed("preview") {
		cfg.PreviewRows = flags.previewRows
	}
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return imdblab.LabConfig{}, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath)
		fmt.Fprintf(os.Stderr, "  Ratings: %s\n", cfg.RatingsCSV)
		fmt.Fprintf(os.Stderr, "  Movies: %s\n", cfg.MoviesCSV)
		fmt.Fprintf(os.Stderr, "  Timeout: %s\n", cfg.Timeout)
		fmt.Fprintf(os.Stderr, "  Chart: %t\n", cfg.Chart)
	}
	return cfg, nil
}

// newRunContext returns a context bounded by timeout and cancelled on
// Ctrl+C or SIGTERM.
func newRunContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = imdblab.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
