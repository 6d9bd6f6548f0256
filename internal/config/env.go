package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// Environment variables recognized by imdblab.
const (
	EnvDatabase    = "IMDBLAB_DB"
	EnvRatingsCSV  = "IMDBLAB_RATINGS_CSV"
	EnvMoviesCSV   = "IMDBLAB_MOVIES_CSV"
	EnvTimeout     = "IMDBLAB_TIMEOUT"
	EnvNoChart     = "IMDBLAB_NO_CHART"
	EnvPreviewRows = "IMDBLAB_PREVIEW_ROWS"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFiles loads .env-format files into the process environment.
// Variables already set are never overridden. With no paths, the default
// .env is loaded if it exists. Explicitly named files must exist.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}
		return nil
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: failed to load env file %s: %w", imdblab.ErrInvalidConfig, path, err)
		}
	}
	return nil
}

// ApplyEnv overlays IMDBLAB_* variables onto cfg. A nil lookup uses the
// process environment.
func ApplyEnv(cfg *imdblab.LabConfig, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvRatingsCSV); ok && v != "" {
		cfg.RatingsCSV = v
	}
	if v, ok := lookup(EnvMoviesCSV); ok && v != "" {
		cfg.MoviesCSV = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, imdblab.ErrInvalidConfig)
		}
		cfg.Timeout = parsed
	}
	if v, ok := lookup(EnvNoChart); ok && v != "" {
		noChart, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoChart, v, imdblab.ErrInvalidConfig)
		}
		cfg.Chart = !noChart
	}
	if v, ok := lookup(EnvPreviewRows); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPreviewRows, v, imdblab.ErrInvalidConfig)
		}
		cfg.PreviewRows = n
	}
	return nil
}
