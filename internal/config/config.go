package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ChartConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Width   int   `yaml:"width,omitempty"`
	Height  int   `yaml:"height,omitempty"`
}

type ProjectConfig struct {
	Database    string      `yaml:"database"`
	RatingsCSV  string      `yaml:"ratings_csv"`
	MoviesCSV   string      `yaml:"movies_csv"`
	Timeout     string      `yaml:"timeout"`
	PreviewRows int         `yaml:"preview_rows"`
	Chart       ChartConfig `yaml:"chart"`
}

const ConfigFileName = "imdblab.yaml"

// Load reads imdblab.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w: %w", path, imdblab.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// ApplyTo overlays every field set in the file onto cfg.
func (p *ProjectConfig) ApplyTo(cfg *imdblab.LabConfig) error {
	if p.Database != "" {
		cfg.DatabasePath = p.Database
	}
	if p.RatingsCSV != "" {
		cfg.RatingsCSV = p.RatingsCSV
	}
	if p.MoviesCSV != "" {
		cfg.MoviesCSV = p.MoviesCSV
	}
	if p.Timeout != "" {
		parsed, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in %s: %w: %w", ConfigFileName, imdblab.ErrInvalidConfig, err)
		}
		cfg.Timeout = parsed
	}
	if p.PreviewRows != 0 {
		cfg.PreviewRows = p.PreviewRows
	}
	if p.Chart.Enabled != nil {
		cfg.Chart = *p.Chart.Enabled
	}
	if p.Chart.Width != 0 {
		cfg.ChartWidth = p.Chart.Width
	}
	if p.Chart.Height != 0 {
		cfg.ChartHeight = p.Chart.Height
	}
	return nil
}

// Resolve builds a LabConfig from built-in defaults, then the project config
// file, then environment variables. An empty configPath means imdblab.yaml in
// the working directory, which may be absent; an explicit path must exist.
func Resolve(configPath string, lookup LookupFunc) (imdblab.LabConfig, error) {
	cfg := imdblab.DefaultLabConfig()

	var (
		projectCfg *ProjectConfig
		err        error
	)
	if configPath == "" {
		projectCfg, err = Load(".")
		if errors.Is(err, ErrConfigNotFound) {
			err = nil
		}
	} else {
		projectCfg, err = LoadFile(configPath)
		if errors.Is(err, ErrConfigNotFound) {
			err = fmt.Errorf("%w: %s does not exist: %w", imdblab.ErrInvalidConfig, configPath, err)
		}
	}
	if err != nil {
		return cfg, err
	}

	if projectCfg != nil {
		if err := projectCfg.ApplyTo(&cfg); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}
