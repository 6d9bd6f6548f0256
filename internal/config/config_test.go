package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/imdblab/pkg/imdblab"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `database: lab.db
ratings_csv: data/ratings.csv
movies_csv: data/movies.csv
timeout: 10m
preview_rows: 3
chart:
  enabled: false
  width: 72
  height: 20
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "lab.db", cfg.Database)
	assert.Equal(t, "data/ratings.csv", cfg.RatingsCSV)
	assert.Equal(t, "data/movies.csv", cfg.MoviesCSV)
	assert.Equal(t, "10m", cfg.Timeout)
	assert.Equal(t, 3, cfg.PreviewRows)
	require.NotNil(t, cfg.Chart.Enabled)
	assert.False(t, *cfg.Chart.Enabled)
	assert.Equal(t, 72, cfg.Chart.Width)
	assert.Equal(t, 20, cfg.Chart.Height)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "database: other.db\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "other.db", cfg.Database)
	assert.Equal(t, "", cfg.RatingsCSV)
	assert.Nil(t, cfg.Chart.Enabled)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{{invalid")

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))
	assert.Nil(t, cfg)
}

func TestApplyTo_KeepsDefaultsForUnsetFields(t *testing.T) {
	cfg := imdblab.DefaultLabConfig()
	require.NoError(t, (&ProjectConfig{MoviesCSV: "m.csv"}).ApplyTo(&cfg))

	assert.Equal(t, imdblab.DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, imdblab.DefaultRatingsCSV, cfg.RatingsCSV)
	assert.Equal(t, "m.csv", cfg.MoviesCSV)
	assert.Equal(t, imdblab.DefaultTimeout, cfg.Timeout)
	assert.True(t, cfg.Chart)
}

func TestApplyTo_InvalidTimeout(t *testing.T) {
	cfg := imdblab.DefaultLabConfig()
	err := (&ProjectConfig{Timeout: "soon"}).ApplyTo(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))
}

func TestResolve_DefaultsWithoutFile(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := Resolve("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, imdblab.DefaultLabConfig(), cfg)
}

func TestResolve_ReadsWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "database: from-file.db\ntimeout: 30s\n")
	testChdir(t, dir)

	cfg, err := Resolve("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestResolve_ExplicitPathMustExist(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestResolve_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "database: from-file.db\nratings_csv: file-ratings.csv\n")
	env := map[string]string{
		EnvDatabase: "from-env.db",
		EnvNoChart:  "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := Resolve(path, lookup)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DatabasePath)
	assert.Equal(t, "file-ratings.csv", cfg.RatingsCSV)
	assert.False(t, cfg.Chart)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg imdblab.LabConfig)
		wantErr bool
	}{
		{
			name: "paths",
			env:  map[string]string{EnvRatingsCSV: "r.csv", EnvMoviesCSV: "m.csv"},
			check: func(t *testing.T, cfg imdblab.LabConfig) {
				assert.Equal(t, "r.csv", cfg.RatingsCSV)
				assert.Equal(t, "m.csv", cfg.MoviesCSV)
			},
		},
		{
			name: "timeout",
			env:  map[string]string{EnvTimeout: "90s"},
			check: func(t *testing.T, cfg imdblab.LabConfig) {
				assert.Equal(t, 90*time.Second, cfg.Timeout)
			},
		},
		{
			name: "no chart false keeps chart",
			env:  map[string]string{EnvNoChart: "0"},
			check: func(t *testing.T, cfg imdblab.LabConfig) {
				assert.True(t, cfg.Chart)
			},
		},
		{
			name: "preview rows",
			env:  map[string]string{EnvPreviewRows: "2"},
			check: func(t *testing.T, cfg imdblab.LabConfig) {
				assert.Equal(t, 2, cfg.PreviewRows)
			},
		},
		{
			name: "empty values are ignored",
			env:  map[string]string{EnvDatabase: ""},
			check: func(t *testing.T, cfg imdblab.LabConfig) {
				assert.Equal(t, imdblab.DefaultDatabasePath, cfg.DatabasePath)
			},
		},
		{name: "bad timeout", env: map[string]string{EnvTimeout: "later"}, wantErr: true},
		{name: "bad no chart", env: map[string]string{EnvNoChart: "maybe"}, wantErr: true},
		{name: "bad preview rows", env: map[string]string{EnvPreviewRows: "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := imdblab.DefaultLabConfig()
			err := ApplyEnv(&cfg, func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestApplyEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv(EnvDatabase, "process.db")

	cfg := imdblab.DefaultLabConfig()
	require.NoError(t, ApplyEnv(&cfg, nil))
	assert.Equal(t, "process.db", cfg.DatabasePath)
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.env")
	require.NoError(t, os.WriteFile(path, []byte("# lab settings\nIMDBLAB_MOVIES_CSV=\"env-movies.csv\"\n"), 0644))
	t.Setenv(EnvMoviesCSV, "")
	require.NoError(t, os.Unsetenv(EnvMoviesCSV))

	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "env-movies.csv", os.Getenv(EnvMoviesCSV))
}

func TestLoadEnvFiles_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.env")
	require.NoError(t, os.WriteFile(path, []byte("IMDBLAB_DB=file.db\n"), 0644))
	t.Setenv(EnvDatabase, "shell.db")

	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "shell.db", os.Getenv(EnvDatabase))
}

func TestLoadEnvFiles_MissingFiles(t *testing.T) {
	testChdir(t, t.TempDir())
	assert.NoError(t, LoadEnvFiles(), "a missing default .env is tolerated")

	err := LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))
}
