package imdblab_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

func TestLabConfig_Validate_Defaults(t *testing.T) {
	cfg := imdblab.DefaultLabConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "imdb_lab.db", cfg.DatabasePath)
	assert.Equal(t, "ratings.csv", cfg.RatingsCSV)
	assert.Equal(t, "movies.csv", cfg.MoviesCSV)
	assert.True(t, cfg.Chart)
}

func TestLabConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := imdblab.LabConfig{Timeout: -1, PreviewRows: -1}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrInvalidConfig))

	msg := err.Error()
	for _, want := range []string{"DatabasePath", "RatingsCSV", "MoviesCSV", "timeout", "preview rows"} {
		assert.True(t, strings.Contains(msg, want), "expected %q in %q", want, msg)
	}
}

func TestLabConfig_Validate_NegativeChartSize(t *testing.T) {
	cfg := imdblab.DefaultLabConfig()
	cfg.ChartWidth = -10

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart dimensions")
}

func TestResultSet_LenOnNil(t *testing.T) {
	var rs *imdblab.ResultSet
	assert.Equal(t, 0, rs.Len())
	assert.True(t, rs.Empty())

	rs = &imdblab.ResultSet{Columns: []string{"a"}, Rows: [][]any{{int64(1)}}}
	assert.Equal(t, 1, rs.Len())
	assert.False(t, rs.Empty())
}
