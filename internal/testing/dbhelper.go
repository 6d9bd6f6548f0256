package testing

import (
	"path/filepath"
	"testing"

	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/testing/fixtures"
)

// NewTestConnector returns a connector for a fresh database file inside
// t.TempDir(). The file is removed with the temp directory.
func NewTestConnector(t *testing.T) *db.SQLiteConnector {
	t.Helper()
	return db.NewSQLiteConnector(filepath.Join(t.TempDir(), "imdb_lab.db"))
}

// WriteSampleSources writes the sample ratings.csv and movies.csv into a
// temp directory and returns their paths.
func WriteSampleSources(t *testing.T) (ratingsPath, moviesPath string) {
	t.Helper()
	dir := t.TempDir()
	ratingsPath = fixtures.SampleRatings().Write(t, dir, "ratings.csv")
	moviesPath = fixtures.SampleMovies().Write(t, dir, "movies.csv")
	return ratingsPath, moviesPath
}
