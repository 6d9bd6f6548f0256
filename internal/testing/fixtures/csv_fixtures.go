package fixtures

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// CSVBuilder provides a fluent API for building CSV sources used in
// loader and lab tests.
//
// Example usage:
//
//	path := fixtures.NewRatingsCSV().
//	    AddRow("tt0001", "8.1", "450000", "8").
//	    WithBOM().
//	    Write(t, dir, "ratings.csv")
type CSVBuilder struct {
	header []string
	rows   [][]string
	bom    bool
}

// NewCSV creates a builder with an arbitrary header.
func NewCSV(header ...string) *CSVBuilder {
	return &CSVBuilder{header: header}
}

// NewRatingsCSV creates a builder with the ratings.csv header.
func NewRatingsCSV() *CSVBuilder {
	return NewCSV("movie_id", "avg_rating", "total_ratings", "median_rating")
}

// NewMoviesCSV creates a builder with the movies.csv header.
func NewMoviesCSV() *CSVBuilder {
	return NewCSV("id", "title", "year", "duration", "country", "worldwide_gross_income", "production_company")
}

// AddRow appends one data row.
func (b *CSVBuilder) AddRow(fields ...string) *CSVBuilder {
	b.rows = append(b.rows, fields)
	return b
}

// WithBOM prefixes the output with a UTF-8 byte-order mark, as spreadsheet
// exports do.
func (b *CSVBuilder) WithBOM() *CSVBuilder {
	b.bom = true
	return b
}

// Build renders the CSV content.
func (b *CSVBuilder) Build() string {
	var buf bytes.Buffer
	if b.bom {
		buf.WriteString("\ufeff")
	}
	w := csv.NewWriter(&buf)
	_ = w.Write(b.header)
	for _, row := range b.rows {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}

// Write renders the CSV into dir/name and returns the file path.
func (b *CSVBuilder) Write(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.Build()), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// SampleRatings returns a small ratings source. tt0007 has no rating and
// tt9999 has no movie, so inner joins drop both.
func SampleRatings() *CSVBuilder {
	return NewRatingsCSV().
		AddRow("tt0001", "8.1", "450000", "8").
		AddRow("tt0002", "8.4", "1050000", "10").
		AddRow("tt0003", "8.5", "780000", "10").
		AddRow("tt0004", "8.3", "720000", "8").
		AddRow("tt0005", "7.4", "610000", "8").
		AddRow("tt0006", "8.3", "620000", "9").
		AddRow("tt0008", "8.2", "1010000", "9").
		AddRow("tt9999", "6.0", "10", "10")
}

// SampleMovies returns a small movies source with empty gross income and
// production company placeholders.
func SampleMovies() *CSVBuilder {
	return NewMoviesCSV().
		AddRow("tt0001", "Warrior", "2011", "140", "USA", "23057115", "Lionsgate").
		AddRow("tt0002", "Wall-E", "2008", "98", "USA", "521311860", "Pixar").
		AddRow("tt0003", "Whiplash", "2014", "106", "USA", "49396747", "").
		AddRow("tt0004", "Amélie", "2001", "122", "France", "174200000", "Claudie Ossard").
		AddRow("tt0005", "Wonder Woman", "2017", "141", "USA", "", "Warner Bros.").
		AddRow("tt0006", "Heat", "1995", "170", "USA", "187436818", "Warner Bros.").
		AddRow("tt0007", "Wolfwalkers", "2020", "103", "Ireland", "", "").
		AddRow("tt0008", "Up", "2009", "96", "USA", "735099082", "Pixar")
}

// SampleTitlesStartingWithW are the sample movies that have a rating and a
// title starting with W, in movies.csv order.
var SampleTitlesStartingWithW = []string{"Warrior", "Wall-E", "Whiplash", "Wonder Woman"}
