package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/imdblab/pkg/imdblab"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one data row keyed by header field name.
// Fields missing from a short row are absent from the map.
type Record map[string]string

// Table is a fully read source: its header and every record in file order.
type Table struct {
	Path    string
	Header  []string
	Records []Record
}

// Reader streams records from a delimited source.
// Not safe for concurrent use.
type Reader struct {
	name   string
	csv    *csv.Reader
	header []string
	closer io.Closer
}

// Open opens the file at path and reads its header row.
// The caller must Close the returned Reader.
// A source with no header line, including a 0-byte file, is ErrInvalidSource.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imdblab.ErrSourceNotFound, err)
	}

	r, err := newReader(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader reads the header row from src and returns a Reader over the
// remaining lines. name is only used in error messages.
func NewReader(name string, src io.Reader) (*Reader, error) {
	return newReader(name, src)
}

func newReader(name string, src io.Reader) (*Reader, error) {
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	// A bare quote inside an unquoted field is kept as a literal character.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s has no header row: %w", name, imdblab.ErrInvalidSource)
	}
	if err != nil {
		return nil, wrapParseError(name, err)
	}

	return &Reader{
		name:   name,
		csv:    cr,
		header: header,
	}, nil
}

// Header returns the field names from the first line.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Read returns the next record, or io.EOF when the source is exhausted.
// Blank lines are skipped.
func (r *Reader) Read() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, wrapParseError(r.name, err)
	}

	rec := make(Record, len(r.header))
	for i, name := range r.header {
		if i >= len(fields) {
			break
		}
		rec[name] = fields[i]
	}
	return rec, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadAll opens path and reads every record into memory.
func ReadAll(path string) (*Table, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	table := &Table{
		Path:   path,
		Header: r.Header(),
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// Missing returns the names in required that the header does not carry.
func (t *Table) Missing(required []string) []string {
	have := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		have[h] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func wrapParseError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%s line %d: %w: %v", name, parseErr.Line, imdblab.ErrInvalidSource, parseErr.Err)
	}
	return fmt.Errorf("failed to read %s: %w", name, err)
}
