// Package frame holds a small column-labelled table of query results, the
// shape handed to the chart collaborator at the end of a lab run.
package frame

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vvka-141/imdblab/internal/tui"
)

// ErrUnknownColumn is returned when a column name is not in the frame.
var ErrUnknownColumn = errors.New("unknown column")

// Frame is an immutable table of rows under named columns.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New builds a frame. Every row must have exactly one value per column and
// column names must be unique.
func New(columns []string, rows [][]any) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	copied := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d value(s), expected %d", i, len(row), len(columns))
		}
		copied[i] = append([]any(nil), row...)
	}

	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns the i-th row.
func (f *Frame) Row(i int) []any {
	return append([]any(nil), f.rows[i]...)
}

// Head returns a frame with at most the first n rows.
func (f *Frame) Head(n int) *Frame {
	n = max(0, min(n, len(f.rows)))
	return &Frame{columns: f.columns, index: f.index, rows: f.rows[:n]}
}

// Column returns every value of the named column.
func (f *Frame) Column(name string) ([]any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]any, len(f.rows))
	for r, row := range f.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats returns the named column coerced to float64. NULL and values that
// do not parse as numbers become NaN.
func (f *Frame) Floats(name string) ([]float64, error) {
	values, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = toFloat(v)
	}
	return out, nil
}

// Strings returns the named column formatted as text. NULL becomes "".
func (f *Frame) Strings(name string) ([]string, error) {
	values, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = FormatValue(v)
		}
	}
	return out, nil
}

// Render writes the frame as a bordered table. When styled is false no
// color or emphasis is applied.
func (f *Frame) Render(w io.Writer, styled bool) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(f.columns...)

	for _, row := range f.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		t.Row(cells...)
	}

	if styled {
		t.BorderStyle(tui.BorderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return tui.HeaderCellStyle
				}
				return tui.CellStyle
			})
	} else {
		plain := lipgloss.NewStyle().Padding(0, 1)
		t.StyleFunc(func(_, _ int) lipgloss.Style { return plain })
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// String renders the frame without styling.
func (f *Frame) String() string {
	var sb strings.Builder
	_ = f.Render(&sb, false)
	return sb.String()
}

// FormatValue renders a single store value the way result tables show it.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
