package lab

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vvka-141/imdblab/internal/frame"
	"github.com/vvka-141/imdblab/internal/loader"
	"github.com/vvka-141/imdblab/internal/tui"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// Printer writes the human-readable lab transcript: each statement, its
// parameters and its result.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a Printer. styled enables lipgloss colors.
func NewPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{out: w, styled: styled}
}

// Step prints the heading for step number n of total.
func (p *Printer) Step(n, total int, step Step) {
	heading := fmt.Sprintf("[%d/%d] %s", n, total, step.Name)
	if p.styled {
		heading = tui.TitleStyle.Render(heading)
	}
	fmt.Fprintf(p.out, "\n%s\n", heading)
}

// Statement prints the SQL text and any bound parameters.
func (p *Printer) Statement(sql string, params []any) {
	text := dedent(sql)
	if p.styled {
		text = tui.QueryStyle.Render(text)
	}
	fmt.Fprintf(p.out, "\nSee query...\n\n%s\n", text)
	if len(params) > 0 {
		fmt.Fprintf(p.out, "params: %v\n", params)
	}
}

// Result prints a query result as a table.
func (p *Printer) Result(rs *imdblab.ResultSet) error {
	fmt.Fprintf(p.out, "\nSee query result...\n\n")
	if len(rs.Columns) == 0 {
		fmt.Fprintln(p.out, "(statement returned no columns)")
		return nil
	}
	f, err := frame.New(rs.Columns, rs.Rows)
	if err != nil {
		return err
	}
	if err := f.Render(p.out, p.styled); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "(%d row(s))\n", rs.Len())
	return nil
}

// Load prints the field names read from a source and the first tuples
// inserted from it.
func (p *Printer) Load(report *loader.Report) {
	fmt.Fprintf(p.out, "Read %s, field names: %s\n", report.Path, strings.Join(report.Header, ", "))
	fmt.Fprintf(p.out, "Inserted %d of %d row(s) into %s, %d duplicate(s) ignored\n",
		report.Inserted, report.Read, report.Dataset.Table(), report.Skipped())
	fmt.Fprintf(p.out, "See first %d:\n", len(report.Preview))
	for _, tuple := range report.Preview {
		cells := make([]string, len(tuple))
		for i, v := range tuple {
			cells[i] = frame.FormatValue(v)
		}
		fmt.Fprintf(p.out, "  (%s)\n", strings.Join(cells, ", "))
	}
}

// Frame prints the head of the final frame.
func (p *Printer) Frame(f *frame.Frame, rows int) error {
	heading := fmt.Sprintf("Frame head (%d of %d row(s))", min(rows, f.Len()), f.Len())
	if p.styled {
		heading = tui.SubtitleStyle.Render(heading)
	}
	fmt.Fprintf(p.out, "\n%s\n", heading)
	return f.Head(rows).Render(p.out, p.styled)
}

// Summary prints the closing line of a run.
func (p *Printer) Summary(report *Report) {
	line := fmt.Sprintf("%s Lab run %s finished: %d step(s) in %s",
		tui.SymbolCheck, report.RunID, len(report.Steps), report.Duration.Round(time.Millisecond))
	if p.styled {
		line = tui.SuccessStyle.Render(line)
	}
	fmt.Fprintf(p.out, "\n%s\n", line)
}

// dedent strips the common leading indentation and surrounding blank lines
// from a statement written as an indented Go raw string.
func dedent(sql string) string {
	lines := strings.Split(strings.Trim(sql, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
