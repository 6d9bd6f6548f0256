package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/imdblab/internal/tui"
)

const (
	defaultWidth  = 60
	defaultHeight = 15
	minWidth      = 10
	minHeight     = 5

	// markers label points in the grid and the legend, in point order.
	markers = "123456789abcdefghijklmnopqrstuvwxyz"

	overflowMarker  = '*'
	collisionMarker = '+'
)

// TextRenderer draws a scatter plot on a character grid followed by a
// legend mapping each marker to its point label.
type TextRenderer struct {
	out    io.Writer
	width  int
	height int
	styled bool
}

// Option configures a TextRenderer.
type Option func(*TextRenderer)

// WithSize sets the plot area in character cells. Zero keeps the default.
func WithSize(width, height int) Option {
	return func(r *TextRenderer) {
		if width > 0 {
			r.width = max(width, minWidth)
		}
		if height > 0 {
			r.height = max(height, minHeight)
		}
	}
}

// WithStyle enables lipgloss coloring of title, axes and markers.
func WithStyle(styled bool) Option {
	return func(r *TextRenderer) {
		r.styled = styled
	}
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer, opts ...Option) *TextRenderer {
	r := &TextRenderer{
		out:    w,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements Renderer.
func (r *TextRenderer) Render(s Scatter) error {
	var sb strings.Builder

	if s.Title != "" {
		sb.WriteString(r.style(tui.TitleStyle, s.Title))
		sb.WriteString("\n\n")
	}

	points := s.Plottable()
	skipped := len(s.Points) - len(points)
	if len(points) == 0 {
		sb.WriteString(r.style(tui.HelpStyle, "(no data to plot)"))
		sb.WriteString("\n")
		_, err := io.WriteString(r.out, sb.String())
		return err
	}

	xr := newAxisRange(points, func(p Point) float64 { return p.X })
	yr := newAxisRange(points, func(p Point) float64 { return p.Y })
	grid := r.plot(points, xr, yr)

	yTop, yBottom := formatTick(yr.max), formatTick(yr.min)
	gutter := max(len(yTop), len(yBottom))

	if s.YLabel != "" {
		sb.WriteString(r.style(tui.AxisStyle, s.YLabel))
		sb.WriteString("\n")
	}
	for i, row := range grid {
		tick := ""
		switch i {
		case 0:
			tick = yTop
		case len(grid) - 1:
			tick = yBottom
		}
		sb.WriteString(r.style(tui.AxisStyle, fmt.Sprintf("%*s │", gutter, tick)))
		sb.WriteString(r.renderRow(row))
		sb.WriteString("\n")
	}
	sb.WriteString(r.style(tui.AxisStyle, strings.Repeat(" ", gutter)+" └"+strings.Repeat("─", r.width)))
	sb.WriteString("\n")

	xLeft, xRight := formatTick(xr.min), formatTick(xr.max)
	pad := max(1, r.width-len(xLeft)-len(xRight))
	sb.WriteString(r.style(tui.AxisStyle, strings.Repeat(" ", gutter+2)+xLeft+strings.Repeat(" ", pad)+xRight))
	sb.WriteString("\n")
	if s.XLabel != "" {
		indent := gutter + 2 + max(0, (r.width-len(s.XLabel))/2)
		sb.WriteString(r.style(tui.AxisStyle, strings.Repeat(" ", indent)+s.XLabel))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for i, p := range points {
		fmt.Fprintf(&sb, "  %s  %s (%s, %s)\n",
			r.style(tui.PointStyle, string(marker(i))), p.Label, formatTick(p.X), formatTick(p.Y))
	}
	if skipped > 0 {
		sb.WriteString(r.style(tui.HelpStyle, fmt.Sprintf("  %d point(s) without numeric coordinates not plotted", skipped)))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

func (r *TextRenderer) plot(points []Point, xr, yr axisRange) [][]rune {
	grid := make([][]rune, r.height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", r.width))
	}
	for i, p := range points {
		col := xr.scale(p.X, r.width)
		row := r.height - 1 - yr.scale(p.Y, r.height)
		if grid[row][col] != ' ' {
			grid[row][col] = collisionMarker
			continue
		}
		grid[row][col] = marker(i)
	}
	return grid
}

func (r *TextRenderer) renderRow(row []rune) string {
	if !r.styled {
		return string(row)
	}
	var sb strings.Builder
	for _, c := range row {
		if c == ' ' {
			sb.WriteRune(c)
			continue
		}
		sb.WriteString(tui.PointStyle.Render(string(c)))
	}
	return sb.String()
}

func (r *TextRenderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

type axisRange struct {
	min, max float64
}

func newAxisRange(points []Point, value func(Point) float64) axisRange {
	ar := axisRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, p := range points {
		v := value(p)
		ar.min = math.Min(ar.min, v)
		ar.max = math.Max(ar.max, v)
	}
	if ar.min == ar.max {
		ar.min--
		ar.max++
	}
	return ar
}

// scale maps v onto a cell index in [0, cells).
func (ar axisRange) scale(v float64, cells int) int {
	pos := (v - ar.min) / (ar.max - ar.min) * float64(cells-1)
	return min(cells-1, max(0, int(math.Round(pos))))
}

func marker(i int) rune {
	if i < len(markers) {
		return rune(markers[i])
	}
	return overflowMarker
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var _ Renderer = (*TextRenderer)(nil)
