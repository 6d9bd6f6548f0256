package chart

import (
	"math"
)

// Point is one plotted observation.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Scatter is a titled set of points with axis labels.
type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	Points []Point
}

// Plottable returns the points with finite coordinates, in order.
func (s Scatter) Plottable() []Point {
	out := make([]Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Renderer draws a scatter plot somewhere.
type Renderer interface {
	Render(s Scatter) error
}

// NopRenderer discards every plot. Used when charting is disabled.
type NopRenderer struct{}

// Render implements Renderer.
func (NopRenderer) Render(Scatter) error { return nil }

var _ Renderer = NopRenderer{}
