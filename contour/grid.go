// Package contour provides the probability-surface grid and the
// confidence-region geometry derived from it. Regions are plain
// vertex sets over the grid, independent of any rendering library.
package contour

import (
	"math"
)

// Point is a 2-D point in data coordinates.
type Point struct {
	X, Y float64
}

// Grid is a scalar field sampled on a uniform nx×ny lattice. Values
// are stored row-major with the y index varying slowest. Grid also
// satisfies gonum/plot's plotter.GridXYZ, so the same surface feeds
// both the geometry here and the rendered contours.
type Grid struct {
	xmin, ymin float64
	dx, dy     float64
	nx, ny     int
	z          []float64
}

// NewGrid allocates a grid spanning [xmin, xmax] × [ymin, ymax] with
// nx×ny lattice points. Values are zero until set.
func NewGrid(xmin, xmax, ymin, ymax float64, nx, ny int) *Grid {
	return &Grid{
		xmin: xmin,
		ymin: ymin,
		dx:   (xmax - xmin) / float64(nx-1),
		dy:   (ymax - ymin) / float64(ny-1),
		nx:   nx,
		ny:   ny,
		z:    make([]float64, nx*ny),
	}
}

// Set assigns the value at lattice position (i, j), i indexing x.
func (g *Grid) Set(i, j int, v float64) {
	g.z[j*g.nx+i] = v
}

// At returns the value at lattice position (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.z[j*g.nx+i]
}

// Dims returns the number of columns and rows in the grid.
func (g *Grid) Dims() (c, r int) {
	return g.nx, g.ny
}

// Z returns the value at column c, row r.
func (g *Grid) Z(c, r int) float64 {
	return g.At(c, r)
}

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 {
	return g.xmin + float64(c)*g.dx
}

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 {
	return g.ymin + float64(r)*g.dy
}

// MinDistance returns the minimum Euclidean distance between any
// vertex of a and any vertex of b. ok is false when either set is
// empty.
func MinDistance(a, b []Point) (min float64, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	min = math.Inf(1)
	for _, p := range a {
		for _, q := range b {
			dx := p.X - q.X
			dy := p.Y - q.Y
			if d := dx*dx + dy*dy; d < min {
				min = d
			}
		}
	}
	return math.Sqrt(min), true
}
