package contour

// Region is the boundary vertex set of a confidence region: the part
// of the grid where the field is above (or below) a threshold. The
// vertices are the linearly interpolated iso-level crossings plus the
// lattice points where the region meets the grid border, which is the
// vertex set a filled-contour path would carry.
type Region struct {
	Level    float64
	Vertices []Point
}

// Empty reports whether the region has no boundary, i.e. no part of
// the grid satisfies the threshold.
func (r Region) Empty() bool {
	return len(r.Vertices) == 0
}

// RegionAbove returns the boundary of {Z >= level}.
func (g *Grid) RegionAbove(level float64) Region {
	verts := g.crossings(level)
	verts = append(verts, g.borderPoints(func(z float64) bool { return z >= level })...)
	return Region{Level: level, Vertices: verts}
}

// RegionBelow returns the boundary of {Z <= level}.
func (g *Grid) RegionBelow(level float64) Region {
	verts := g.crossings(level)
	verts = append(verts, g.borderPoints(func(z float64) bool { return z <= level })...)
	return Region{Level: level, Vertices: verts}
}

// crossings collects the points where the field crosses level along
// any lattice edge, using linear interpolation along the edge
// (marching-squares vertex placement).
func (g *Grid) crossings(level float64) []Point {
	var pts []Point

	// Horizontal edges
	for j := 0; j < g.ny; j++ {
		for i := 0; i < g.nx-1; i++ {
			z0, z1 := g.At(i, j), g.At(i+1, j)
			if t, ok := crossing(z0, z1, level); ok {
				pts = append(pts, Point{X: g.X(i) + t*g.dx, Y: g.Y(j)})
			}
		}
	}

	// Vertical edges
	for j := 0; j < g.ny-1; j++ {
		for i := 0; i < g.nx; i++ {
			z0, z1 := g.At(i, j), g.At(i, j+1)
			if t, ok := crossing(z0, z1, level); ok {
				pts = append(pts, Point{X: g.X(i), Y: g.Y(j) + t*g.dy})
			}
		}
	}

	return pts
}

// crossing returns the interpolation parameter t in [0, 1] where the
// segment from z0 to z1 crosses level.
func crossing(z0, z1, level float64) (t float64, ok bool) {
	if (z0 < level) == (z1 < level) {
		return 0, false
	}
	if z0 == z1 {
		return 0, false
	}
	return (level - z0) / (z1 - z0), true
}

// borderPoints returns the lattice points on the grid border that
// satisfy keep.
func (g *Grid) borderPoints(keep func(z float64) bool) []Point {
	var pts []Point
	for i := 0; i < g.nx; i++ {
		if keep(g.At(i, 0)) {
			pts = append(pts, Point{X: g.X(i), Y: g.Y(0)})
		}
		if keep(g.At(i, g.ny-1)) {
			pts = append(pts, Point{X: g.X(i), Y: g.Y(g.ny - 1)})
		}
	}
	for j := 1; j < g.ny-1; j++ {
		if keep(g.At(0, j)) {
			pts = append(pts, Point{X: g.X(0), Y: g.Y(j)})
		}
		if keep(g.At(g.nx-1, j)) {
			pts = append(pts, Point{X: g.X(g.nx - 1), Y: g.Y(j)})
		}
	}
	return pts
}
