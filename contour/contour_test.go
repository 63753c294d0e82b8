package contour

import (
	"math"
	"testing"
)

// rampGrid returns a grid over [0,1]×[0,1] whose value equals the x
// coordinate, so iso-lines are vertical lines at x = level.
func rampGrid(n int) *Grid {
	g := NewGrid(0, 1, 0, 1, n, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			g.Set(i, j, g.X(i))
		}
	}
	return g
}

func TestGrid_Coordinates(t *testing.T) {
	g := NewGrid(-1, 1, 2, 6, 5, 9)

	c, r := g.Dims()
	if c != 5 || r != 9 {
		t.Fatalf("Dims = (%d, %d), want (5, 9)", c, r)
	}

	if got := g.X(0); got != -1 {
		t.Errorf("X(0) = %v, want -1", got)
	}
	if got := g.X(4); math.Abs(got-1) > 1e-12 {
		t.Errorf("X(4) = %v, want 1", got)
	}
	if got := g.Y(0); got != 2 {
		t.Errorf("Y(0) = %v, want 2", got)
	}
	if got := g.Y(8); math.Abs(got-6) > 1e-12 {
		t.Errorf("Y(8) = %v, want 6", got)
	}

	g.Set(2, 3, 0.25)
	if got := g.At(2, 3); got != 0.25 {
		t.Errorf("At(2, 3) = %v, want 0.25", got)
	}
	if got := g.Z(2, 3); got != 0.25 {
		t.Errorf("Z(2, 3) = %v, want 0.25", got)
	}
}

// TestGrid_CrossingsOnRamp verifies that the iso-level crossing points
// of a linear ramp all sit on the expected vertical line.
func TestGrid_CrossingsOnRamp(t *testing.T) {
	g := rampGrid(21)
	const level = 0.45

	region := g.RegionAbove(level)
	if region.Empty() {
		t.Fatal("region above 0.45 should not be empty on a 0..1 ramp")
	}

	seen := false
	for _, p := range region.Vertices {
		// Border points sit at x >= level; interpolated crossings sit
		// exactly on the iso-line.
		if p.X < level-1e-9 {
			t.Errorf("vertex (%v, %v) lies below the level line", p.X, p.Y)
		}
		if math.Abs(p.X-level) < 1e-9 {
			seen = true
		}
	}
	if !seen {
		t.Error("no interpolated crossing found on the iso-line x = 0.45")
	}
}

func TestGrid_RegionEmpty(t *testing.T) {
	g := rampGrid(21)

	if region := g.RegionAbove(1.5); !region.Empty() {
		t.Errorf("region above 1.5 should be empty, got %d vertices", len(region.Vertices))
	}
	if region := g.RegionBelow(-0.5); !region.Empty() {
		t.Errorf("region below -0.5 should be empty, got %d vertices", len(region.Vertices))
	}
}

// TestGrid_RegionSeparation measures the distance between the above-
// and below-level regions of a ramp, which equals the gap between the
// two iso-lines.
func TestGrid_RegionSeparation(t *testing.T) {
	g := rampGrid(101)

	above := g.RegionAbove(0.7)
	below := g.RegionBelow(0.3)
	if above.Empty() || below.Empty() {
		t.Fatal("both regions should exist on a 0..1 ramp")
	}

	d, ok := MinDistance(above.Vertices, below.Vertices)
	if !ok {
		t.Fatal("MinDistance reported empty input")
	}
	if math.Abs(d-0.4) > 1e-6 {
		t.Errorf("region separation = %v, want 0.4", d)
	}
}

func TestMinDistance(t *testing.T) {
	a := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	b := []Point{{X: 4, Y: 4}, {X: 1, Y: 2}}

	d, ok := MinDistance(a, b)
	if !ok {
		t.Fatal("MinDistance reported empty input")
	}
	if math.Abs(d-2) > 1e-12 {
		t.Errorf("MinDistance = %v, want 2", d)
	}

	if _, ok := MinDistance(nil, b); ok {
		t.Error("empty first set should report ok = false")
	}
	if _, ok := MinDistance(a, nil); ok {
		t.Error("empty second set should report ok = false")
	}
}
