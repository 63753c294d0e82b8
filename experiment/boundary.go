// Package experiment drives the shift-distance sweep: it fits a
// classifier per distance, derives the decision boundary and margin
// geometry, accumulates the records and renders the two result
// figures.
package experiment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/clustersep/contour"
	"github.com/YuminosukeSato/clustersep/pkg/errors"
	"github.com/YuminosukeSato/clustersep/sklearn/linear_model"
)

// marginLevel is the confidence level whose contours define the margin
// width.
const marginLevel = 0.7

// Boundary converts the fitted weights beta0 + beta1*x1 + beta2*x2 = 0
// into slope/intercept form x2 = slope*x1 + intercept. When beta2 is
// zero the results are non-finite; callers must carry that signal
// through rather than substituting a default.
func Boundary(beta0, beta1, beta2 float64) (slope, intercept float64) {
	return -beta1 / beta2, -beta0 / beta2
}

// MarginWidth is the result of a margin measurement: either a value,
// or a reason why none exists at this distance.
type MarginWidth struct {
	Value     float64
	Available bool
	Reason    string
}

// Float returns the margin value, or NaN when unavailable.
func (m MarginWidth) Float() float64 {
	if !m.Available {
		return math.NaN()
	}
	return m.Value
}

// ProbabilityGrid evaluates P(class=1) on a size×size lattice spanning
// the bounding box of X expanded by one unit on each side.
func ProbabilityGrid(model *linear_model.LogisticRegression, X *mat.Dense, size int) (*contour.Grid, error) {
	xmin, xmax, ymin, ymax := boundingBox(X)

	grid := contour.NewGrid(xmin, xmax, ymin, ymax, size, size)

	points := mat.NewDense(size*size, 2, nil)
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			points.Set(j*size+i, 0, grid.X(i))
			points.Set(j*size+i, 1, grid.Y(j))
		}
	}

	proba, err := model.PredictProba(points)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating probability surface")
	}

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			grid.Set(i, j, proba.At(j*size+i, 1))
		}
	}

	return grid, nil
}

// boundingBox returns the data extent expanded by one unit per side.
func boundingBox(X *mat.Dense) (xmin, xmax, ymin, ymax float64) {
	rows, _ := X.Dims()
	xmin, ymin = X.At(0, 0), X.At(0, 1)
	xmax, ymax = xmin, ymin
	for i := 1; i < rows; i++ {
		x, y := X.At(i, 0), X.At(i, 1)
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
	}
	return xmin - 1, xmax + 1, ymin - 1, ymax + 1
}

// MeasureMargin extracts the 70%-confidence region of each class from
// the probability grid and returns the minimum distance between their
// vertex sets. An empty region on either side yields an unavailable
// result, never zero.
func MeasureMargin(grid *contour.Grid) MarginWidth {
	class1 := grid.RegionAbove(marginLevel)
	class0 := grid.RegionBelow(1 - marginLevel)

	if class1.Empty() {
		return MarginWidth{Reason: fmt.Sprintf("no class-1 region at the %.1f level", marginLevel)}
	}
	if class0.Empty() {
		return MarginWidth{Reason: fmt.Sprintf("no class-0 region at the %.1f level", marginLevel)}
	}

	d, ok := contour.MinDistance(class1.Vertices, class0.Vertices)
	if !ok {
		return MarginWidth{Reason: "confidence regions have no vertices"}
	}
	return MarginWidth{Value: d, Available: true}
}
