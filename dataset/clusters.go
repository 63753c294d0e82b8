// Package dataset generates the synthetic labeled point clouds used by
// the cluster-separation experiment.
package dataset

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

// clusterSeed fixes the PCG stream so repeated calls with identical
// parameters produce bit-identical datasets. Determinism is a
// correctness requirement of the experiment, not an optimization.
const clusterSeed = 0

// clusterOrigin is the center of the class-0 cluster. The class-1
// cluster is centered at the origin plus (distance, distance).
var clusterOrigin = []float64{1, 1}

// GenerateEllipsoidClusters produces two correlated Gaussian clusters
// of nSamples points each, sharing the covariance
//
//	[[std, 0.8*std], [0.8*std, std]]
//
// Class 0 is centered at (1, 1); class 1 is drawn at the same center
// and then shifted by (distance, distance). The returned X has
// 2*nSamples rows and 2 columns; y holds the matching labels, the
// first nSamples zeros and the rest ones.
func GenerateEllipsoidClusters(distance float64, nSamples int, clusterStd float64) (*mat.Dense, *mat.VecDense, error) {
	if nSamples <= 0 {
		return nil, nil, errors.NewValidationError("nSamples", "must be positive", nSamples)
	}
	if clusterStd <= 0 {
		return nil, nil, errors.NewValidationError("clusterStd", "must be positive", clusterStd)
	}

	cov := mat.NewSymDense(2, []float64{
		clusterStd, clusterStd * 0.8,
		clusterStd * 0.8, clusterStd,
	})

	src := rand.NewSource(clusterSeed)
	normal, ok := distmv.NewNormal(clusterOrigin, cov, src)
	if !ok {
		return nil, nil, errors.NewValueError("GenerateEllipsoidClusters", "covariance matrix is not positive definite")
	}

	X := mat.NewDense(2*nSamples, 2, nil)
	y := mat.NewVecDense(2*nSamples, nil)

	point := make([]float64, 2)
	for i := 0; i < nSamples; i++ {
		normal.Rand(point)
		X.SetRow(i, point)
	}
	for i := 0; i < nSamples; i++ {
		normal.Rand(point)
		X.Set(nSamples+i, 0, point[0]+distance)
		X.Set(nSamples+i, 1, point[1]+distance)
		y.SetVec(nSamples+i, 1)
	}

	return X, y, nil
}

// Centroids returns the mean point of each labeled cluster.
func Centroids(X *mat.Dense, y *mat.VecDense) (c0, c1 [2]float64) {
	rows, _ := X.Dims()
	var n0, n1 float64
	for i := 0; i < rows; i++ {
		if y.AtVec(i) == 0 {
			c0[0] += X.At(i, 0)
			c0[1] += X.At(i, 1)
			n0++
		} else {
			c1[0] += X.At(i, 0)
			c1[1] += X.At(i, 1)
			n1++
		}
	}
	if n0 > 0 {
		c0[0] /= n0
		c0[1] /= n0
	}
	if n1 > 0 {
		c1[0] /= n1
		c1[1] /= n1
	}
	return c0, c1
}
