// Package clustersep studies how the separation distance between two
// Gaussian point clusters shapes a fitted linear classifier.
//
// For a sweep of shift distances it generates a pair of correlated 2-D
// Gaussian clusters, fits a binary logistic regression, derives the
// decision boundary in slope/intercept form, measures the width of the
// gap between the 70%-confidence regions of the two classes, and
// renders the per-distance panels and the aggregate parameter trends
// as PNG figures.
//
// # Layout
//
//   - cmd/clustersep: the command-line entry point
//   - dataset: deterministic synthetic cluster generation
//   - sklearn/linear_model: the binary logistic classifier
//   - metrics: logistic loss and accuracy
//   - contour: probability grid and confidence-region geometry
//   - experiment: the sweep driver and figure rendering
//
// # Usage
//
//	go run ./cmd/clustersep -start 0.25 -end 2.0 -steps 8
//
// writes results/dataset.png and
// results/parameters_vs_shift_distance.png.
package clustersep
