// Package metrics implements the evaluation metrics tracked by the
// experiment sweep.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

// probaEps clips predicted probabilities away from {0, 1} so the log
// terms stay finite, matching scikit-learn's log_loss behavior.
const probaEps = 1e-15

// LogLoss computes the cross-entropy between binary labels and
// predicted class probabilities. proba must be an n×2 matrix whose
// second column is P(class=1), the layout produced by PredictProba.
func LogLoss(yTrue *mat.VecDense, proba mat.Matrix) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("LogLoss", "empty label vector")
	}

	rows, cols := proba.Dims()
	if rows != n {
		return 0, errors.NewDimensionError("LogLoss", n, rows, 0)
	}
	if cols != 2 {
		return 0, errors.NewDimensionError("LogLoss", 2, cols, 1)
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := proba.At(i, 1)
		if p < probaEps {
			p = probaEps
		} else if p > 1-probaEps {
			p = 1 - probaEps
		}
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}

	return sum / float64(n), nil
}

// Accuracy computes the fraction of labels predicted correctly.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}
