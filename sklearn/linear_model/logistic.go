// Package linear_model implements the linear probabilistic classifier
// fitted at each sweep distance.
package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/clustersep/core/model"
	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

// LogisticRegression is a binary logistic classifier with
// scikit-learn-compatible defaults (L2 penalty, C=1.0, fitted
// intercept, max_iter=100). The experiment only ever sees two classes,
// so the multiclass strategies are out of scope here.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	penalty      string  // Regularization: "l2", "none"
	c            float64 // Inverse regularization strength (1/alpha)
	fitIntercept bool    // Whether to fit intercept
	maxIter      int     // Maximum iterations
	tol          float64 // Tolerance for stopping

	// Model parameters
	coef_      []float64 // Feature weights
	intercept_ float64   // Bias term
	classes_   []int     // Unique class labels, sorted
	nFeatures_ int
	nIter_     int // Iterations actually run
}

// LogisticRegressionOption is a functional option for LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a LogisticRegression classifier.
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		maxIter:      100,
		tol:          1e-4,
	}

	for _, opt := range opts {
		opt(lr)
	}

	return lr
}

// WithLRPenalty sets the regularization type.
func WithLRPenalty(penalty string) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithLRC sets the inverse regularization strength.
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithLogisticFitIntercept sets whether to fit the intercept.
func WithLogisticFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRMaxIter sets the maximum number of iterations.
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the tolerance for the stopping criterion.
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// Fit trains the classifier by gradient descent on the cross-entropy
// objective. It fails on degenerate input: fewer or more than two
// distinct labels, or numerical instability during optimization.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	lr.extractClasses(y)
	if len(lr.classes_) != 2 {
		return errors.NewValueError("LogisticRegression.Fit",
			"binary classification requires exactly 2 classes in y")
	}

	lr.nFeatures_ = nFeatures
	lr.coef_ = make([]float64, nFeatures)
	lr.intercept_ = 0

	if err := lr.optimize(X, y); err != nil {
		return err
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// extractClasses identifies the sorted unique class labels.
func (lr *LogisticRegression) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)

	for i := 0; i < rows; i++ {
		classMap[int(y.At(i, 0))] = true
	}

	lr.classes_ = lr.classes_[:0]
	for class := range classMap {
		lr.classes_ = append(lr.classes_, class)
	}
	if len(lr.classes_) == 2 && lr.classes_[0] > lr.classes_[1] {
		lr.classes_[0], lr.classes_[1] = lr.classes_[1], lr.classes_[0]
	}
}

// optimize runs gradient descent with a decaying learning rate until
// the gradient norm drops below tol or maxIter is reached.
func (lr *LogisticRegression) optimize(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()

	// 0/1 encoding relative to the sorted classes
	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == lr.classes_[1] {
			yBinary[i] = 1
		}
	}

	baseLearningRate := 1.0
	gradWeights := make([]float64, nFeatures)

	for iter := 0; iter < lr.maxIter; iter++ {
		for j := range gradWeights {
			gradWeights[j] = 0
		}
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.intercept_
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef_[j]
			}
			residual := sigmoid(z) - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range lr.coef_ {
				gradWeights[j] += lambda * lr.coef_[j] / float64(nSamples)
			}
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range lr.coef_ {
			lr.coef_[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			lr.intercept_ -= learningRate * gradIntercept
		}

		lr.nIter_ = iter + 1

		if err := errors.CheckNumericalStability("LogisticRegression.Fit", lr.coef_, iter); err != nil {
			return err
		}
		if err := errors.CheckScalar("LogisticRegression.Fit", lr.intercept_, iter); err != nil {
			return err
		}

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			return nil
		}
	}

	errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	return nil
}

// DecisionFunction returns the raw linear scores b0 + x·w for each row.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "DecisionFunction")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.DecisionFunction", lr.nFeatures_, nFeatures, 1)
	}

	scores := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		z := lr.intercept_
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.coef_[j]
		}
		scores.SetVec(i, z)
	}
	return scores, nil
}

// Predict returns the predicted class label for each row of X.
func (lr *LogisticRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	predictions := mat.NewVecDense(scores.Len(), nil)
	for i := 0; i < scores.Len(); i++ {
		if sigmoid(scores.AtVec(i)) >= 0.5 {
			predictions.SetVec(i, float64(lr.classes_[1]))
		} else {
			predictions.SetVec(i, float64(lr.classes_[0]))
		}
	}
	return predictions, nil
}

// PredictProba returns an n×2 matrix of class probabilities, columns
// ordered by sorted class label.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	probas := mat.NewDense(scores.Len(), 2, nil)
	for i := 0; i < scores.Len(); i++ {
		p1 := sigmoid(scores.AtVec(i))
		probas.Set(i, 0, 1-p1)
		probas.Set(i, 1, p1)
	}
	return probas, nil
}

// Intercept returns the fitted bias term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// Coef returns a copy of the fitted feature weights.
func (lr *LogisticRegression) Coef() []float64 {
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Classes returns the sorted class labels seen during fitting.
func (lr *LogisticRegression) Classes() []int {
	classes := make([]int, len(lr.classes_))
	copy(classes, lr.classes_)
	return classes
}

// NIter returns the number of optimizer iterations actually run.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter_
}

// sigmoid computes the logistic function.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
