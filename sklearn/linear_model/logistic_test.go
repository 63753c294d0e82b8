package linear_model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

// TestLogisticRegression_FitPredict_Binary tests binary classification
// on linearly separable data.
func TestLogisticRegression_FitPredict_Binary(t *testing.T) {
	// Class 0: points around (1, 1)
	// Class 1: points around (3, 3)
	X := mat.NewDense(6, 2, []float64{
		0.5, 0.5,
		1.0, 1.5,
		1.5, 1.0,
		3.0, 2.5,
		2.5, 3.0,
		3.5, 3.5,
	})
	y := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})

	lr := NewLogisticRegression(
		WithLRMaxIter(1000),
		WithLRTol(1e-4),
	)

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	predictions, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}

	for i := 0; i < 6; i++ {
		if predictions.AtVec(i) != y.AtVec(i) {
			t.Errorf("Sample %d: expected %v, got %v", i, y.AtVec(i), predictions.AtVec(i))
		}
	}
}

func TestLogisticRegression_PredictProba(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		4, 3,
		4, 4,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	lr := NewLogisticRegression(WithLRMaxIter(500))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	proba, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("Failed to predict probabilities: %v", err)
	}

	rows, cols := proba.Dims()
	if rows != 4 || cols != 2 {
		t.Fatalf("expected 4x2 probability matrix, got %dx%d", rows, cols)
	}

	for i := 0; i < rows; i++ {
		sum := proba.At(i, 0) + proba.At(i, 1)
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("row %d: probabilities sum to %v, want 1", i, sum)
		}
		p := proba.At(i, 1)
		if p < 0 || p > 1 {
			t.Errorf("row %d: P(class=1) = %v out of [0, 1]", i, p)
		}
	}

	// Class-1 samples should get a higher class-1 probability than
	// class-0 samples.
	if proba.At(3, 1) <= proba.At(0, 1) {
		t.Errorf("expected P(class=1) ordering: sample 3 (%v) > sample 0 (%v)",
			proba.At(3, 1), proba.At(0, 1))
	}
}

func TestLogisticRegression_NotFitted(t *testing.T) {
	lr := NewLogisticRegression()
	X := mat.NewDense(1, 2, []float64{1, 1})

	if _, err := lr.Predict(X); err == nil {
		t.Error("Predict on unfitted model should fail")
	}

	_, err := lr.PredictProba(X)
	if err == nil {
		t.Fatal("PredictProba on unfitted model should fail")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %v", err)
	}
}

func TestLogisticRegression_SingleClass(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewVecDense(4, []float64{1, 1, 1, 1})

	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err == nil {
		t.Error("fitting on a single class should fail")
	}
}

func TestLogisticRegression_DimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})
	y := mat.NewVecDense(2, []float64{0, 1})

	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err == nil {
		t.Error("mismatched sample counts should fail")
	}
}

// TestLogisticRegression_ConvergenceWarning checks that exhausting the
// iteration budget emits a warning rather than an error.
func TestLogisticRegression_ConvergenceWarning(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1.1, 0.9,
		1.05, 1.1,
		0.9, 1.05,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	lr := NewLogisticRegression(WithLRMaxIter(2), WithLRTol(1e-12))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit should succeed despite non-convergence: %v", err)
	}

	var conv *errors.ConvergenceWarning
	if captured == nil || !errors.As(captured, &conv) {
		t.Errorf("expected a ConvergenceWarning, got %v", captured)
	}
}

func TestLogisticRegression_Accessors(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		3, 3,
		4, 4,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	lr := NewLogisticRegression(WithLRMaxIter(300))
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}

	coef := lr.Coef()
	if len(coef) != 2 {
		t.Fatalf("expected 2 coefficients, got %d", len(coef))
	}

	classes := lr.Classes()
	if len(classes) != 2 || classes[0] != 0 || classes[1] != 1 {
		t.Errorf("expected classes [0 1], got %v", classes)
	}

	if lr.NIter() <= 0 {
		t.Errorf("expected positive iteration count, got %d", lr.NIter())
	}

	// Coef returns a copy; mutating it must not affect the model.
	coef[0] = 1e9
	if lr.Coef()[0] == 1e9 {
		t.Error("Coef() exposed internal state")
	}
}
