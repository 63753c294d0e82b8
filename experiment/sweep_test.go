package experiment

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/clustersep/contour"
	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

// TestBoundary_BackSubstitution checks that the slope/intercept line
// satisfies the linear decision function at every point.
func TestBoundary_BackSubstitution(t *testing.T) {
	tests := []struct {
		beta0, beta1, beta2 float64
	}{
		{-2.0, 1.5, 0.5},
		{0.3, -0.7, 2.1},
		{1.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		slope, intercept := Boundary(tt.beta0, tt.beta1, tt.beta2)
		for _, x1 := range []float64{-5, -1, 0, 0.5, 3, 10} {
			x2 := slope*x1 + intercept
			if v := tt.beta0 + tt.beta1*x1 + tt.beta2*x2; math.Abs(v) > 1e-9 {
				t.Errorf("betas (%v, %v, %v): decision function = %v at x1 = %v, want 0",
					tt.beta0, tt.beta1, tt.beta2, v, x1)
			}
		}
	}
}

// TestBoundary_ZeroBeta2 checks that the undefined-result signal is
// preserved rather than replaced with a default.
func TestBoundary_ZeroBeta2(t *testing.T) {
	slope, intercept := Boundary(1.0, 2.0, 0)
	if !math.IsInf(slope, 0) && !math.IsNaN(slope) {
		t.Errorf("slope = %v, want a non-finite value", slope)
	}
	if !math.IsInf(intercept, 0) && !math.IsNaN(intercept) {
		t.Errorf("intercept = %v, want a non-finite value", intercept)
	}
}

func TestMeasureMargin_Ramp(t *testing.T) {
	g := contour.NewGrid(0, 1, 0, 1, 101, 101)
	for j := 0; j < 101; j++ {
		for i := 0; i < 101; i++ {
			g.Set(i, j, g.X(i))
		}
	}

	margin := MeasureMargin(g)
	if !margin.Available {
		t.Fatalf("margin should be available on a 0..1 ramp: %s", margin.Reason)
	}
	// Gap between the 0.7 and 0.3 iso-lines.
	if math.Abs(margin.Value-0.4) > 1e-6 {
		t.Errorf("margin = %v, want 0.4", margin.Value)
	}
}

func TestMeasureMargin_Unavailable(t *testing.T) {
	g := contour.NewGrid(0, 1, 0, 1, 11, 11)
	for j := 0; j < 11; j++ {
		for i := 0; i < 11; i++ {
			g.Set(i, j, 0.5)
		}
	}

	margin := MeasureMargin(g)
	if margin.Available {
		t.Fatalf("margin should be unavailable on a constant 0.5 surface, got %v", margin.Value)
	}
	if margin.Reason == "" {
		t.Error("unavailable margin should carry a reason")
	}
	if !math.IsNaN(margin.Float()) {
		t.Errorf("Float() = %v, want NaN for an unavailable margin", margin.Float())
	}
}

func TestLinspace(t *testing.T) {
	got := linspace(0.25, 2.0, 8)
	want := []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := linspace(0.25, 2.0, 1); len(got) != 1 || got[0] != 0.25 {
		t.Errorf("single-step linspace = %v, want [0.25]", got)
	}
}

func TestRunSweep_InvalidSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 0
	if _, err := RunSweep(cfg); err == nil {
		t.Error("steps = 0 should be rejected, a figure needs at least one panel")
	}
}

// TestRunSweep_EndToEnd runs the reference configuration and checks
// the recorded sweep against its documented behavior.
func TestRunSweep_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full sweep in short mode")
	}

	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	cfg := DefaultConfig()
	cfg.ResultDir = t.TempDir()

	result, err := RunSweep(cfg)
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if len(result.Records) != 8 {
		t.Fatalf("expected 8 records, got %d", len(result.Records))
	}

	wantDistances := []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}
	for i, rec := range result.Records {
		if math.Abs(rec.Distance-wantDistances[i]) > 1e-12 {
			t.Errorf("record %d: distance = %v, want %v", i, rec.Distance, wantDistances[i])
		}
	}

	// Well-separated clusters must be easier to classify than heavily
	// overlapping ones.
	first, last := result.Records[0], result.Records[7]
	if last.Loss >= first.Loss {
		t.Errorf("loss at distance 2.0 (%v) should be below loss at 0.25 (%v)", last.Loss, first.Loss)
	}

	// At the reference overlap the 70%-confidence regions both exist
	// in the grid, so a finite margin is expected.
	if !first.Margin.Available {
		t.Errorf("margin at distance 0.25 should be available: %s", first.Margin.Reason)
	}
	if first.Margin.Available && (first.Margin.Value < 0 || math.IsNaN(first.Margin.Value)) {
		t.Errorf("margin at distance 0.25 = %v, want a finite non-negative value", first.Margin.Value)
	}

	// The derived line must satisfy the decision function wherever
	// beta2 is non-zero.
	for i, rec := range result.Records {
		if rec.Beta2 == 0 {
			continue
		}
		for _, x1 := range []float64{0, 1, 2} {
			x2 := rec.Slope*x1 + rec.Intercept
			if v := rec.Beta0 + rec.Beta1*x1 + rec.Beta2*x2; math.Abs(v) > 1e-9 {
				t.Errorf("record %d: decision function = %v on the derived boundary", i, v)
			}
		}
	}

	for _, name := range []string{panelsFile, trendsFile} {
		if _, err := os.Stat(filepath.Join(cfg.ResultDir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}

	entries, err := os.ReadDir(cfg.ResultDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected exactly two files in the result directory, got %d", len(entries))
	}
}
