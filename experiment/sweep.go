package experiment

import (
	"log/slog"
	"os"

	"gonum.org/v1/plot"

	"github.com/YuminosukeSato/clustersep/dataset"
	"github.com/YuminosukeSato/clustersep/metrics"
	"github.com/YuminosukeSato/clustersep/pkg/errors"
	"github.com/YuminosukeSato/clustersep/pkg/log"
	"github.com/YuminosukeSato/clustersep/sklearn/linear_model"
)

// Config holds the sweep parameters. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Start      float64 // First shift distance
	End        float64 // Last shift distance, inclusive
	Steps      int     // Number of distances, endpoints included
	NSamples   int     // Samples per cluster
	ClusterStd float64 // Cluster spread parameter
	GridSize   int     // Probability-surface resolution per axis
	ResultDir  string  // Output directory for the two figures
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Start:      0.25,
		End:        2.0,
		Steps:      8,
		NSamples:   100,
		ClusterStd: 0.5,
		GridSize:   200,
		ResultDir:  "results",
	}
}

// Record holds everything measured at one shift distance.
type Record struct {
	Distance  float64
	Beta0     float64
	Beta1     float64
	Beta2     float64
	Slope     float64
	Intercept float64
	Loss      float64
	Margin    MarginWidth
}

// Result is the ordered collection of records produced by a sweep,
// indexed by sweep position.
type Result struct {
	Records []Record
}

// Distances returns the shift distances in sweep order.
func (r *Result) Distances() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Distance
	}
	return out
}

// RunSweep runs the full experiment: for each of cfg.Steps linearly
// spaced distances in [cfg.Start, cfg.End] it generates clusters, fits
// a classifier, derives the boundary and margin, and accumulates a
// Record. It then writes the per-distance panel figure and the
// aggregate trends figure into cfg.ResultDir.
//
// Generation and fitting errors abort the sweep. A missing margin at
// some distance is logged and recorded as unavailable.
func RunSweep(cfg Config) (*Result, error) {
	if cfg.Steps < 1 {
		return nil, errors.NewValidationError("Steps", "figure layout needs at least one panel", cfg.Steps)
	}

	distances := linspace(cfg.Start, cfg.End, cfg.Steps)
	result := &Result{Records: make([]Record, 0, cfg.Steps)}
	panels := make([]*plot.Plot, 0, cfg.Steps)

	for i, distance := range distances {
		X, y, err := dataset.GenerateEllipsoidClusters(distance, cfg.NSamples, cfg.ClusterStd)
		if err != nil {
			return nil, errors.Wrapf(err, "generating clusters at distance %.2f", distance)
		}

		model := linear_model.NewLogisticRegression()
		if err := model.Fit(X, y); err != nil {
			return nil, errors.Wrapf(err, "fitting classifier at distance %.2f", distance)
		}

		beta0 := model.Intercept()
		coef := model.Coef()
		beta1, beta2 := coef[0], coef[1]
		slope, intercept := Boundary(beta0, beta1, beta2)

		proba, err := model.PredictProba(X)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting probabilities at distance %.2f", distance)
		}
		loss, err := metrics.LogLoss(y, proba)
		if err != nil {
			return nil, errors.Wrapf(err, "computing logistic loss at distance %.2f", distance)
		}

		grid, err := ProbabilityGrid(model, X, cfg.GridSize)
		if err != nil {
			return nil, errors.Wrapf(err, "building probability grid at distance %.2f", distance)
		}

		margin := MeasureMargin(grid)
		if !margin.Available {
			errors.Warn(errors.NewUndefinedMetricWarning("margin width", margin.Reason))
			slog.Warn("margin width unavailable",
				slog.Float64(log.DistanceKey, distance),
				slog.String("reason", margin.Reason),
			)
		}

		rec := Record{
			Distance:  distance,
			Beta0:     beta0,
			Beta1:     beta1,
			Beta2:     beta2,
			Slope:     slope,
			Intercept: intercept,
			Loss:      loss,
			Margin:    margin,
		}
		result.Records = append(result.Records, rec)

		panel, err := buildPanel(X, y, grid, rec, i == 0)
		if err != nil {
			return nil, errors.Wrapf(err, "building panel at distance %.2f", distance)
		}
		panels = append(panels, panel)

		slog.Debug("sweep iteration complete",
			slog.Float64(log.DistanceKey, distance),
			slog.Float64("loss", loss),
			slog.Int("iterations", model.NIter()),
		)
	}

	if err := os.MkdirAll(cfg.ResultDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating result directory")
	}
	if err := writePanels(panels, cfg.ResultDir); err != nil {
		return nil, err
	}
	if err := writeTrends(result, cfg.ResultDir); err != nil {
		return nil, err
	}

	return result, nil
}

// linspace returns n evenly spaced values from start to end inclusive.
func linspace(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
