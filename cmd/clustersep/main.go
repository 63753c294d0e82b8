// Command clustersep sweeps the shift distance between two Gaussian
// clusters, fits a logistic classifier at each distance and writes the
// per-distance panels and the aggregate parameter trends as PNG files.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/clustersep/experiment"
	"github.com/YuminosukeSato/clustersep/pkg/log"
)

func main() {
	cfg := experiment.DefaultConfig()

	flag.Float64Var(&cfg.Start, "start", cfg.Start, "first shift distance")
	flag.Float64Var(&cfg.End, "end", cfg.End, "last shift distance (inclusive)")
	flag.IntVar(&cfg.Steps, "steps", cfg.Steps, "number of shift distances")
	flag.IntVar(&cfg.NSamples, "samples", cfg.NSamples, "samples per cluster")
	flag.Float64Var(&cfg.ClusterStd, "std", cfg.ClusterStd, "cluster spread parameter")
	flag.StringVar(&cfg.ResultDir, "out", cfg.ResultDir, "output directory for figures")
	loglevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.SetupLogger(*loglevel)

	result, err := experiment.RunSweep(cfg)
	if err != nil {
		slog.Error("sweep failed", log.ErrAttr(err))
		os.Exit(1)
	}

	slog.Info("sweep complete",
		slog.Int("records", len(result.Records)),
		slog.String("result_dir", cfg.ResultDir),
	)
}
