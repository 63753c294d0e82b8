// Package log provides structured logging for the cluster-separation
// experiment. It configures the standard log/slog JSON handler wrapped
// so that errors created with cockroachdb/errors carry their stack
// trace into the log record as a dedicated attribute.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger installs the default slog logger with JSON output.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// Standard attribute keys used across the experiment.
const (
	// DistanceKey is the shift distance of the current sweep iteration.
	DistanceKey = "experiment.distance"

	// SamplesKey is the number of samples per cluster.
	SamplesKey = "data.samples"

	// OperationKey names the pipeline stage: "generate", "fit",
	// "margin", "render".
	OperationKey = "experiment.operation"

	// ModelNameKey identifies the model type being fitted.
	ModelNameKey = "model.name"
)
