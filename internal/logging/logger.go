package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MetricsLoggerName is the name of the child logger that carries LLM/STT metric lines.
const MetricsLoggerName = "metrics"

// New creates a zap logger for the given environment. "local" gets a colourised
// development logger on stderr; anything else gets JSON on stdout plus app.log
// and an error-only error.log under logDir.
func New(environment, logDir string) (*zap.Logger, error) {
	if environment == "local" {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return config.Build()
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if logDir == "" {
		return config.Build()
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}
	config.OutputPaths = []string{"stdout", filepath.Join(logDir, "app.log")}

	errorSink, _, err := zap.Open(filepath.Join(logDir, "error.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}
	errorCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		errorSink,
		zap.ErrorLevel,
	)

	return config.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, errorCore)
	}))
}

// Metrics returns the named child logger for metric lines.
func Metrics(logger *zap.Logger) *zap.Logger {
	return logger.Named(MetricsLoggerName)
}
