// Package logger provides a convenience function to construct a logger
// for use. This is required not just for applications but for testing.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a Sugared Logger that writes to stdout and
// provides human readable timestamps.
func New(service string, outputPaths ...string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	if outputPaths != nil {
		config.OutputPaths = outputPaths
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]any{
		"service": service,
	}

	log, err := config.Build(zap.WithCaller(true))
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

// NewWithLevel constructs a Sugared Logger with the specified minimum level.
func NewWithLevel(service string, level zapcore.Level) (*zap.SugaredLogger, error) {
	log, err := New(service)
	if err != nil {
		return nil, err
	}

	return log.WithOptions(zap.IncreaseLevel(level)), nil
}

// Discard constructs a logger that throws everything away. Useful in tests.
func Discard() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
