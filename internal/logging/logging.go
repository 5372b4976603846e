// Package logging builds the zap logger shared by the front-ends.
//
// Operator-facing messages are written by the shell and the TUI; the logger
// only records diagnostics, and only when a log file is configured.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ioutils "github.com/handiism/student-records/internal/io"
)

// New returns a JSON logger writing to file at level.
// An empty file yields a no-op logger.
func New(file, level string) (*zap.Logger, error) {
	if file == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if err := ioutils.EnsureParentDir(file); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
