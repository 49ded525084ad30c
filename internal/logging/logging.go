// Package logging builds the loggers used by futurity's binaries.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the logger used by futurity's binaries. When debug is
// true, the logger produces human-readable development output at debug
// level.
func New(debug bool) *zap.Logger {
	if !debug {
		return zap.Must(zap.NewProductionConfig().Build())
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true

	return zap.Must(cfg.Build())
}
