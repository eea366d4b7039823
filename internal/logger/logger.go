// Package logger holds the process wide structured logger.
//
// Call New once at startup and OnExit before the process ends. Until New is
// called Sugar discards everything, so packages may log from init.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sugar is the shared logger.
var Sugar = zap.NewNop().Sugar()

var base = zap.NewNop()

// New replaces Sugar with a logger at the given level. "NOOP" disables
// logging; unknown levels fall back to info.
func New(level string) {
	if strings.EqualFold(level, "NOOP") {
		base = zap.NewNop()
		Sugar = base.Sugar()
		return
	}

	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}
	base = l
	Sugar = l.Sugar()
}

// WithServiceName returns a child of Sugar tagged with name.
func WithServiceName(name string) *zap.SugaredLogger {
	return Sugar.With("service", name)
}

// OnExit flushes buffered log entries.
func OnExit() {
	_ = base.Sync()
}
