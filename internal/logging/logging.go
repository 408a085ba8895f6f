// Package logging builds the CLI logger.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w. Debug messages are only emitted
// when verbose is set. Timestamps and callers are omitted; the output is meant
// for humans reading stderr.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core).Named("envporter")
}
