// Package logger builds the structured logger shared by every component of
// the store. All components log through a *zap.SugaredLogger tagged with
// the name of the service that created it.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured, service-tagged logger.
//
// Output is JSON-encoded and written to stderr so that it composes cleanly
// with whatever is capturing the process's stdout (e.g. a client REPL).
func New(service string) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)

	log := zap.New(core, zap.AddCaller())
	return log.Sugar().With("service", service)
}
