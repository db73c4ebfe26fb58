package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/pkg/trace"
)

var Log *zap.Logger

// NewLogger builds the process logger. Production and test environments log JSON,
// everything else gets the development console encoder.
func NewLogger(environment string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	switch environment {
	case "production", "test":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}

// WithTrace adds the context's trace_id to the logger
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID := trace.FromContext(ctx)
	if traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}
