// Package logging provides the zap loggers of the back-office API and the
// request-scoped context helpers they rely on.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

type sampledKeyType struct{}

var sampledKey = sampledKeyType{}

// NewLogger creates a named zap production logger at the given level.
func NewLogger(name string, level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named(name)
}

// WithRequestID returns a logger with request_id from context.
func WithRequestID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok && reqID != "" {
		return logger.With(zap.String("request_id", reqID))
	}
	return logger
}

// L is shorthand for WithRequestID.
func L(ctx context.Context, base *zap.Logger) *zap.Logger {
	return WithRequestID(ctx, base)
}

// SetRequestID stores request_id in context (call once in middleware).
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves request_id from context.
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// SetSampled records the sampling decision for the request in ctx.
func SetSampled(ctx context.Context, sampled bool) context.Context {
	return context.WithValue(ctx, sampledKey, sampled)
}

// ShouldLog reports whether info-level events of the request are kept.
// Contexts without a decision are always logged.
func ShouldLog(ctx context.Context) bool {
	if sampled, ok := ctx.Value(sampledKey).(bool); ok {
		return sampled
	}
	return true
}
