package mylogger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var requestIDKey ctxKey

// WithRequestID returns a context carrying the per-request correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

func Info(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	if id, ok := requestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}

	logger.WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Error(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	if id, ok := requestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}

	logger.WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

func Warn(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	if id, ok := requestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}

	logger.WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Debug(ctx context.Context, logger *zap.Logger, msg string, fields ...zap.Field) {
	if id, ok := requestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}

	logger.WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}
