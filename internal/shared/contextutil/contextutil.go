package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor_employee_no"
	loggerKey    contextKey = "logger"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- Actor Helpers ---

// WithActor stores the employee number of the authenticated caller.
func WithActor(ctx context.Context, employeeNo int64) context.Context {
	return context.WithValue(ctx, actorKey, employeeNo)
}

func GetActor(ctx context.Context) (int64, bool) {
	no, ok := ctx.Value(actorKey).(int64)
	return no, ok && no > 0
}

// --- Logger Helpers ---

// WithLogger stores a request scoped (already decorated) logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request scoped logger, then defaultLogger, then a
// no-op logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID string
	ActorNo   int64
}

func ExtractMetadata(ctx context.Context) Metadata {
	actor, _ := GetActor(ctx)
	return Metadata{
		RequestID: GetRequestID(ctx),
		ActorNo:   actor,
	}
}
