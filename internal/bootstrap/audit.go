package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"go-hrms/internal/shared/contextutil"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events such as process start and shutdown.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.Any("meta", entry.Meta),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if actor, ok := contextutil.GetActor(ctx); ok {
		fields = append(fields, zap.Int64("actor_no", actor))
	}
	l.logger.Info(entry.Message, fields...)
}
