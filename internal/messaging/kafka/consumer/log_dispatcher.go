package consumer

import (
	"context"

	"go.uber.org/zap"

	"go-hrms/internal/events"
)

// LogDispatcher writes one structured line per recipient. Mail and push
// delivery plug in behind Dispatcher.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.Named("notification")}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, event events.ApprovalTransitionEvent) error {
	base := []zap.Field{
		zap.String("request_type", event.RequestType),
		zap.String("request_id", event.RequestID),
		zap.Int("level", event.Level),
	}

	switch event.Transition {
	case events.TransitionSubmitted, events.TransitionAdvanced:
		if event.NextApproval != nil {
			d.logger.Info("approval requested",
				append(base, zap.Int64("recipient", *event.NextApproval))...)
		}
	case events.TransitionApproved:
		d.logger.Info("request approved",
			append(base, zap.Int64("recipient", event.RequesterNo), zap.Int64("approved_by", event.ActorNo))...)
	case events.TransitionRejected:
		d.logger.Info("request rejected",
			append(base,
				zap.Int64("recipient", event.RequesterNo),
				zap.Int64("rejected_by", event.ActorNo),
				zap.String("reason", event.Reason),
			)...)
	}
	return nil
}
