package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-hrms/internal/events"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Dispatcher delivers one approval transition to the people it concerns.
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.ApprovalTransitionEvent) error
}

// ConsumeApprovalTransitions reads transitions until ctx is done. Messages
// that cannot be decoded are committed and skipped; a failed dispatch is
// left uncommitted so the group redelivers it.
func ConsumeApprovalTransitions(
	ctx context.Context,
	reader MessageReader,
	dispatcher Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.approval_transition")
	log.Info("approval transition consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("approval transition consumer stopped")
				return
			}
			log.Error("fetch approval transition failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, dispatcher, msg, log)
	}
}

func handleMessage(ctx context.Context, reader MessageReader, dispatcher Dispatcher, msg kafkago.Message, log *zap.Logger) {
	var event events.ApprovalTransitionEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode approval transition failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	fields := []zap.Field{
		zap.String("request_type", event.RequestType),
		zap.String("request_id", event.RequestID),
		zap.String("transition", string(event.Transition)),
		zap.String("correlation_id", event.CorrelationID),
	}

	if err := dispatcher.Dispatch(ctx, event); err != nil {
		log.Error("dispatch approval transition failed", append(fields, zap.Error(err))...)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit approval transition failed", append(fields, zap.Error(err))...)
		return
	}
	log.Debug("approval transition dispatched", fields...)
}
