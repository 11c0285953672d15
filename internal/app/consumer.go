package app

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-hrms/internal/config"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"
)

// RunConsumer dispatches approval transitions to their recipients until ctx
// is cancelled. Offsets are committed per message after dispatch.
func RunConsumer(ctx context.Context, cfg *config.Config) error {
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.ApprovalTransitionTopic,
		GroupID:     cfg.ConsumerID,
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeApprovalTransitions(ctx, reader, consumer.NewLogDispatcher(zap.L()), zap.L())
	return nil
}
