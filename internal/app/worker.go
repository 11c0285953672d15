package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-hrms/internal/config"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/connection"
)

// RunWorker relays approval transitions from the outbox to Kafka until ctx
// is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	db, err := connection.ConnectGORM(ctx, cfg.DB.DSN(), connection.DefaultRetry)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafka(ctx, cfg.KafkaBroker, connection.DefaultRetry)
	if err != nil {
		return err
	}
	defer writer.Close()

	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(db), writer, zap.L(), cfg.OutboxPoll)
	return nil
}
