package producer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-hrms/internal/messaging/kafka"
)

const batchSize = 50

// ProcessOutboxEvents publishes pending approval notifications every
// pollInterval until ctx is done.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			sent, failed, err := publishBatch(ctx, repo, writer, log)
			if err != nil {
				log.Error("list outbox events failed", zap.Error(err))
				continue
			}
			if sent+failed > 0 {
				log.Info("outbox batch processed", zap.Int("sent", sent), zap.Int("failed", failed))
			}
		}
	}
}

// publishBatch sends one batch. A failed event is rescheduled with backoff
// and does not stop the rest of the batch.
func publishBatch(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (sent, failed int, err error) {
	batch, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range batch {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID.String()),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.Int("retry_count", event.RetryCount),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			failed++
			logger.Warn("publish outbox event failed", append(fields, zap.Error(err))...)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// The event will be published again; consumers tolerate duplicates.
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		logger.Debug("outbox event sent", fields...)
	}
	return sent, failed, nil
}
