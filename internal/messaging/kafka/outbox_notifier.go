package kafka

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"go-hrms/internal/events"
)

// OutboxNotifier records approval transitions in the outbox. The worker
// publishes them to Kafka later, so a broker outage never reaches the
// approval path.
type OutboxNotifier struct {
	repo OutboxRepository
}

func NewOutboxNotifier(repo OutboxRepository) *OutboxNotifier {
	return &OutboxNotifier{repo: repo}
}

func (n *OutboxNotifier) Notify(ctx context.Context, event events.ApprovalTransitionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.repo.Create(ctx, &OutboxEvent{
		ID:            uuid.New(),
		RequestID:     event.CorrelationID,
		AggregateType: event.RequestType,
		AggregateID:   event.RequestID,
		EventType:     event.EventType,
		Topic:         events.ApprovalTransitionTopic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	})
}
