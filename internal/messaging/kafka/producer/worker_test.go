package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-hrms/internal/messaging/kafka"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []uuid.UUID
	failed  map[uuid.UUID]string
}

func (f *fakeOutbox) Create(ctx context.Context, event *kafka.OutboxEvent) error { return nil }

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	msgs   []kafkago.Message
	failOn string
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == f.failOn {
			return errors.New("broker unavailable")
		}
		f.msgs = append(f.msgs, m)
	}
	return nil
}

func TestPublishBatch(t *testing.T) {
	ok := kafka.OutboxEvent{ID: uuid.New(), AggregateType: "LEAVE", AggregateID: "a", EventType: "approval_transition", Topic: "hr.approval.transition.v1", Payload: []byte(`{}`)}
	bad := kafka.OutboxEvent{ID: uuid.New(), AggregateType: "LOAN", AggregateID: "b", EventType: "approval_transition", Topic: "hr.approval.transition.v1", Payload: []byte(`{}`)}

	repo := &fakeOutbox{pending: []kafka.OutboxEvent{ok, bad}, failed: map[uuid.UUID]string{}}
	writer := &fakeWriter{failOn: "b"}

	sent, failed, err := publishBatch(context.Background(), repo, writer, zap.NewNop())
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)

	assert.Equal(t, []uuid.UUID{ok.ID}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed[bad.ID])

	assert.Len(t, writer.msgs, 1)
	assert.Equal(t, "hr.approval.transition.v1", writer.msgs[0].Topic)
	assert.Equal(t, "LEAVE", string(writer.msgs[0].Headers[2].Value))
}

func TestToMessage(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	event := kafka.OutboxEvent{
		ID:            uuid.New(),
		RequestID:     "rid-7",
		AggregateType: "LOAN",
		AggregateID:   "loan-1",
		EventType:     "approval_transition",
		Topic:         "hr.approval.transition.v1",
		Payload:       []byte(`{"transition":"APPROVED"}`),
		CreatedAt:     created,
	}

	msg := toMessage(event)

	assert.Equal(t, []byte("loan-1"), msg.Key)
	assert.Equal(t, created, msg.Time)
	assert.Len(t, msg.Headers, 4)
	assert.Equal(t, "request_id", msg.Headers[3].Key)

	event.RequestID = ""
	assert.Len(t, toMessage(event).Headers, 3)
}
