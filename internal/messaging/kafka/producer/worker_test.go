package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"ess-api/internal/messaging/kafka"
	"ess-api/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutboxRepository struct {
	mu      sync.Mutex
	pending []kafka.OutboxEvent
	sent    chan string
	failed  chan string
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := f.pending
	f.pending = nil
	return events, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	f.sent <- id
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed <- id
	return nil
}

type fakeMessageWriter struct {
	writeFn func(ctx context.Context, msgs ...kafkago.Message) error
}

func (f *fakeMessageWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return f.writeFn(ctx, msgs...)
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessOutboxEvents_PublishesWithHeaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeOutboxRepository{
		pending: []kafka.OutboxEvent{{
			ID:            "out-1",
			RequestID:     "req-abc",
			AggregateType: "leave_application",
			AggregateID:   "leave-uuid",
			EventType:     "leave_requested",
			Topic:         "ess.leave.requested",
			Payload:       []byte(`{"employee_id":42}`),
			Status:        kafka.OutboxStatusPending,
		}},
		sent:   make(chan string, 1),
		failed: make(chan string, 1),
	}

	published := make(chan kafkago.Message, 1)
	writer := &fakeMessageWriter{
		writeFn: func(ctx context.Context, msgs ...kafkago.Message) error {
			for _, m := range msgs {
				published <- m
			}
			return nil
		},
	}

	go producer.ProcessOutboxEvents(ctx, repo, writer, zap.NewNop(), 5*time.Millisecond)

	select {
	case msg := <-published:
		assert.Equal(t, "ess.leave.requested", msg.Topic)
		assert.Equal(t, "leave-uuid", string(msg.Key))
		assert.Equal(t, "leave_requested", headerValue(msg, "event_type"))
		assert.Equal(t, "leave_application", headerValue(msg, "aggregate_type"))
		assert.Equal(t, "req-abc", headerValue(msg, "request_id"))
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}

	select {
	case id := <-repo.sent:
		assert.Equal(t, "out-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("event not marked sent")
	}
}

func TestProcessOutboxEvents_MarksFailedOnWriteError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeOutboxRepository{
		pending: []kafka.OutboxEvent{{
			ID:            "out-2",
			AggregateType: "employee",
			AggregateID:   "42",
			EventType:     "profile_image_updated",
			Topic:         "ess.profile.image_updated",
			Payload:       []byte(`{}`),
			Status:        kafka.OutboxStatusPending,
		}},
		sent:   make(chan string, 1),
		failed: make(chan string, 1),
	}

	writer := &fakeMessageWriter{
		writeFn: func(ctx context.Context, msgs ...kafkago.Message) error {
			return errors.New("broker unreachable")
		},
	}

	go producer.ProcessOutboxEvents(ctx, repo, writer, zap.NewNop(), 5*time.Millisecond)

	select {
	case id := <-repo.failed:
		assert.Equal(t, "out-2", id)
	case <-time.After(2 * time.Second):
		t.Fatal("event not marked failed")
	}
	assert.Empty(t, repo.sent)
}
