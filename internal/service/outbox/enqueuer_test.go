package outbox

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

func TestEnqueuer_EnqueuesEncodedEvent(t *testing.T) {
	repo := &stubOutboxRepo{}
	rec := &recorderStub{}
	encode := func(event domain.OrderUpdated) (domain.OutboxMessage, error) {
		return domain.OutboxMessage{AggregateID: event.OrderID, EventType: "order.status_changed"}, nil
	}

	handler := NewEnqueuer(repo, encode, rec, testLogger())
	handler(domain.OrderUpdated{OrderID: "ORD003", NewStatus: domain.OrderStatusShipped, OccurredAt: time.Now()})

	if len(repo.enqueued) != 1 || repo.enqueued[0].AggregateID != "ORD003" {
		t.Fatalf("unexpected enqueued messages: %+v", repo.enqueued)
	}
	if rec.count(ResultEnqueued) != 1 {
		t.Fatalf("expected enqueued result, got %v", rec.results)
	}
}

func TestEnqueuer_EncodeFailureIsRecorded(t *testing.T) {
	repo := &stubOutboxRepo{}
	rec := &recorderStub{}
	encode := func(domain.OrderUpdated) (domain.OutboxMessage, error) {
		return domain.OutboxMessage{}, errors.New("boom")
	}

	NewEnqueuer(repo, encode, rec, testLogger())(domain.OrderUpdated{OrderID: "ORD001"})

	if len(repo.enqueued) != 0 {
		t.Fatalf("expected nothing enqueued, got %+v", repo.enqueued)
	}
	if rec.count(ResultEnqueueFailed) != 1 {
		t.Fatalf("expected enqueue_failed result, got %v", rec.results)
	}
}

func TestLogPublisher_AlwaysSucceeds(t *testing.T) {
	pub := NewLogPublisher(testLogger())
	if err := pub.Publish(domain.OutboxMessage{ID: "m1", Payload: []byte(`{}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
