package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

func TestOutboxPublisher_Publish(t *testing.T) {
	t.Parallel()

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "ORD003" {
			t.Errorf("expected key ORD003, got %s", key)
		}
		value, _ := msg.Value.Encode()
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(value, &envelope); err != nil {
			t.Errorf("envelope is not json: %v", err)
		}
		if string(envelope["payload"]) != `{"status":"Delivered"}` {
			t.Errorf("unexpected payload %s", envelope["payload"])
		}
		return nil
	})

	publisher := NewOutboxPublisher(newProducer(mockProducer), "")
	if publisher.Topic() != TopicOrderEvents {
		t.Fatalf("expected default topic, got %s", publisher.Topic())
	}

	err := publisher.Publish(domain.OutboxMessage{
		ID:            "outbox-1",
		AggregateType: AggregateTypeOrder,
		AggregateID:   "ORD003",
		EventType:     string(EventTypeOrderStatusChanged),
		Payload:       []byte(`{"status":"Delivered"}`),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOutboxPublisher_PublishKeyFallback(t *testing.T) {
	t.Parallel()

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "outbox-9" {
			t.Errorf("expected key outbox-9, got %s", key)
		}
		if msg.Topic != "custom.topic" {
			t.Errorf("expected custom topic, got %s", msg.Topic)
		}
		return nil
	})

	publisher := NewOutboxPublisher(newProducer(mockProducer), "custom.topic")
	if err := publisher.Publish(domain.OutboxMessage{ID: "outbox-9", Payload: []byte(`{}`)}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOutboxPublisher_PublishProducerError(t *testing.T) {
	t.Parallel()

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewOutboxPublisher(newProducer(mockProducer), TopicOrderEvents)

	err := publisher.Publish(domain.OutboxMessage{
		ID:            "outbox-2",
		AggregateType: AggregateTypeOrder,
		AggregateID:   "ORD004",
		EventType:     string(EventTypeOrderStatusChanged),
		Payload:       []byte(`{"status":"Cancelled"}`),
	})
	if err == nil {
		t.Fatal("expected publish error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOutboxPublisher_PublishNilProducer(t *testing.T) {
	t.Parallel()

	publisher := NewOutboxPublisher(nil, TopicOrderEvents)
	if err := publisher.Publish(domain.OutboxMessage{ID: "outbox-3"}); err == nil {
		t.Fatal("expected error for nil producer")
	}
}
