package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderStatusChanged — статус заказа изменён через админку.
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// TopicOrderEvents — topic по умолчанию для событий заказов админки.
const TopicOrderEvents = "oms.admin.order.events"

// Kafka headers
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
)

// AggregateTypeOrder — тип агрегата в outbox-сообщениях.
const AggregateTypeOrder = "order"

// OrderStatusChangedEvent — payload события смены статуса.
type OrderStatusChangedEvent struct {
	EventType      EventType `json:"event_type"`
	OrderID        string    `json:"order_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewOrderStatusChangedEvent строит payload из уведомления хранилища.
func NewOrderStatusChangedEvent(event domain.OrderUpdated) *OrderStatusChangedEvent {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &OrderStatusChangedEvent{
		EventType:      EventTypeOrderStatusChanged,
		OrderID:        event.OrderID,
		Status:         string(event.NewStatus),
		PreviousStatus: string(event.PreviousStatus),
		Timestamp:      occurred,
	}
}

// NewOrderStatusMessage упаковывает событие в outbox-сообщение.
func NewOrderStatusMessage(event domain.OrderUpdated) (domain.OutboxMessage, error) {
	payload, err := json.Marshal(NewOrderStatusChangedEvent(event))
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal order status event: %w", err)
	}
	return domain.OutboxMessage{
		AggregateType: AggregateTypeOrder,
		AggregateID:   event.OrderID,
		EventType:     string(EventTypeOrderStatusChanged),
		Payload:       payload,
	}, nil
}
