package domain

import "time"

// OrderStore — владелец канонического списка заказов админки.
type OrderStore interface {
	// List возвращает снимок заказов в порядке загрузки.
	List() []Order
	// Get возвращает заказ по ID или ErrOrderNotFound.
	Get(id string) (Order, error)
	// UpdateStatus атомарно меняет статус и синхронно уведомляет подписчиков.
	UpdateStatus(orderID string, status OrderStatus) error
	// Subscribe регистрирует обработчик OrderUpdated и возвращает функцию отписки.
	Subscribe(handler OrderUpdatedHandler) (unsubscribe func())
}

// TimelineRepository хранит историю смен статуса по заказам.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}

// OutboxMessage — уведомление о смене статуса, ожидающее отправки наружу.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxRepository буферизует уведомления между коммитом статуса и relay.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	// PullPending отдаёт до limit ожидающих сообщений в порядке постановки.
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxStats — размер backlog и время самого старого ожидающего сообщения.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// OutboxPublisher доставляет сообщение из outbox; повторная доставка допустима.
type OutboxPublisher interface {
	Publish(msg OutboxMessage) error
}
