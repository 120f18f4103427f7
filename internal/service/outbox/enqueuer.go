package outbox

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// Encoder превращает уведомление хранилища в outbox-сообщение.
type Encoder func(event domain.OrderUpdated) (domain.OutboxMessage, error)

// NewEnqueuer возвращает подписчика хранилища заказов, который кладёт каждое
// OrderUpdated в outbox. Ошибки логируются: коммит статуса уже состоялся.
func NewEnqueuer(repo domain.OutboxRepository, encode Encoder, recorder Recorder, logger *log.Entry) domain.OrderUpdatedHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = log.WithField("component", "outbox-enqueuer")
	}

	return func(event domain.OrderUpdated) {
		entry := logger.WithField("order_id", event.OrderID)

		msg, err := encode(event)
		if err != nil {
			recorder.RecordOutboxEvent(ResultEnqueueFailed)
			entry.WithError(err).Error("failed to encode order event")
			return
		}
		if _, err := repo.Enqueue(msg); err != nil {
			recorder.RecordOutboxEvent(ResultEnqueueFailed)
			entry.WithError(err).Error("failed to enqueue order event")
			return
		}
		recorder.RecordOutboxEvent(ResultEnqueued)
	}
}
