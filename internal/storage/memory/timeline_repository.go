package memory

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// TimelineRepository хранит историю статусов заказов в памяти.
type TimelineRepository struct {
	mu     sync.RWMutex
	events map[string][]domain.TimelineEvent
	logger *log.Entry
}

// NewTimelineRepository создаёт in-memory реализацию TimelineRepository.
// logger нужен подписчику Record; nil заменяется логгером по умолчанию.
func NewTimelineRepository(logger *log.Entry) *TimelineRepository {
	if logger == nil {
		logger = log.WithField("component", "timeline")
	}
	return &TimelineRepository{
		events: make(map[string][]domain.TimelineEvent),
		logger: logger,
	}
}

// Append добавляет событие, сохраняя хронологию; события с равным временем
// остаются в порядке добавления.
func (r *TimelineRepository) Append(event domain.TimelineEvent) error {
	if event.OrderID == "" {
		return domain.ErrOrderIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	events := append(r.events[event.OrderID], event)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Occurred.Before(events[j].Occurred)
	})
	r.events[event.OrderID] = events

	return nil
}

// List возвращает события заказа в хронологическом порядке.
func (r *TimelineRepository) List(orderID string) ([]domain.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[orderID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

// Record — подписчик хранилища заказов: превращает OrderUpdated в событие timeline.
// Ошибки записи только логируются.
func (r *TimelineRepository) Record(event domain.OrderUpdated) {
	err := r.Append(domain.TimelineEvent{
		OrderID:  event.OrderID,
		Type:     domain.TimelineEventStatusChanged,
		Reason:   fmt.Sprintf("%s -> %s", event.PreviousStatus, event.NewStatus),
		Occurred: event.OccurredAt,
	})
	if err != nil {
		r.logger.WithField("order_id", event.OrderID).
			WithError(err).
			Error("failed to record timeline event")
	}
}

var _ domain.TimelineRepository = (*TimelineRepository)(nil)
