package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// OrderStore — единственный владелец канонического списка заказов.
type OrderStore struct {
	mu     sync.RWMutex
	orders []domain.Order
	index  map[string]int

	subMu       sync.RWMutex
	nextSubID   int
	subscribers []subscriber

	now func() time.Time
}

type subscriber struct {
	id      int
	handler domain.OrderUpdatedHandler
}

// NewOrderStore наполняет хранилище seed-данными. Дубликаты ID и невалидные
// заказы приводят к ошибке ErrInvariantViolation, хранилище не создаётся.
func NewOrderStore(seed []domain.Order) (*OrderStore, error) {
	store := &OrderStore{
		orders: make([]domain.Order, 0, len(seed)),
		index:  make(map[string]int, len(seed)),
		now:    func() time.Time { return time.Now().UTC() },
	}

	for i := range seed {
		order := seed[i]
		if errs := order.ValidateInvariants(); len(errs) > 0 {
			return nil, fmt.Errorf("%w: order #%d (%s): %w", domain.ErrInvariantViolation, i, order.ID, errors.Join(errs...))
		}
		if _, exists := store.index[order.ID]; exists {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrInvariantViolation, domain.ErrDuplicateOrderID, order.ID)
		}
		store.index[order.ID] = len(store.orders)
		store.orders = append(store.orders, order)
	}

	return store, nil
}

// List возвращает копию заказов в порядке добавления.
func (s *OrderStore) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, len(s.orders))
	copy(result, s.orders)
	return result
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (s *OrderStore) Get(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return s.orders[pos], nil
}

// Len возвращает количество заказов.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// UpdateStatus меняет только поле Status под write-локом, затем уведомляет
// подписчиков вне лока в порядке подписки.
func (s *OrderStore) UpdateStatus(orderID string, status domain.OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("update status %s: %w: %q", orderID, domain.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	pos, ok := s.index[orderID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("update status %s: %w", orderID, domain.ErrOrderNotFound)
	}
	previous := s.orders[pos].Status
	s.orders[pos].Status = status
	s.mu.Unlock()

	s.publish(domain.OrderUpdated{
		OrderID:        orderID,
		NewStatus:      status,
		PreviousStatus: previous,
		OccurredAt:     s.now(),
	})
	return nil
}

// Subscribe регистрирует обработчик OrderUpdated.
func (s *OrderStore) Subscribe(handler domain.OrderUpdatedHandler) func() {
	if handler == nil {
		return func() {}
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *OrderStore) unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

func (s *OrderStore) publish(event domain.OrderUpdated) {
	s.subMu.RLock()
	handlers := make([]domain.OrderUpdatedHandler, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		handlers = append(handlers, sub.handler)
	}
	s.subMu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

var _ domain.OrderStore = (*OrderStore)(nil)
