package health

import (
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// CheckFunc возвращает статус и сообщение проверки.
type CheckFunc func() (Status, string)

// FuncChecker оборачивает CheckFunc и замеряет длительность.
type FuncChecker struct {
	name string
	fn   CheckFunc
}

// NewFuncChecker создаёт проверку из функции.
func NewFuncChecker(name string, fn CheckFunc) *FuncChecker {
	return &FuncChecker{name: name, fn: fn}
}

// Check выполняет проверку.
func (c *FuncChecker) Check() Check {
	start := time.Now()
	status, message := c.fn()
	return Check{
		Name:       c.name,
		Status:     status,
		Message:    message,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// NewSimpleChecker считает любую ошибку checkFn состоянием unhealthy.
func NewSimpleChecker(name string, checkFn func() error) *FuncChecker {
	return NewFuncChecker(name, func() (Status, string) {
		if err := checkFn(); err != nil {
			return StatusUnhealthy, err.Error()
		}
		return StatusHealthy, ""
	})
}

// OrderLister нужен проверке хранилища заказов.
type OrderLister interface {
	List() []domain.Order
}

// NewOrderStoreChecker проверяет, что хранилище заказов отвечает и не пусто.
// Пустое хранилище допустимо, но отмечается как degraded.
func NewOrderStoreChecker(store OrderLister) *FuncChecker {
	return NewFuncChecker("order-store", func() (Status, string) {
		if store == nil {
			return StatusUnhealthy, "order store is not configured"
		}
		count := len(store.List())
		if count == 0 {
			return StatusDegraded, "order store is empty"
		}
		return StatusHealthy, fmt.Sprintf("%d orders", count)
	})
}

// OutboxStatsProvider отдаёт статистику backlog.
type OutboxStatsProvider interface {
	Stats() (domain.OutboxStats, error)
}

var errNoOutbox = errors.New("outbox is not configured")

// NewOutboxBacklogChecker помечает outbox degraded, когда pending больше maxPending.
func NewOutboxBacklogChecker(repo OutboxStatsProvider, maxPending int) *FuncChecker {
	return NewFuncChecker("outbox", func() (Status, string) {
		if repo == nil {
			return StatusUnhealthy, errNoOutbox.Error()
		}
		stats, err := repo.Stats()
		if err != nil {
			return StatusUnhealthy, err.Error()
		}
		message := fmt.Sprintf("%d pending", stats.PendingCount)
		if maxPending > 0 && stats.PendingCount > maxPending {
			return StatusDegraded, fmt.Sprintf("%s, limit %d", message, maxPending)
		}
		return StatusHealthy, message
	})
}
