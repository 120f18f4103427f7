package domain

import (
	"fmt"
	"strings"
)

// StatusFilter — либо StatusFilterAll, либо один из статусов заказа.
type StatusFilter string

// StatusFilterAll отключает фильтр по статусу.
const StatusFilterAll StatusFilter = "All"

// FilterByStatus строит фильтр по конкретному статусу.
func FilterByStatus(status OrderStatus) StatusFilter {
	return StatusFilter(status)
}

// ParseStatusFilter разбирает фильтр; пустая строка и "all" означают StatusFilterAll.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, string(StatusFilterAll)) {
		return StatusFilterAll, nil
	}
	status, err := ParseOrderStatus(value)
	if err != nil {
		return "", fmt.Errorf("parse status filter: %w", err)
	}
	return FilterByStatus(status), nil
}

// IsAll сообщает, что фильтр по статусу не активен.
func (f StatusFilter) IsAll() bool {
	return f == "" || f == StatusFilterAll
}

// Status возвращает статус фильтра; ok=false для StatusFilterAll.
func (f StatusFilter) Status() (OrderStatus, bool) {
	if f.IsAll() {
		return "", false
	}
	return OrderStatus(f), true
}

// FilterCriteria объединяет строку поиска и фильтр по статусу.
type FilterCriteria struct {
	SearchTerm string
	Status     StatusFilter
}

// AllOrders — критерии, под которые попадает любой заказ.
func AllOrders() FilterCriteria {
	return FilterCriteria{Status: StatusFilterAll}
}

// Matches проверяет заказ против обоих предикатов (конъюнкция).
func (c FilterCriteria) Matches(order Order) bool {
	if status, ok := c.Status.Status(); ok && order.Status != status {
		return false
	}
	if c.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(c.SearchTerm)
	return strings.Contains(strings.ToLower(order.ID), term) ||
		strings.Contains(strings.ToLower(order.CustomerName), term)
}
