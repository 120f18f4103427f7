// Package filter выводит видимое подмножество заказов по критериям поиска.
package filter

import (
	"strings"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// EmptyStateMessage показывается при пустом итоговом списке, и для пустого
// хранилища, и для слишком узкого фильтра.
const EmptyStateMessage = "No orders found."

// Apply возвращает заказы, прошедшие фильтр по статусу и по строке поиска.
// Относительный порядок входа сохраняется; результат никогда не nil.
func Apply(orders []domain.Order, criteria domain.FilterCriteria) []domain.Order {
	result := make([]domain.Order, 0, len(orders))

	status, byStatus := criteria.Status.Status()
	term := strings.ToLower(criteria.SearchTerm)

	for _, order := range orders {
		if byStatus && order.Status != status {
			continue
		}
		if term != "" && !containsFold(order, term) {
			continue
		}
		result = append(result, order)
	}

	return result
}

// IsEmpty сообщает, нужно ли показывать EmptyStateMessage.
func IsEmpty(visible []domain.Order) bool {
	return len(visible) == 0
}

func containsFold(order domain.Order, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(order.ID), lowerTerm) ||
		strings.Contains(strings.ToLower(order.CustomerName), lowerTerm)
}
