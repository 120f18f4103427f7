package domain

import "time"

// OrderUpdated — уведомление о смене статуса заказа.
type OrderUpdated struct {
	OrderID        string
	NewStatus      OrderStatus
	PreviousStatus OrderStatus
	OccurredAt     time.Time
}

// OrderUpdatedHandler получает уведомления хранилища заказов.
type OrderUpdatedHandler func(event OrderUpdated)

// EditDialogState описывает модальное окно редактирования для UI.
type EditDialogState struct {
	IsOpen bool
	// Target — снимок редактируемого заказа; nil, когда окно закрыто.
	Target *Order
}

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}

// TimelineEventStatusChanged — тип события смены статуса в timeline.
const TimelineEventStatusChanged = "OrderStatusChanged"
