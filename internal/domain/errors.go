package domain

import "errors"

var (
	// ErrOrderNotFound возвращается, если заказ с таким ID отсутствует в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidState — переход, который текущее состояние сессии редактирования не допускает.
	ErrInvalidState = errors.New("invalid edit session state")
	// ErrInvariantViolation — начальные данные нарушают инварианты хранилища.
	ErrInvariantViolation = errors.New("order store invariant violation")
	// ErrDuplicateOrderID — два заказа в seed с одинаковым ID.
	ErrDuplicateOrderID = errors.New("duplicate order id")
	// ErrInvalidStatus — значение вне перечисления статусов.
	ErrInvalidStatus = errors.New("invalid order status")
	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order id is required")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующей даты заказа.
	ErrOrderDateRequired = errors.New("order date is required")
	// Ошибка отрицательной суммы заказа.
	ErrTotalNegative = errors.New("order total must be non-negative")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsInvalidState проверяет, является ли ошибка недопустимым переходом сессии.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsInvariantViolation проверяет, нарушены ли инварианты хранилища.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
