package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus описывает стадию исполнения заказа в админке.
type OrderStatus string

const (
	// OrderStatusProcessing — заказ принят и собирается.
	OrderStatusProcessing OrderStatus = "Processing"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "Shipped"
	// OrderStatusDelivered — заказ получен клиентом.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// orderStatuses хранит статусы в порядке пунктов меню.
var orderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderStatuses возвращает все допустимые статусы.
func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, len(orderStatuses))
	copy(result, orderStatuses)
	return result
}

// IsValid сообщает, входит ли статус в закрытое перечисление.
func (s OrderStatus) IsValid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// BadgeVariant возвращает вариант бейджа, которым статус рисуется в таблице.
func (s OrderStatus) BadgeVariant() string {
	switch s {
	case OrderStatusProcessing:
		return "secondary"
	case OrderStatusShipped:
		return "outline"
	case OrderStatusCancelled:
		return "destructive"
	default:
		return "default"
	}
}

// ParseOrderStatus разбирает статус без учёта регистра.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	value := strings.TrimSpace(raw)
	for _, known := range orderStatuses {
		if strings.EqualFold(value, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Order — запись о покупке клиента. Изменяемое поле одно: Status.
type Order struct {
	ID           string
	CustomerName string
	// Date — календарная дата оформления (полночь UTC).
	Date   time.Time
	Status OrderStatus
	// TotalMinor — сумма заказа в центах.
	TotalMinor int64
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if o.CustomerName == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if o.Date.IsZero() {
		errs = append(errs, ErrOrderDateRequired)
	}
	if !o.Status.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status))
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrTotalNegative)
	}

	return errs
}

// FormatTotal рендерит сумму так же, как таблица заказов: "$150.00".
func (o Order) FormatTotal() string {
	return fmt.Sprintf("$%d.%02d", o.TotalMinor/100, o.TotalMinor%100)
}

// DateString возвращает дату в формате YYYY-MM-DD.
func (o Order) DateString() string {
	return o.Date.Format(DateLayout)
}

// DateLayout — формат даты заказа во внешних представлениях.
const DateLayout = "2006-01-02"

// ParseOrderDate разбирает дату заказа в формате YYYY-MM-DD.
func ParseOrderDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse order date %q: %w", raw, err)
	}
	return date, nil
}
