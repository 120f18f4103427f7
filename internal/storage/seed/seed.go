// Package seed поставляет начальные заказы для хранилища: встроенный набор
// демо-данных или YAML-файл с фикстурами.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// DemoOrders возвращает семь заказов, с которыми стартует админка.
func DemoOrders() []domain.Order {
	return []domain.Order{
		demoOrder("ORD001", "Alice Johnson", "2023-10-26", domain.OrderStatusDelivered, 15000),
		demoOrder("ORD002", "Bob Williams", "2023-10-25", domain.OrderStatusShipped, 7550),
		demoOrder("ORD003", "Charlie Brown", "2023-10-24", domain.OrderStatusProcessing, 20025),
		demoOrder("ORD004", "Diana Miller", "2023-10-23", domain.OrderStatusDelivered, 30000),
		demoOrder("ORD005", "Ethan Davis", "2023-10-22", domain.OrderStatusCancelled, 5000),
		demoOrder("ORD006", "Fiona Garcia", "2023-10-21", domain.OrderStatusShipped, 12000),
		demoOrder("ORD007", "George Rodriguez", "2023-10-20", domain.OrderStatusProcessing, 8575),
	}
}

func demoOrder(id, customer, date string, status domain.OrderStatus, totalMinor int64) domain.Order {
	parsed, err := domain.ParseOrderDate(date)
	if err != nil {
		panic(err)
	}
	return domain.Order{
		ID:           id,
		CustomerName: customer,
		Date:         parsed,
		Status:       status,
		TotalMinor:   totalMinor,
	}
}

// fileOrder — запись заказа в YAML-фикстуре. Total задаётся в долларах.
type fileOrder struct {
	ID           string  `yaml:"id"`
	CustomerName string  `yaml:"customer_name"`
	Date         string  `yaml:"date"`
	Status       string  `yaml:"status"`
	Total        float64 `yaml:"total"`
}

type fileSeed struct {
	Orders []fileOrder `yaml:"orders"`
}

var (
	// ErrEmptySeed — в файле нет ни одного заказа.
	ErrEmptySeed = errors.New("seed file contains no orders")
	// ErrInvalidTotal — сумма не число или не помещается в int64 центов.
	ErrInvalidTotal = errors.New("order total is not a representable amount")
)

// LoadFile читает заказы из YAML-файла.
func LoadFile(path string) ([]domain.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	orders, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return orders, nil
}

// Decode разбирает YAML-фикстуру. Инварианты (уникальность ID и т.п.)
// проверяет хранилище при инициализации.
func Decode(r io.Reader) ([]domain.Order, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc fileSeed
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySeed
		}
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	if len(doc.Orders) == 0 {
		return nil, ErrEmptySeed
	}

	orders := make([]domain.Order, 0, len(doc.Orders))
	for i, raw := range doc.Orders {
		status, err := domain.ParseOrderStatus(raw.Status)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		date, err := domain.ParseOrderDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		totalMinor, err := toMinor(raw.Total)
		if err != nil {
			return nil, fmt.Errorf("orders[%d] %s: %w", i, raw.ID, err)
		}
		orders = append(orders, domain.Order{
			ID:           raw.ID,
			CustomerName: raw.CustomerName,
			Date:         date,
			Status:       status,
			TotalMinor:   totalMinor,
		})
	}
	return orders, nil
}

// toMinor переводит доллары в центы. float64(math.MaxInt64) равно 2^63,
// поэтому верхняя граница строгая.
func toMinor(total float64) (int64, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTotal, total)
	}
	cents := math.Round(total * 100)
	if cents >= math.MaxInt64 || cents < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTotal, total)
	}
	return int64(cents), nil
}
