package memory_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/storage/memory"
	"github.com/vladislavdragonenkov/oms-admin/internal/storage/seed"
)

func newStore(t *testing.T) *memory.OrderStore {
	t.Helper()
	store, err := memory.NewOrderStore(seed.DemoOrders())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	return store
}

func TestNewOrderStore_PreservesSeedOrder(t *testing.T) {
	store := newStore(t)

	if !reflect.DeepEqual(store.List(), seed.DemoOrders()) {
		t.Fatal("expected list to equal seed in insertion order")
	}
	if store.Len() != 7 {
		t.Fatalf("expected 7 orders, got %d", store.Len())
	}
}

func TestNewOrderStore_DuplicateID(t *testing.T) {
	orders := seed.DemoOrders()
	orders = append(orders, orders[0])

	store, err := memory.NewOrderStore(orders)
	if store != nil {
		t.Fatal("expected no store on invariant violation")
	}
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if !errors.Is(err, domain.ErrDuplicateOrderID) {
		t.Fatalf("expected ErrDuplicateOrderID, got %v", err)
	}
}

func TestNewOrderStore_InvalidOrder(t *testing.T) {
	orders := seed.DemoOrders()
	orders[3].TotalMinor = -10
	orders[3].Status = "Lost"

	_, err := memory.NewOrderStore(orders)
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if !errors.Is(err, domain.ErrTotalNegative) || !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected both invariant causes, got %v", err)
	}
}

func TestNewOrderStore_Empty(t *testing.T) {
	store, err := memory.NewOrderStore(nil)
	if err != nil {
		t.Fatalf("empty seed must be valid: %v", err)
	}
	if got := store.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestOrderStore_UpdateStatus(t *testing.T) {
	store := newStore(t)
	before := store.List()

	if err := store.UpdateStatus("ORD003", domain.OrderStatusDelivered); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	after := store.List()
	if len(after) != len(before) {
		t.Fatalf("expected %d orders, got %d", len(before), len(after))
	}

	matches := 0
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Fatalf("position %d changed: %s -> %s", i, before[i].ID, after[i].ID)
		}
		if after[i].ID != "ORD003" {
			if after[i] != before[i] {
				t.Fatalf("order %s changed unexpectedly", after[i].ID)
			}
			continue
		}
		matches++
		if after[i].Status != domain.OrderStatusDelivered {
			t.Fatalf("expected Delivered, got %s", after[i].Status)
		}
		expected := before[i]
		expected.Status = domain.OrderStatusDelivered
		if after[i] != expected {
			t.Fatalf("only status may change: %+v vs %+v", after[i], expected)
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one ORD003, got %d", matches)
	}
}

func TestOrderStore_UpdateStatusNotFound(t *testing.T) {
	store := newStore(t)
	before := store.List()

	err := store.UpdateStatus("NOPE", domain.OrderStatusShipped)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, store.List()) {
		t.Fatal("store must be unchanged after failed update")
	}
}

func TestOrderStore_UpdateStatusInvalid(t *testing.T) {
	store := newStore(t)
	before := store.List()

	err := store.UpdateStatus("ORD001", "Lost")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if !reflect.DeepEqual(before, store.List()) {
		t.Fatal("store must be unchanged after invalid status")
	}
}

func TestOrderStore_ListReturnsSnapshot(t *testing.T) {
	store := newStore(t)

	snapshot := store.List()
	snapshot[0].Status = domain.OrderStatusCancelled

	got, err := store.Get(snapshot[0].ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status == domain.OrderStatusCancelled {
		t.Fatal("mutating a snapshot must not change the store")
	}
}

func TestOrderStore_Get(t *testing.T) {
	store := newStore(t)

	order, err := store.Get("ORD006")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if order.CustomerName != "Fiona Garcia" {
		t.Fatalf("unexpected customer %s", order.CustomerName)
	}
	if _, err := store.Get("ORD999"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStore_Subscribe(t *testing.T) {
	store := newStore(t)

	var (
		first  []domain.OrderUpdated
		second []domain.OrderUpdated
		calls  []string
	)
	unsubscribeFirst := store.Subscribe(func(event domain.OrderUpdated) {
		first = append(first, event)
		calls = append(calls, "first")
	})
	store.Subscribe(func(event domain.OrderUpdated) {
		second = append(second, event)
		calls = append(calls, "second")
	})

	if err := store.UpdateStatus("ORD002", domain.OrderStatusDelivered); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one event per subscriber, got %d/%d", len(first), len(second))
	}
	event := first[0]
	if event.OrderID != "ORD002" || event.NewStatus != domain.OrderStatusDelivered || event.PreviousStatus != domain.OrderStatusShipped {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("expected event timestamp")
	}
	if !reflect.DeepEqual(calls, []string{"first", "second"}) {
		t.Fatalf("expected subscription order, got %v", calls)
	}

	unsubscribeFirst()
	unsubscribeFirst()
	if err := store.UpdateStatus("ORD002", domain.OrderStatusShipped); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("unsubscribed handler must not be called, got %d events", len(first))
	}
	if len(second) != 2 {
		t.Fatalf("expected second subscriber to get 2 events, got %d", len(second))
	}

	if err := store.UpdateStatus("NOPE", domain.OrderStatusShipped); err == nil {
		t.Fatal("expected error")
	}
	if len(second) != 2 {
		t.Fatal("failed update must not notify subscribers")
	}
}

func TestOrderStore_SubscriberCanReadStore(t *testing.T) {
	store := newStore(t)

	var seen domain.OrderStatus
	store.Subscribe(func(event domain.OrderUpdated) {
		order, err := store.Get(event.OrderID)
		if err != nil {
			t.Errorf("get inside handler: %v", err)
			return
		}
		seen = order.Status
	})

	if err := store.UpdateStatus("ORD007", domain.OrderStatusShipped); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if seen != domain.OrderStatusShipped {
		t.Fatalf("handler must observe committed status, got %s", seen)
	}
}

func TestOrderStore_ConcurrentReadersSeeWholeRecords(t *testing.T) {
	store := newStore(t)
	seeded := seed.DemoOrders()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for i, order := range store.List() {
					if order.ID != seeded[i].ID || order.CustomerName != seeded[i].CustomerName || order.TotalMinor != seeded[i].TotalMinor {
						t.Errorf("reader observed a corrupted record: %+v", order)
						return
					}
					if !order.Status.IsValid() {
						t.Errorf("reader observed invalid status %q", order.Status)
						return
					}
				}
			}
		}()
	}

	statuses := domain.OrderStatuses()
	for i := 0; i < 200; i++ {
		if err := store.UpdateStatus("ORD004", statuses[i%len(statuses)]); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}
	close(stop)
	wg.Wait()
}
