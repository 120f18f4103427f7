package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/metrics"
)

func testLogger() *log.Entry {
	logger, _ := test.NewNullLogger()
	return log.NewEntry(logger)
}

func newTestDependencies(t *testing.T, cfg Config) *Dependencies {
	t.Helper()
	deps, err := NewDependencies(cfg, nil, metrics.NewAdminMetricsWithRegisterer(prometheus.NewRegistry()), testLogger())
	if err != nil {
		t.Fatalf("NewDependencies: %v", err)
	}
	t.Cleanup(deps.Close)
	return deps
}

func TestNewDependencies_DefaultSeed(t *testing.T) {
	deps := newTestDependencies(t, DefaultConfig())

	if deps.Store.Len() != 7 {
		t.Fatalf("expected 7 demo orders, got %d", deps.Store.Len())
	}
	if got := len(deps.View.VisibleOrders()); got != 7 {
		t.Fatalf("expected 7 visible orders, got %d", got)
	}
	if deps.Relay == nil || deps.Session == nil {
		t.Fatal("expected relay and session to be initialized")
	}
}

func TestNewDependencies_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	content := `orders:
  - id: A-1
    customer_name: Zoe Quinn
    date: "2024-01-02"
    status: Shipped
    total: 12.5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.SeedFile = path
	deps := newTestDependencies(t, cfg)

	order, err := deps.Store.Get("A-1")
	if err != nil {
		t.Fatalf("expected seeded order: %v", err)
	}
	if order.TotalMinor != 1250 {
		t.Errorf("expected total 1250, got %d", order.TotalMinor)
	}
}

func TestNewDependencies_MissingSeedFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewDependencies(cfg, nil, metrics.NewAdminMetricsWithRegisterer(prometheus.NewRegistry()), testLogger())
	if err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestNewDependencies_CommitFansOut(t *testing.T) {
	deps := newTestDependencies(t, DefaultConfig())

	if err := deps.View.EditStatus("ORD003"); err != nil {
		t.Fatalf("EditStatus: %v", err)
	}
	if err := deps.View.ChooseStatus(domain.OrderStatusShipped); err != nil {
		t.Fatalf("ChooseStatus: %v", err)
	}

	events, err := deps.Timeline.List("ORD003")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(events) != 1 || events[0].Reason != "Processing -> Shipped" {
		t.Fatalf("unexpected timeline %+v", events)
	}

	stats, err := deps.Outbox.Stats()
	if err != nil {
		t.Fatalf("outbox stats: %v", err)
	}
	if stats.PendingCount != 1 {
		t.Fatalf("expected 1 pending outbox message, got %d", stats.PendingCount)
	}

	deps.Relay.ProcessOnce(context.Background())

	stats, err = deps.Outbox.Stats()
	if err != nil {
		t.Fatalf("outbox stats: %v", err)
	}
	if stats.PendingCount != 0 {
		t.Fatalf("expected outbox drained by relay, got %d pending", stats.PendingCount)
	}
}

func TestDependencies_CloseStopsFanOut(t *testing.T) {
	deps, err := NewDependencies(DefaultConfig(), nil, metrics.NewAdminMetricsWithRegisterer(prometheus.NewRegistry()), testLogger())
	if err != nil {
		t.Fatalf("NewDependencies: %v", err)
	}
	deps.Close()

	if err := deps.Store.UpdateStatus("ORD001", domain.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	events, _ := deps.Timeline.List("ORD001")
	if len(events) != 0 {
		t.Fatalf("expected no timeline events after Close, got %d", len(events))
	}
}
