package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/oms-admin/internal/metrics"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/editsession"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/ordersview"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/outbox"
	"github.com/vladislavdragonenkov/oms-admin/internal/storage/memory"
	"github.com/vladislavdragonenkov/oms-admin/internal/storage/seed"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Store    *memory.OrderStore
	Timeline *memory.TimelineRepository
	Outbox   *memory.OutboxRepository
	Metrics  *metrics.AdminMetrics
	Session  *editsession.Session
	View     *ordersview.View
	Relay    *outbox.Relay
	Producer *kafka.Producer
	Logger   *log.Entry

	unsubscribe []func()
}

// NewDependencies загружает заказы, создаёт хранилище и подписывает на него
// timeline, метрики и outbox. Producer может быть nil.
func NewDependencies(cfg Config, producer *kafka.Producer, adminMetrics *metrics.AdminMetrics, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if adminMetrics == nil {
		adminMetrics = metrics.NewAdminMetrics()
	}

	orders, err := loadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	store, err := memory.NewOrderStore(orders)
	if err != nil {
		return nil, fmt.Errorf("init order store: %w", err)
	}
	logger.WithField("orders", store.Len()).Info("order store initialized")

	deps := &Dependencies{
		Store:    store,
		Timeline: memory.NewTimelineRepository(logger.WithField("component", "timeline")),
		Outbox:   memory.NewOutboxRepository(),
		Metrics:  adminMetrics,
		Producer: producer,
		Logger:   logger,
	}

	deps.subscribe(deps.Timeline.Record)
	deps.subscribe(adminMetrics.RecordStatusUpdate)
	deps.subscribe(outbox.NewEnqueuer(
		deps.Outbox,
		kafka.NewOrderStatusMessage,
		adminMetrics,
		logger.WithField("component", "outbox-enqueuer"),
	))

	deps.Session = editsession.New(store,
		editsession.WithLogger(logger.WithField("component", "edit-session")),
		editsession.WithRecorder(adminMetrics),
	)
	deps.View = ordersview.New(store, deps.Session,
		ordersview.WithLogger(logger.WithField("component", "orders-view")),
		ordersview.WithObserver(adminMetrics),
	)

	deps.Relay = outbox.NewRelay(
		deps.Outbox,
		newOutboxPublisher(producer, cfg.KafkaTopic, logger),
		outbox.WithLogger(logger.WithField("component", "outbox-relay")),
		outbox.WithRecorder(adminMetrics),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)

	return deps, nil
}

func (d *Dependencies) subscribe(handler domain.OrderUpdatedHandler) {
	d.unsubscribe = append(d.unsubscribe, d.Store.Subscribe(handler))
}

// Close снимает подписки с хранилища.
func (d *Dependencies) Close() {
	if d.View != nil {
		d.View.Close()
	}
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}

func loadSeed(path string) ([]domain.Order, error) {
	if path == "" {
		return seed.DemoOrders(), nil
	}
	orders, err := seed.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}
	return orders, nil
}
