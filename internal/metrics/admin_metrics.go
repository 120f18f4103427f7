package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// Исходы сессии редактирования для метки outcome.
const (
	EditOutcomeOpened    = "opened"
	EditOutcomeCommitted = "committed"
	EditOutcomeCancelled = "cancelled"
	EditOutcomeFailed    = "failed"
)

// AdminMetrics содержит метрики админки заказов.
type AdminMetrics struct {
	// Смены статусов по целевому статусу
	statusUpdates *prometheus.CounterVec
	// Исходы сессий редактирования
	editSessions *prometheus.CounterVec

	filterDuration prometheus.Histogram
	visibleOrders  prometheus.Gauge

	outboxEvents *prometheus.CounterVec
}

// NewAdminMetrics создаёт метрики в DefaultRegisterer.
func NewAdminMetrics() *AdminMetrics {
	return NewAdminMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewAdminMetricsWithRegisterer создаёт метрики в указанном registerer (удобно для тестов).
func NewAdminMetricsWithRegisterer(registerer prometheus.Registerer) *AdminMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &AdminMetrics{
		statusUpdates: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "oms_admin_status_updates_total",
			Help: "Total number of committed order status changes by new status",
		}, []string{"status"}),
		editSessions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "oms_admin_edit_sessions_total",
			Help: "Total number of edit session transitions by outcome",
		}, []string{"outcome"}),
		filterDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "oms_admin_filter_duration_seconds",
			Help:    "Duration of order list filtering in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		visibleOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "oms_admin_visible_orders",
			Help: "Number of orders visible with the current filter criteria",
		}),
		outboxEvents: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "oms_admin_outbox_events_total",
			Help: "Total number of order events passed through the outbox by result",
		}, []string{"result"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordStatusUpdate — подписчик хранилища: считает закоммиченные смены статуса.
func (m *AdminMetrics) RecordStatusUpdate(event domain.OrderUpdated) {
	m.statusUpdates.WithLabelValues(string(event.NewStatus)).Inc()
}

// RecordEditSession увеличивает счётчик исходов сессии редактирования.
func (m *AdminMetrics) RecordEditSession(outcome string) {
	m.editSessions.WithLabelValues(outcome).Inc()
}

// ObserveFilter записывает время пересчёта и размер видимого списка.
func (m *AdminMetrics) ObserveFilter(duration time.Duration, visible int) {
	m.filterDuration.Observe(duration.Seconds())
	m.visibleOrders.Set(float64(visible))
}

// RecordOutboxEvent увеличивает счётчик событий outbox с указанным результатом.
func (m *AdminMetrics) RecordOutboxEvent(result string) {
	m.outboxEvents.WithLabelValues(result).Inc()
}
