// Package outbox доставляет уведомления о смене статуса заказов наружу:
// Enqueuer кладёт их в outbox, Relay периодически публикует backlog.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

const (
	defaultPollInterval   = 1 * time.Second
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 50 * time.Millisecond
	defaultStallTimeout   = 30 * time.Second
)

// ErrRelayStalled — relay давно не завершал цикл опроса.
var ErrRelayStalled = errors.New("outbox relay stalled")

// Результаты для метрики outbox-событий.
const (
	ResultEnqueued      = "enqueued"
	ResultEnqueueFailed = "enqueue_failed"
	ResultSent          = "sent"
	ResultRetry         = "retry_error"
	ResultFailed        = "failed"
)

var (
	outboxPendingRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oms_admin_outbox_pending_records",
		Help: "Current number of pending order events in the outbox.",
	})
	outboxOldestPendingAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oms_admin_outbox_oldest_pending_age_seconds",
		Help: "Age in seconds of the oldest pending outbox record.",
	})
)

// Recorder принимает результаты обработки outbox-событий.
type Recorder interface {
	RecordOutboxEvent(result string)
}

type noopRecorder struct{}

func (noopRecorder) RecordOutboxEvent(string) {}

// Relay публикует pending-сообщения из outbox.
type Relay struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	logger    *log.Entry
	recorder  Recorder

	pollInterval   time.Duration
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	stallTimeout   time.Duration

	mu        sync.Mutex
	lastCycle time.Time
	lastErr   error
}

// Option настраивает Relay.
type Option func(*Relay)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(r *Relay) { r.logger = logger }
}

// WithRecorder задаёт приёмник метрик.
func WithRecorder(recorder Recorder) Option {
	return func(r *Relay) { r.recorder = recorder }
}

// WithPollInterval задаёт частоту опроса outbox.
func WithPollInterval(interval time.Duration) Option {
	return func(r *Relay) { r.pollInterval = interval }
}

// WithBatchSize задаёт размер батча.
func WithBatchSize(batchSize int) Option {
	return func(r *Relay) { r.batchSize = batchSize }
}

// WithMaxAttempts задаёт число попыток публикации одного сообщения.
func WithMaxAttempts(maxAttempts int) Option {
	return func(r *Relay) { r.maxAttempts = maxAttempts }
}

// WithRetryBaseDelay задаёт паузу перед второй попыткой; дальше она удваивается.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(r *Relay) { r.retryBaseDelay = delay }
}

// WithStallTimeout задаёт, сколько relay может не завершать цикл,
// прежде чем Check сочтёт его зависшим.
func WithStallTimeout(timeout time.Duration) Option {
	return func(r *Relay) { r.stallTimeout = timeout }
}

// NewRelay создаёт relay. Нулевые и отрицательные параметры
// заменяются значениями по умолчанию.
func NewRelay(repo domain.OutboxRepository, publisher domain.OutboxPublisher, options ...Option) *Relay {
	r := &Relay{repo: repo, publisher: publisher}
	for _, apply := range options {
		apply(r)
	}

	if r.logger == nil {
		r.logger = log.WithField("component", "outbox-relay")
	}
	if r.recorder == nil {
		r.recorder = noopRecorder{}
	}
	r.pollInterval = positiveOr(r.pollInterval, defaultPollInterval)
	r.batchSize = positiveOr(r.batchSize, defaultBatchSize)
	r.maxAttempts = positiveOr(r.maxAttempts, defaultMaxAttempts)
	r.stallTimeout = positiveOr(r.stallTimeout, max(defaultStallTimeout, 3*r.pollInterval))
	r.retryBaseDelay = max(r.retryBaseDelay, 0)

	return r
}

func positiveOr[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}

// Check сообщает, жив ли relay: последний опрос outbox прошёл без ошибки
// и цикл завершался не раньше stallTimeout назад. До первого цикла
// relay считается здоровым.
func (r *Relay) Check() error {
	r.mu.Lock()
	lastCycle, lastErr := r.lastCycle, r.lastErr
	r.mu.Unlock()

	if lastErr != nil {
		return fmt.Errorf("last outbox pull failed: %w", lastErr)
	}
	if lastCycle.IsZero() {
		return nil
	}
	if idle := time.Since(lastCycle); idle > r.stallTimeout {
		return fmt.Errorf("%w: no cycle for %s", ErrRelayStalled, idle.Round(time.Second))
	}
	return nil
}

func (r *Relay) finishCycle(err error) {
	r.mu.Lock()
	r.lastCycle = time.Now()
	r.lastErr = err
	r.mu.Unlock()
}

// Run опрашивает outbox до отмены ctx.
func (r *Relay) Run(ctx context.Context) {
	if r.repo == nil || r.publisher == nil {
		r.logger.Warn("outbox relay is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один цикл: забирает батч и публикует его по порядку.
func (r *Relay) ProcessOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	messages, err := r.repo.PullPending(r.batchSize)
	if err != nil {
		r.logger.WithError(err).Warn("failed to pull pending outbox messages")
		r.finishCycle(err)
		return
	}

	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}

		logger := r.logger.WithFields(log.Fields{
			"outbox_id":  msg.ID,
			"order_id":   msg.AggregateID,
			"event_type": msg.EventType,
		})

		if err := r.publishWithRetry(ctx, msg); err != nil {
			logger.WithError(err).Error("outbox publish failed after retries")
			r.recorder.RecordOutboxEvent(ResultFailed)
			if markErr := r.repo.MarkFailed(msg.ID); markErr != nil {
				logger.WithError(markErr).Warn("failed to mark outbox as failed")
			}
			continue
		}

		r.recorder.RecordOutboxEvent(ResultSent)
		if err := r.repo.MarkSent(msg.ID); err != nil {
			logger.WithError(err).Warn("failed to mark outbox as sent")
		}
	}

	r.refreshBacklogMetrics()
	r.finishCycle(nil)
}

func (r *Relay) publishWithRetry(ctx context.Context, msg domain.OutboxMessage) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.publisher.Publish(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		r.recorder.RecordOutboxEvent(ResultRetry)

		if attempt >= r.maxAttempts {
			break
		}

		delay := r.retryBackoff(attempt)
		if delay <= 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", domain.ErrOutboxPublish, r.maxAttempts, lastErr)
}

func (r *Relay) retryBackoff(attempt int) time.Duration {
	if r.retryBaseDelay <= 0 {
		return 0
	}

	const maxDuration = time.Duration(1<<63 - 1)
	delay := r.retryBaseDelay
	for i := 1; i < attempt; i++ {
		if delay > maxDuration/2 {
			return maxDuration
		}
		delay *= 2
	}
	return delay
}

func (r *Relay) refreshBacklogMetrics() {
	stats, err := r.repo.Stats()
	if err != nil {
		r.logger.WithError(err).Warn("failed to collect outbox backlog stats")
		return
	}

	outboxPendingRecords.Set(float64(stats.PendingCount))
	if stats.PendingCount == 0 || stats.OldestPendingAt.IsZero() {
		outboxOldestPendingAge.Set(0)
		return
	}
	outboxOldestPendingAge.Set(max(time.Since(stats.OldestPendingAt).Seconds(), 0))
}
