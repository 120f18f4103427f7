// Package editsession реализует короткую транзакцию смены статуса одного заказа:
// Closed -> Open(order) -> Closed через SelectStatus или Cancel.
package editsession

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/metrics"
)

// State — состояние сессии редактирования.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// Recorder принимает исходы сессии для метрик.
type Recorder interface {
	RecordEditSession(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordEditSession(string) {}

// Option настраивает Session.
type Option func(*Session)

// WithLogger задаёт logger сессии.
func WithLogger(logger *log.Entry) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder задаёт приёмник метрик.
func WithRecorder(recorder Recorder) Option {
	return func(s *Session) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// Session — не более одной открытой сессии на экземпляр.
type Session struct {
	mu       sync.Mutex
	store    domain.OrderStore
	targetID string
	open     bool

	logger   *log.Entry
	recorder Recorder
}

// New создаёт закрытую сессию поверх хранилища заказов.
func New(store domain.OrderStore, opts ...Option) *Session {
	s := &Session{
		store:    store,
		logger:   log.WithField("component", "edit-session"),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open открывает сессию для заказа. Повторный Open того же заказа ничего не
// меняет, Open другого заказа при открытой сессии возвращает ErrInvalidState.
func (s *Session) Open(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		if s.targetID == orderID {
			return nil
		}
		return fmt.Errorf("%w: open %s while editing %s", domain.ErrInvalidState, orderID, s.targetID)
	}

	if _, err := s.store.Get(orderID); err != nil {
		return fmt.Errorf("open edit session: %w", err)
	}

	s.targetID = orderID
	s.open = true
	s.recorder.RecordEditSession(metrics.EditOutcomeOpened)
	s.logger.WithField("order_id", orderID).Debug("edit session opened")
	return nil
}

// SelectStatus коммитит новый статус в хранилище. После вызова сессия закрыта
// и при успехе, и при ошибке хранилища; ошибка возвращается вызывающему.
// Статус вне перечисления отклоняется, сессия остаётся открытой.
func (s *Session) SelectStatus(status domain.OrderStatus) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return fmt.Errorf("%w: select status without open session", domain.ErrInvalidState)
	}
	if !status.IsValid() {
		s.mu.Unlock()
		return fmt.Errorf("select status: %w: %q", domain.ErrInvalidStatus, status)
	}

	orderID := s.targetID
	s.targetID = ""
	s.open = false
	// Подписчики хранилища вызываются синхронно, поэтому коммит идёт без s.mu.
	s.mu.Unlock()

	logger := s.logger.WithFields(log.Fields{
		"order_id": orderID,
		"status":   status,
	})
	if err := s.store.UpdateStatus(orderID, status); err != nil {
		s.recorder.RecordEditSession(metrics.EditOutcomeFailed)
		logger.WithError(err).Warn("status update rejected, edit session closed")
		return fmt.Errorf("commit edit session: %w", err)
	}

	s.recorder.RecordEditSession(metrics.EditOutcomeCommitted)
	logger.Info("order status updated")
	return nil
}

// Cancel закрывает сессию без изменений в хранилище.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return fmt.Errorf("%w: cancel without open session", domain.ErrInvalidState)
	}

	s.logger.WithField("order_id", s.targetID).Debug("edit session cancelled")
	s.targetID = ""
	s.open = false
	s.recorder.RecordEditSession(metrics.EditOutcomeCancelled)
	return nil
}

// State возвращает текущее состояние.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return StateOpen
	}
	return StateClosed
}

// TargetOrderID возвращает ID редактируемого заказа; пусто, если сессия закрыта.
func (s *Session) TargetOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetID
}

// DialogState возвращает состояние модального окна со свежим снимком заказа.
func (s *Session) DialogState() domain.EditDialogState {
	s.mu.Lock()
	targetID, open := s.targetID, s.open
	s.mu.Unlock()

	if !open {
		return domain.EditDialogState{}
	}

	order, err := s.store.Get(targetID)
	if err != nil {
		return domain.EditDialogState{IsOpen: true}
	}
	return domain.EditDialogState{IsOpen: true, Target: &order}
}
