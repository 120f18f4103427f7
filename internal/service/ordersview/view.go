// Package ordersview связывает хранилище, фильтр и сессию редактирования в
// единое состояние страницы заказов: видимый список и модальное окно.
package ordersview

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/editsession"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/filter"
)

// FilterObserver получает длительность пересчёта и размер видимого списка.
type FilterObserver interface {
	ObserveFilter(duration time.Duration, visible int)
}

type noopObserver struct{}

func (noopObserver) ObserveFilter(time.Duration, int) {}

// Snapshot — всё, что нужно UI для отрисовки страницы.
type Snapshot struct {
	Criteria     domain.FilterCriteria
	Visible      []domain.Order
	Empty        bool
	EmptyMessage string
	Dialog       domain.EditDialogState
}

// Option настраивает View.
type Option func(*View)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithObserver задаёт приёмник метрик фильтрации.
func WithObserver(observer FilterObserver) Option {
	return func(v *View) {
		if observer != nil {
			v.observer = observer
		}
	}
}

// View — единственный актор страницы заказов. Вызовы сериализуются.
type View struct {
	mu       sync.Mutex
	store    domain.OrderStore
	session  *editsession.Session
	criteria domain.FilterCriteria
	visible  []domain.Order

	// dirty выставляет подписчик хранилища; следующий read пересчитает список.
	dirty       atomic.Bool
	unsubscribe func()

	logger   *log.Entry
	observer FilterObserver
}

// New создаёт представление с критериями "все заказы" и подписывается на хранилище.
func New(store domain.OrderStore, session *editsession.Session, opts ...Option) *View {
	v := &View{
		store:    store,
		session:  session,
		criteria: domain.AllOrders(),
		logger:   log.WithField("component", "orders-view"),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(v)
	}

	v.unsubscribe = store.Subscribe(v.onOrderUpdated)
	v.recompute()
	return v
}

// Close отписывает представление от хранилища.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}

func (v *View) onOrderUpdated(event domain.OrderUpdated) {
	v.dirty.Store(true)
	v.logger.WithFields(log.Fields{
		"order_id": event.OrderID,
		"status":   event.NewStatus,
	}).Debug("order updated, visible list invalidated")
}

// recompute пересчитывает видимый список; вызывается под v.mu.
func (v *View) recompute() {
	v.dirty.Store(false)
	start := time.Now()
	v.visible = filter.Apply(v.store.List(), v.criteria)
	v.observer.ObserveFilter(time.Since(start), len(v.visible))
}

func (v *View) refreshLocked() {
	if v.dirty.Load() {
		v.recompute()
	}
}

// SetSearchTerm обновляет строку поиска (на каждое нажатие клавиши).
func (v *View) SetSearchTerm(term string) []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.criteria.SearchTerm = term
	v.recompute()
	return v.visibleCopy()
}

// SetStatusFilter обновляет фильтр по статусу.
func (v *View) SetStatusFilter(status domain.StatusFilter) []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	if status == "" {
		status = domain.StatusFilterAll
	}
	v.criteria.Status = status
	v.recompute()
	return v.visibleCopy()
}

// SetCriteria заменяет оба критерия разом.
func (v *View) SetCriteria(criteria domain.FilterCriteria) []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	if criteria.Status == "" {
		criteria.Status = domain.StatusFilterAll
	}
	v.criteria = criteria
	v.recompute()
	return v.visibleCopy()
}

// Criteria возвращает текущие критерии.
func (v *View) Criteria() domain.FilterCriteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// VisibleOrders возвращает отфильтрованный список против последнего закоммиченного состояния.
func (v *View) VisibleOrders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.refreshLocked()
	return v.visibleCopy()
}

// IsEmpty сообщает, что нужно показать пустое состояние.
func (v *View) IsEmpty() bool {
	return filter.IsEmpty(v.VisibleOrders())
}

// EmptyStateMessage возвращает текст пустого состояния.
func (v *View) EmptyStateMessage() string {
	return filter.EmptyStateMessage
}

// DialogState возвращает состояние модального окна редактирования.
func (v *View) DialogState() domain.EditDialogState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.DialogState()
}

// Snapshot собирает критерии, видимый список и состояние окна за один вызов.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.refreshLocked()
	snapshot := Snapshot{
		Criteria: v.criteria,
		Visible:  v.visibleCopy(),
		Dialog:   v.session.DialogState(),
	}
	if filter.IsEmpty(snapshot.Visible) {
		snapshot.Empty = true
		snapshot.EmptyMessage = filter.EmptyStateMessage
	}
	return snapshot
}

// EditStatus — пользователь выбрал "Edit Status" в строке. Ранее открытая
// сессия отменяется без изменений, затем открывается новая.
func (v *View) EditStatus(orderID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session.State() == editsession.StateOpen && v.session.TargetOrderID() != orderID {
		if err := v.session.Cancel(); err != nil {
			return fmt.Errorf("replace edit session: %w", err)
		}
	}
	return v.session.Open(orderID)
}

// ChooseStatus вызывается, когда пользователь выбрал статус в окне.
func (v *View) ChooseStatus(status domain.OrderStatus) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	err := v.session.SelectStatus(status)
	v.refreshLocked()
	return err
}

// CancelEdit закрывает окно без выбора статуса.
func (v *View) CancelEdit() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.Cancel()
}

func (v *View) visibleCopy() []domain.Order {
	result := make([]domain.Order, len(v.visible))
	copy(result, v.visible)
	return result
}
