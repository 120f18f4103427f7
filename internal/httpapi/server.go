// Package httpapi — REST-интерфейс админки заказов поверх gorilla/mux.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/ordersview"
)

// Server держит маршруты и зависимости HTTP API.
type Server struct {
	Router   *mux.Router
	store    domain.OrderStore
	timeline domain.TimelineRepository
	view     *ordersview.View
	logger   *log.Entry
}

// NewServer регистрирует маршруты API.
func NewServer(store domain.OrderStore, timeline domain.TimelineRepository, view *ordersview.View, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	s := &Server{
		Router:   mux.NewRouter(),
		store:    store,
		timeline: timeline,
		view:     view,
		logger:   logger,
	}

	s.Router.Use(s.logRequests)

	s.Router.HandleFunc("/api/statuses", s.handleStatuses).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/orders", s.handleListOrders).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/orders/{id}/timeline", s.handleTimeline).Methods(http.MethodGet)

	s.Router.HandleFunc("/api/view", s.handleGetView).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/view/filter", s.handleSetFilter).Methods(http.MethodPut)
	s.Router.HandleFunc("/api/view/orders/{id}/edit", s.handleOpenEdit).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/view/edit/status", s.handleSelectStatus).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/view/edit/cancel", s.handleCancelEdit).Methods(http.MethodPost)

	return s
}

// ServeHTTP делегирует роутеру.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("http request")
	})
}
