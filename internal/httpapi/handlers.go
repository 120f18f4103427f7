package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/filter"
)

func (s *Server) handleStatuses(w http.ResponseWriter, _ *http.Request) {
	statuses := domain.OrderStatuses()
	out := make([]statusDTO, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, statusDTO{Status: string(status), Badge: status.BadgeVariant()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleListOrders фильтрует заказы без изменения состояния страницы.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status, err := domain.ParseStatusFilter(query.Get("status"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	criteria := domain.FilterCriteria{SearchTerm: query.Get("search"), Status: status}

	visible := filter.Apply(s.store.List(), criteria)
	writeJSON(w, http.StatusOK, newListResponse(criteria, visible, filter.EmptyStateMessage))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.store.Get(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.timeline.List(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := timelineResponse{OrderID: id, Events: make([]timelineEventDTO, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, timelineEventDTO{
			Type:     event.Type,
			Reason:   event.Reason,
			Occurred: event.Occurred,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}
	status, err := domain.ParseStatusFilter(req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.view.SetCriteria(domain.FilterCriteria{SearchTerm: req.Search, Status: status})
	writeJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handleOpenEdit(w http.ResponseWriter, r *http.Request) {
	if err := s.view.EditStatus(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handleSelectStatus(w http.ResponseWriter, r *http.Request) {
	var req selectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.view.ChooseStatus(status); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	if err := s.view.CancelEdit(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) viewResponse() viewResponse {
	snapshot := s.view.Snapshot()
	return viewResponse{
		listResponse: newListResponse(snapshot.Criteria, snapshot.Visible, snapshot.EmptyMessage),
		Dialog:       toDialogDTO(snapshot.Dialog),
	}
}
