package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
)

// Коды ошибок в теле ответа.
const (
	CodeNotFound       = "not_found"
	CodeInvalidState   = "invalid_state"
	CodeInvalidStatus  = "invalid_status"
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal"
)

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// classify сопоставляет доменную ошибку с HTTP-статусом и кодом.
func classify(err error) (int, string) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, CodeNotFound
	case domain.IsInvalidState(err):
		return http.StatusConflict, CodeInvalidState
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, CodeInvalidStatus
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, CodeInvalidRequest
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	entry := s.logger.WithError(err).WithField("path", r.URL.Path)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
