package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/validation"
)

// errorResponse is the JSON error body of the dashboard API.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// errorHandler tries to handle an error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	validationHandler,
	sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"),
	sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, "invalid request"),
	sentinelHandler(domain.ErrProviderError, http.StatusBadGateway, "upstream service error"),
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, h := range errorHandlers {
		if h(w, err) {
			s.logger.Debug("request error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: verr.Fields})
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
