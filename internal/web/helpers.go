package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidColorFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnresolvedTheme):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConstraintConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, errorJSON{Error: what + " not found"})
}
