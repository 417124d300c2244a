package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("encode response", slog.Any("error", err))
	}
}

// ErrorStatus maps sentinel errors onto HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrAlreadyBootstrapped):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an HTTP response. Client errors carry the error
// detail; server errors are logged and the detail withheld.
func WriteError(logger *slog.Logger, w http.ResponseWriter, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	msg := err.Error()
	if status == http.StatusBadRequest {
		// Trim the sentinel prefix so clients see the detail only.
		if idx := strings.Index(msg, ": "); idx >= 0 {
			msg = msg[idx+2:]
		}
	}
	WriteJSON(logger, w, status, map[string]string{"error": msg})
}
