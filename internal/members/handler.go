package members

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Handler exposes the member registration API.
type Handler struct {
	logger  *slog.Logger
	service *Service
	dev     bool
}

// NewHandler builds the members handler. When dev is true, internal error
// detail is included in 500 responses.
func NewHandler(logger *slog.Logger, service *Service, dev bool) *Handler {
	return &Handler{logger: logger, service: service, dev: dev}
}

// MountRoutes registers member API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/api/members/register", h.register)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		shared.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}
	member, err := h.service.Register(r.Context(), input)
	switch {
	case err == nil:
		shared.WriteJSON(h.logger, w, http.StatusCreated, member)
	case errors.Is(err, shared.ErrValidation):
		shared.WriteError(h.logger, w, err)
	case errors.Is(err, shared.ErrDuplicate):
		shared.WriteJSON(h.logger, w, http.StatusConflict, map[string]string{
			"error": "a member with this email or ID number already exists",
		})
	default:
		if h.logger != nil {
			h.logger.Error("register member", slog.Any("error", err))
		}
		detail := http.StatusText(http.StatusInternalServerError)
		if h.dev {
			detail = err.Error()
		}
		shared.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": detail})
	}
}
