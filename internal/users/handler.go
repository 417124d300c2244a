package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Handler exposes the superadmin bootstrap API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the users handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/api/users/bootstrap", h.bootstrap)
}

func (h *Handler) bootstrap(w http.ResponseWriter, r *http.Request) {
	var input BootstrapInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		shared.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}
	user, err := h.service.Bootstrap(r.Context(), input)
	switch {
	case err == nil:
		shared.WriteJSON(h.logger, w, http.StatusCreated, user)
	case errors.Is(err, shared.ErrAlreadyBootstrapped):
		shared.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
			"error": "a superadmin account already exists",
		})
	default:
		shared.WriteError(h.logger, w, err)
	}
}
