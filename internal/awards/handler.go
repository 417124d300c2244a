package awards

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Handler exposes the nomination voting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the awards handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers awards routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/awards", func(r chi.Router) {
		r.Get("/categories", h.listCategories)
		r.Get("/categories/{id}", h.getCategory)
		r.Get("/categories/{id}/standings", h.standings)
		r.Post("/categories/{id}/vote", h.castVote)
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(h.logger, w, http.StatusOK, h.service.Categories(r.Context()))
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Category(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, cat)
}

func (h *Handler) standings(w http.ResponseWriter, r *http.Request) {
	nominees, err := h.service.Standings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, nominees)
}

func (h *Handler) castVote(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NomineeID string `json:"nomineeId"`
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&input); err != nil || input.NomineeID == "" {
		shared.WriteError(h.logger, w, fmt.Errorf("%w: nomineeId is required", shared.ErrValidation))
		return
	}
	cat, err := h.service.CastVote(r.Context(), chi.URLParam(r, "id"), input.NomineeID)
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, cat)
}
